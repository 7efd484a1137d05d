package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Ahlawat23/resumekeeper/internal/config"
	"github.com/Ahlawat23/resumekeeper/internal/pipeline"
	"github.com/Ahlawat23/resumekeeper/internal/queryfilter"
	"github.com/Ahlawat23/resumekeeper/internal/rag"
	"github.com/Ahlawat23/resumekeeper/internal/storage"
	"github.com/Ahlawat23/resumekeeper/internal/vectorstore"
)

// DocumentStore is the slice of the vector store the API needs.
type DocumentStore interface {
	Search(ctx context.Context, vector []float32, spec queryfilter.Spec, limit uint64) ([]vectorstore.Hit, error)
	ListDocuments(ctx context.Context) ([]vectorstore.DocumentInfo, error)
	DeleteDocument(ctx context.Context, docID string) error
}

// Asker answers free-text questions about the stored resumes.
type Asker interface {
	Ask(ctx context.Context, question string) (*rag.Answer, error)
}

// QueryEmbedder embeds search queries.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Server is the HTTP API server for resumekeeper.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	files        *storage.FileStore
	store        DocumentStore
	answerer     Asker
	embedder     QueryEmbedder
	translator   *queryfilter.Translator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, files *storage.FileStore, store DocumentStore, answerer Asker, embedder QueryEmbedder, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		files:        files,
		store:        store,
		answerer:     answerer,
		embedder:     embedder,
		translator:   queryfilter.NewTranslator(),
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/upload", s.handleUpload)
		r.Get("/api/ingest/{jobID}/status", s.handleIngestStatus)
		r.Post("/api/reindex", s.handleReindex)

		r.Post("/api/ask", s.handleAsk)
		r.Post("/api/search", s.handleSearch)

		r.Get("/api/documents", s.handleListDocuments)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
