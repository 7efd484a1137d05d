package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ahlawat23/resumekeeper/internal/api"
	"github.com/Ahlawat23/resumekeeper/internal/chunker"
	"github.com/Ahlawat23/resumekeeper/internal/config"
	"github.com/Ahlawat23/resumekeeper/internal/document"
	"github.com/Ahlawat23/resumekeeper/internal/embed"
	"github.com/Ahlawat23/resumekeeper/internal/parser"
	"github.com/Ahlawat23/resumekeeper/internal/pipeline"
	"github.com/Ahlawat23/resumekeeper/internal/rag"
	"github.com/Ahlawat23/resumekeeper/internal/resume"
	"github.com/Ahlawat23/resumekeeper/internal/storage"
	"github.com/Ahlawat23/resumekeeper/internal/vectorstore"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	parser.PDFFallback = cfg.PDFFallbackPdftotext

	splitter, err := chunker.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		log.Error("invalid chunking configuration", "error", err)
		os.Exit(1)
	}

	files, err := storage.NewFileStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		log.Error("upload store init failed", "error", err)
		os.Exit(1)
	}

	embedder, err := embed.NewOpenAIEmbedder(embed.Options{
		APIKey:    cfg.OpenAIAPIKey,
		BaseURL:   cfg.OpenAIBaseURL,
		Model:     cfg.EmbedModel,
		BatchSize: cfg.EmbedBatchSize,
	}, log)
	if err != nil {
		log.Error("embedder init failed", "error", err)
		os.Exit(1)
	}

	store, err := vectorstore.New(ctx, vectorstore.Config{
		Host:       cfg.QdrantHost,
		Port:       cfg.QdrantPort,
		APIKey:     cfg.QdrantAPIKey,
		UseTLS:     cfg.QdrantUseTLS,
		Collection: cfg.QdrantCollection,
		VectorSize: uint64(cfg.VectorSize),
		Distance:   cfg.Distance,
	}, log)
	if err != nil {
		log.Error("vector store init failed", "error", err)
		os.Exit(1)
	}

	answerer, err := rag.NewAnswerer(rag.Options{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.ChatModel,
		TopK:    uint64(cfg.SearchTopK),
	}, embedder, store, log)
	if err != nil {
		log.Error("answerer init failed", "error", err)
		os.Exit(1)
	}

	// Initialize pipeline.
	extractor := resume.NewExtractor(resume.DefaultVocabulary())
	assembler := document.NewAssembler(splitter)
	orch := pipeline.NewOrchestrator(cfg, extractor, assembler, embedder, store, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, files, store, answerer, embedder, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		store.Close()
	}()

	log.Info("starting resumekeeper", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
