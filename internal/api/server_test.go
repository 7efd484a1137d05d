package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ahlawat23/resumekeeper/internal/chunker"
	"github.com/Ahlawat23/resumekeeper/internal/config"
	"github.com/Ahlawat23/resumekeeper/internal/document"
	"github.com/Ahlawat23/resumekeeper/internal/pipeline"
	"github.com/Ahlawat23/resumekeeper/internal/queryfilter"
	"github.com/Ahlawat23/resumekeeper/internal/rag"
	"github.com/Ahlawat23/resumekeeper/internal/resume"
	"github.com/Ahlawat23/resumekeeper/internal/storage"
	"github.com/Ahlawat23/resumekeeper/internal/vectorstore"
)

const testAPIKey = "test-key"

type stubStore struct {
	hits    []vectorstore.Hit
	docs    []vectorstore.DocumentInfo
	deleted []string
}

func (s *stubStore) Search(ctx context.Context, vector []float32, spec queryfilter.Spec, limit uint64) ([]vectorstore.Hit, error) {
	return s.hits, nil
}

func (s *stubStore) ListDocuments(ctx context.Context) ([]vectorstore.DocumentInfo, error) {
	return s.docs, nil
}

func (s *stubStore) DeleteDocument(ctx context.Context, docID string) error {
	s.deleted = append(s.deleted, docID)
	return nil
}

func (s *stubStore) HasDocument(ctx context.Context, docID string) (bool, error) {
	return false, nil
}

func (s *stubStore) UpsertRecords(ctx context.Context, records []document.Record, vectors [][]float32) error {
	return nil
}

type stubAsker struct {
	answer *rag.Answer
}

func (s *stubAsker) Ask(ctx context.Context, question string) (*rag.Answer, error) {
	return s.answer, nil
}

type stubEmbedder struct{}

func (stubEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.5}
	}
	return out, nil
}

func (stubEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.5}, nil
}

func newTestServer(t *testing.T, store *stubStore, asker Asker) *Server {
	t.Helper()
	cfg := config.Config{
		APIKey:         testAPIKey,
		MaxUploadBytes: 1 << 20,
		MaxQueueSize:   10,
		WorkerCount:    1,
		SearchTopK:     20,
		ChunkSize:      900,
		ChunkOverlap:   150,
	}

	splitter, err := chunker.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		t.Fatal(err)
	}
	orch := pipeline.NewOrchestrator(
		cfg,
		resume.NewExtractor(resume.DefaultVocabulary()),
		document.NewAssembler(splitter),
		stubEmbedder{},
		store,
		slog.Default(),
	)

	files, err := storage.NewFileStore(t.TempDir(), cfg.MaxUploadBytes)
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(orch, files, store, asker, stubEmbedder{}, slog.Default(), cfg)
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	return req
}

func TestHealth_Public(t *testing.T) {
	s := newTestServer(t, &stubStore{}, &stubAsker{})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestAuth_RejectsMissingAndWrongKeys(t *testing.T) {
	s := newTestServer(t, &stubStore{}, &stubAsker{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing auth: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d", rec.Code)
	}
}

func multipartUpload(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(content))
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUpload_QueuesJobAndStatusIsPollable(t *testing.T) {
	s := newTestServer(t, &stubStore{}, &stubAsker{})

	body, contentType := multipartUpload(t, "files", "jane.txt", "Jane Doe\nDesigner\n")
	req := authed(httptest.NewRequest(http.MethodPost, "/api/upload", body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Jobs []struct {
			JobID    string `json:"job_id"`
			Filename string `json:"filename"`
			Status   string `json:"status"`
			Error    string `json:"error"`
		} `json:"jobs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Jobs) != 1 || resp.Jobs[0].Error != "" || resp.Jobs[0].JobID == "" {
		t.Fatalf("jobs = %+v", resp.Jobs)
	}
	if resp.Jobs[0].Status != string(pipeline.StatusQueued) {
		t.Errorf("status = %q", resp.Jobs[0].Status)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/ingest/"+resp.Jobs[0].JobID+"/status", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status poll = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "queued") {
		t.Errorf("expected a queued job, got %s", rec.Body.String())
	}
}

func TestUpload_RejectsUnsupportedExtension(t *testing.T) {
	s := newTestServer(t, &stubStore{}, &stubAsker{})

	body, contentType := multipartUpload(t, "files", "cv.exe", "binary")
	req := authed(httptest.NewRequest(http.MethodPost, "/api/upload", body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "unsupported file type") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestIngestStatus_UnknownJob(t *testing.T) {
	s := newTestServer(t, &stubStore{}, &stubAsker{})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/ingest/nope/status", nil)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestSearch_ReturnsHitsAndFilter(t *testing.T) {
	store := &stubStore{hits: []vectorstore.Hit{{ID: "a", Score: 0.9, Text: "Jane"}}}
	s := newTestServer(t, store, &stubAsker{})

	payload := `{"query":"senior designer in Dublin, Ireland"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(payload)))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"hits"`) || !strings.Contains(body, `"filter"`) {
		t.Errorf("body = %s", body)
	}
	if !strings.Contains(body, "Dublin") {
		t.Errorf("expected the translated filter in the response: %s", body)
	}
}

func TestSearch_RequiresQuery(t *testing.T) {
	s := newTestServer(t, &stubStore{}, &stubAsker{})
	req := authed(httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"  "}`)))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestAsk_ReturnsAnswer(t *testing.T) {
	asker := &stubAsker{answer: &rag.Answer{Question: "q", Answer: "Jane Doe matches."}}
	s := newTestServer(t, &stubStore{}, asker)

	req := authed(httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"who fits?"}`)))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Jane Doe matches.") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestListAndDeleteDocuments(t *testing.T) {
	store := &stubStore{docs: []vectorstore.DocumentInfo{
		{DocumentID: "abc", FileName: "jane.txt", Chunks: 4},
	}}
	s := newTestServer(t, store, &stubAsker{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/documents", nil)))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "jane.txt") {
		t.Fatalf("list: status = %d body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodDelete, "/api/documents/abc", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "abc" {
		t.Errorf("deleted = %v", store.deleted)
	}
}

func TestStats_CountsDocumentsAndChunks(t *testing.T) {
	store := &stubStore{docs: []vectorstore.DocumentInfo{
		{DocumentID: "a", FileName: "a.txt", Chunks: 3},
		{DocumentID: "b", FileName: "b.txt", Chunks: 2},
	}}
	s := newTestServer(t, store, &stubAsker{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/stats", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Documents int `json:"documents"`
		Chunks    int `json:"chunks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Documents != 2 || resp.Chunks != 5 {
		t.Errorf("resp = %+v", resp)
	}
}
