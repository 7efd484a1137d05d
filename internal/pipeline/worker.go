package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Ahlawat23/resumekeeper/internal/document"
	"github.com/Ahlawat23/resumekeeper/internal/embed"
	"github.com/Ahlawat23/resumekeeper/internal/parser"
	"github.com/Ahlawat23/resumekeeper/internal/resume"
)

// VectorStore is the slice of the vector store the pipeline needs.
type VectorStore interface {
	HasDocument(ctx context.Context, docID string) (bool, error)
	UpsertRecords(ctx context.Context, records []document.Record, vectors [][]float32) error
}

// Worker processes a single document job.
type Worker struct {
	extractor *resume.Extractor
	assembler *document.Assembler
	embedder  embed.Embedder
	store     VectorStore
	log       *slog.Logger

	embedBatchSize int
}

func NewWorker(extractor *resume.Extractor, assembler *document.Assembler, embedder embed.Embedder, store VectorStore, log *slog.Logger, embedBatchSize int) *Worker {
	if embedBatchSize <= 0 {
		embedBatchSize = 128
	}
	return &Worker{
		extractor:      extractor,
		assembler:      assembler,
		embedder:       embedder,
		store:          store,
		log:            log,
		embedBatchSize: embedBatchSize,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	raw, pages, err := w.parse(job)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.SetPages(len(pages))

	fullText := document.FullText(pages)
	if fullText == "" {
		log.Warn("no extractable text")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Identity comes from the raw bytes: re-ingesting the identical file
	// overwrites instead of duplicating.
	docID := document.ContentID(raw)
	job.SetDocID(docID)
	log = log.With("doc_id", docID)

	// Phase 1.5: Dedup check
	exists, err := w.store.HasDocument(ctx, docID)
	if err != nil {
		log.Warn("dedup check failed, proceeding", "error", err)
	} else if exists {
		log.Info("duplicate document, skipping")
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 2: Profile
	job.SetStatus(StatusProfiling, "profiling")
	profile := w.extractor.Extract(fullText)
	log.Info("profiled document", "name", profile.FullName, "seniority", profile.Seniority, "yoe", profile.YOE)

	// Phase 3: Chunk
	job.SetStatus(StatusChunking, "chunking")
	doc := document.Document{
		ID:       docID,
		FileName: job.Filename,
		Path:     job.FilePath(),
		Pages:    pages,
	}
	records := w.assembler.Assemble(doc, profile)
	job.SetTotalChunks(len(records))
	log.Info("chunked document", "chunks", len(records))

	if len(records) == 0 {
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "chunking")
		return
	}

	// Phase 4: Embed in batches with retry on transient failures.
	job.SetStatus(StatusEmbedding, "embedding")
	vectors := make([][]float32, 0, len(records))
	for start := 0; start < len(records); start += w.embedBatchSize {
		end := min(start+w.embedBatchSize, len(records))
		texts := make([]string, 0, end-start)
		for _, rec := range records[start:end] {
			texts = append(texts, rec.Text)
		}

		batch, err := w.embedBatch(ctx, texts, log)
		if err != nil {
			log.Error("embedding failed", "batch_start", start, "error", err)
			job.AddError(fmt.Sprintf("embed batch %d: %s", start, err))
			job.SetStatus(StatusFailed, "embedding")
			return
		}
		vectors = append(vectors, batch...)
		job.AddEmbedded(len(batch))
	}

	// Phase 5: Store
	job.SetStatus(StatusStoring, "storing")
	if err := w.upsertWithRetry(ctx, records, vectors, log); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	job.AddStored(len(records))

	job.SetStatus(StatusCompleted, "done")
	log.Info("ingestion complete", "chunks", len(records))
}

func (w *Worker) parse(job *Job) ([]byte, []document.Page, error) {
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		return nil, nil, err
	}
	raw, err := os.ReadFile(job.FilePath())
	if err != nil {
		return nil, nil, fmt.Errorf("read upload: %w", err)
	}
	pages, err := p.Parse(bytes.NewReader(raw), job.Filename)
	if err != nil {
		return nil, nil, err
	}
	return raw, pages, nil
}

func (w *Worker) embedBatch(ctx context.Context, texts []string, log *slog.Logger) ([][]float32, error) {
	var vecs [][]float32
	var lastErr error
	for attempt := range MaxRetries {
		vecs, lastErr = w.embedder.EmbedTexts(ctx, texts)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable embedding error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return vecs, lastErr
}

func (w *Worker) upsertWithRetry(ctx context.Context, records []document.Record, vectors [][]float32, log *slog.Logger) error {
	var lastErr error
	for attempt := range MaxRetries {
		lastErr = w.store.UpsertRecords(ctx, records, vectors)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable store error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
