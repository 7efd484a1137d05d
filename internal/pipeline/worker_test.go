package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ahlawat23/resumekeeper/internal/chunker"
	"github.com/Ahlawat23/resumekeeper/internal/document"
	"github.com/Ahlawat23/resumekeeper/internal/resume"
)

type fakeEmbedder struct {
	calls int
	fail  error
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 2, 3}
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 2, 3}, nil
}

type fakeStore struct {
	existing map[string]bool
	records  []document.Record
	vectors  [][]float32
}

func (f *fakeStore) HasDocument(ctx context.Context, docID string) (bool, error) {
	return f.existing[docID], nil
}

func (f *fakeStore) UpsertRecords(ctx context.Context, records []document.Record, vectors [][]float32) error {
	f.records = append(f.records, records...)
	f.vectors = append(f.vectors, vectors...)
	return nil
}

const workerResume = `Jane Doe
Senior Product Designer
jane.doe@example.com
Dublin, Ireland

Work Experience
Product Designer - Acme, Dublin
2018-01-01 - 2021-06-01
` + "•" + ` Led redesign of the checkout flow

Skills
Figma, Sketch
Jira
`

func newTestWorker(t *testing.T, embedder *fakeEmbedder, store *fakeStore) *Worker {
	t.Helper()
	splitter, err := chunker.NewSplitter(chunker.DefaultSize, chunker.DefaultOverlap)
	if err != nil {
		t.Fatal(err)
	}
	return NewWorker(
		resume.NewExtractor(resume.DefaultVocabulary()),
		document.NewAssembler(splitter),
		embedder,
		store,
		slog.Default(),
		128,
	)
}

func writeUpload(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWorker_ProcessCompletes(t *testing.T) {
	store := &fakeStore{existing: map[string]bool{}}
	embedder := &fakeEmbedder{}
	w := newTestWorker(t, embedder, store)

	path := writeUpload(t, "jane.txt", workerResume)
	job := NewJob("jane.txt", path)
	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("status = %s, errors = %v", job.Status, job.Progress.Errors)
	}
	if job.DocID == "" {
		t.Error("expected a content-derived doc ID")
	}
	if len(store.records) == 0 || len(store.records) != len(store.vectors) {
		t.Fatalf("stored %d records, %d vectors", len(store.records), len(store.vectors))
	}
	meta := store.records[0].Metadata
	if meta.FullName != "Jane Doe" {
		t.Errorf("profile not carried into payload: %+v", meta)
	}
	if meta.DocumentID != job.DocID || meta.FileName != "jane.txt" {
		t.Errorf("metadata = %+v", meta)
	}
	snap := job.Snapshot()
	if snap.Progress.ChunksStored != len(store.records) {
		t.Errorf("progress = %+v", snap.Progress)
	}
}

func TestWorker_DuplicateSkipped(t *testing.T) {
	store := &fakeStore{existing: map[string]bool{}}
	embedder := &fakeEmbedder{}
	w := newTestWorker(t, embedder, store)

	path := writeUpload(t, "jane.txt", workerResume)

	first := NewJob("jane.txt", path)
	w.Process(context.Background(), first)
	store.existing[first.DocID] = true

	second := NewJob("jane.txt", path)
	w.Process(context.Background(), second)
	if second.Status != StatusDupSkipped {
		t.Errorf("status = %s", second.Status)
	}
	if embedder.calls != 1 {
		t.Errorf("duplicate must not re-embed, calls = %d", embedder.calls)
	}
}

func TestWorker_UnsupportedFormatFails(t *testing.T) {
	w := newTestWorker(t, &fakeEmbedder{}, &fakeStore{existing: map[string]bool{}})
	job := NewJob("cv.xlsx", "cv.xlsx")
	w.Process(context.Background(), job)
	if job.Status != StatusFailed || job.Phase != "parsing" {
		t.Errorf("status = %s phase = %s", job.Status, job.Phase)
	}
}

func TestWorker_EmptyFileFails(t *testing.T) {
	w := newTestWorker(t, &fakeEmbedder{}, &fakeStore{existing: map[string]bool{}})
	path := writeUpload(t, "empty.txt", "   \n  \n")
	job := NewJob("empty.txt", path)
	w.Process(context.Background(), job)
	if job.Status != StatusFailed {
		t.Errorf("status = %s", job.Status)
	}
}

func TestWorker_EmbedErrorFailsJob(t *testing.T) {
	store := &fakeStore{existing: map[string]bool{}}
	embedder := &fakeEmbedder{fail: context.Canceled}
	w := newTestWorker(t, embedder, store)

	path := writeUpload(t, "jane.txt", workerResume)
	job := NewJob("jane.txt", path)
	w.Process(context.Background(), job)

	if job.Status != StatusFailed || job.Phase != "embedding" {
		t.Errorf("status = %s phase = %s", job.Status, job.Phase)
	}
	if len(store.records) != 0 {
		t.Error("nothing should be stored when embedding fails")
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(context.Canceled) || IsRetryable(context.DeadlineExceeded) {
		t.Error("cancellation must not be retried")
	}
	if !IsRetryable(errors.New("connection reset")) {
		t.Error("transport errors should be retried")
	}
}
