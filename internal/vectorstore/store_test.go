package vectorstore

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

// scrollStub pages through a fixed point set with Qdrant's semantics: the
// request offset is inclusive and NextPageOffset is the ID to start the next
// page from, nil once the set is exhausted.
type scrollStub struct {
	points   []*qdrant.RetrievedPoint
	pageSize int
	calls    int
}

func (s *scrollStub) scroll(ctx context.Context, req *qdrant.ScrollPoints) (*qdrant.ScrollResponse, error) {
	s.calls++
	if s.calls > 10 {
		return nil, fmt.Errorf("scroll called %d times, pagination is not terminating", s.calls)
	}

	start := 0
	if req.Offset != nil {
		for i, p := range s.points {
			if p.Id.GetUuid() == req.Offset.GetUuid() {
				start = i
				break
			}
		}
	}
	end := min(start+s.pageSize, len(s.points))

	resp := &qdrant.ScrollResponse{Result: s.points[start:end]}
	if end < len(s.points) {
		resp.NextPageOffset = s.points[end].Id
	}
	return resp, nil
}

func chunkPoint(id, docID, fileName string) *qdrant.RetrievedPoint {
	return &qdrant.RetrievedPoint{
		Id:      qdrant.NewID(id),
		Payload: qdrant.NewValueMap(map[string]any{"document_id": docID, "file_name": fileName}),
	}
}

func newScrollTestStore(stub *scrollStub) *Store {
	s := &Store{collection: "resumes", logger: slog.Default()}
	s.scroll = stub.scroll
	return s
}

func TestListDocuments_PaginatesWithoutRefetch(t *testing.T) {
	stub := &scrollStub{
		points: []*qdrant.RetrievedPoint{
			chunkPoint("p1", "doc-a", "a.txt"),
			chunkPoint("p2", "doc-a", "a.txt"),
			chunkPoint("p3", "doc-b", "b.txt"),
		},
		pageSize: 2,
	}
	store := newScrollTestStore(stub)

	docs, err := store.ListDocuments(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stub.calls != 2 {
		t.Errorf("expected 2 scroll pages for 3 points, got %d calls", stub.calls)
	}
	if len(docs) != 2 {
		t.Fatalf("docs = %+v", docs)
	}
	// Sorted by file name.
	if docs[0].DocumentID != "doc-a" || docs[0].Chunks != 2 {
		t.Errorf("doc-a miscounted across the page boundary: %+v", docs[0])
	}
	if docs[1].DocumentID != "doc-b" || docs[1].Chunks != 1 {
		t.Errorf("doc-b = %+v", docs[1])
	}
}

func TestListDocuments_SinglePage(t *testing.T) {
	stub := &scrollStub{
		points:   []*qdrant.RetrievedPoint{chunkPoint("p1", "doc-a", "a.txt")},
		pageSize: 256,
	}
	store := newScrollTestStore(stub)

	docs, err := store.ListDocuments(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stub.calls != 1 {
		t.Errorf("expected a single scroll call, got %d", stub.calls)
	}
	if len(docs) != 1 || docs[0].Chunks != 1 {
		t.Errorf("docs = %+v", docs)
	}
}

func TestListDocuments_EmptyCollection(t *testing.T) {
	store := newScrollTestStore(&scrollStub{pageSize: 256})
	docs, err := store.ListDocuments(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 0 {
		t.Errorf("docs = %+v", docs)
	}
}
