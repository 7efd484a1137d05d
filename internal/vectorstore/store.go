// Package vectorstore persists resume chunks and their vectors in Qdrant
// and answers filtered similarity queries against them.
package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/qdrant/go-client/qdrant"

	"github.com/Ahlawat23/resumekeeper/internal/document"
	"github.com/Ahlawat23/resumekeeper/internal/queryfilter"
)

// Config holds the Qdrant connection and collection settings.
type Config struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
	VectorSize uint64
	Distance   string // COSINE, DOT or EUCLID
}

// Store wraps a Qdrant collection of resume chunks.
type Store struct {
	client     *qdrant.Client
	collection string
	logger     *slog.Logger

	// scroll issues one raw scroll request. The convenience Scroll helper
	// drops the response's NextPageOffset, which pagination needs.
	scroll func(ctx context.Context, req *qdrant.ScrollPoints) (*qdrant.ScrollResponse, error)
}

// Hit is one scored chunk returned by Search.
type Hit struct {
	ID      string         `json:"id"`
	Score   float32        `json:"score"`
	Text    string         `json:"text"`
	Payload map[string]any `json:"payload"`
}

// DocumentInfo summarizes one stored document.
type DocumentInfo struct {
	DocumentID string `json:"document_id"`
	FileName   string `json:"file_name"`
	Chunks     int    `json:"chunks"`
}

// Fields that get a payload index so filters stay fast as the
// collection grows. Mirrors the filter keys the translator emits.
var keywordIndexFields = []string{
	"document_id", "file_name", "city", "country", "seniority", "normalized_keywords",
}

var textIndexFields = []string{"current_title", "certs"}

// New connects to Qdrant, creates the collection if it does not exist and
// ensures the payload indexes are in place.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("connect qdrant: %w", err)
	}

	s := &Store{
		client:     client,
		collection: cfg.Collection,
		logger:     logger.With("component", "vectorstore", "collection", cfg.Collection),
	}
	s.scroll = func(ctx context.Context, req *qdrant.ScrollPoints) (*qdrant.ScrollResponse, error) {
		return client.GetPointsClient().Scroll(ctx, req)
	}
	if err := s.ensureCollection(ctx, cfg); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureCollection(ctx context.Context, cfg Config) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("check collection: %w", err)
	}
	if !exists {
		err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     cfg.VectorSize,
				Distance: distanceFromName(cfg.Distance),
			}),
		})
		if err != nil {
			return fmt.Errorf("create collection: %w", err)
		}
		s.logger.Info("created collection", "vector_size", cfg.VectorSize, "distance", cfg.Distance)
	}

	for _, field := range keywordIndexFields {
		if err := s.createIndex(ctx, field, qdrant.FieldType_FieldTypeKeyword); err != nil {
			return err
		}
	}
	if err := s.createIndex(ctx, "yoe", qdrant.FieldType_FieldTypeInteger); err != nil {
		return err
	}
	for _, field := range textIndexFields {
		if err := s.createIndex(ctx, field, qdrant.FieldType_FieldTypeText); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) createIndex(ctx context.Context, field string, ft qdrant.FieldType) error {
	_, err := s.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: s.collection,
		FieldName:      field,
		FieldType:      ft.Enum(),
	})
	if err != nil {
		return fmt.Errorf("index %s: %w", field, err)
	}
	return nil
}

func distanceFromName(name string) qdrant.Distance {
	switch strings.ToUpper(name) {
	case "DOT":
		return qdrant.Distance_Dot
	case "EUCLID":
		return qdrant.Distance_Euclid
	default:
		return qdrant.Distance_Cosine
	}
}

// UpsertRecords writes chunks and their vectors as points. Point IDs are
// deterministic, so re-ingesting the same document overwrites in place.
func (s *Store) UpsertRecords(ctx context.Context, records []document.Record, vectors [][]float32) error {
	if len(records) != len(vectors) {
		return fmt.Errorf("records/vectors length mismatch: %d vs %d", len(records), len(vectors))
	}
	if len(records) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(records))
	for i, rec := range records {
		payload, err := recordPayload(rec)
		if err != nil {
			return err
		}
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(rec.PointID()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: payload,
		})
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("upsert %d points: %w", len(points), err)
	}
	s.logger.Info("upserted points", "count", len(points))
	return nil
}

// recordPayload flattens the chunk metadata plus the chunk text into a
// Qdrant payload map.
func recordPayload(rec document.Record) (map[string]*qdrant.Value, error) {
	raw, err := json.Marshal(rec.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	m := map[string]any{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	m["text"] = rec.Text

	payload, err := qdrant.TryValueMap(m)
	if err != nil {
		return nil, fmt.Errorf("payload for %s: %w", rec.PointID(), err)
	}
	return payload, nil
}

// Search runs a filtered similarity query and returns the top hits.
func (s *Store) Search(ctx context.Context, vector []float32, spec queryfilter.Spec, limit uint64) ([]Hit, error) {
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Filter:         BuildFilter(spec),
		Limit:          qdrant.PtrOf(limit),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	hits := make([]Hit, 0, len(points))
	for _, p := range points {
		payload := payloadToMap(p.Payload)
		text, _ := payload["text"].(string)
		delete(payload, "text")
		hits = append(hits, Hit{
			ID:      pointIDString(p.Id),
			Score:   p.Score,
			Text:    text,
			Payload: payload,
		})
	}
	return hits, nil
}

// HasDocument reports whether any chunk of the given document is stored.
func (s *Store) HasDocument(ctx context.Context, docID string) (bool, error) {
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.collection,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatchKeyword("document_id", docID)},
		},
		Exact: qdrant.PtrOf(true),
	})
	if err != nil {
		return false, fmt.Errorf("count document %s: %w", docID, err)
	}
	return count > 0, nil
}

// ListDocuments scrolls the collection and aggregates chunk counts per
// document.
func (s *Store) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	byID := map[string]*DocumentInfo{}

	// Paginate on the response's NextPageOffset. The offset field is
	// inclusive, so chaining on the last seen ID would re-fetch it and
	// never terminate.
	var offset *qdrant.PointId
	for {
		resp, err := s.scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: s.collection,
			Limit:          qdrant.PtrOf(uint32(256)),
			Offset:         offset,
			WithPayload:    qdrant.NewWithPayloadInclude("document_id", "file_name"),
		})
		if err != nil {
			return nil, fmt.Errorf("scroll: %w", err)
		}
		for _, p := range resp.GetResult() {
			payload := payloadToMap(p.Payload)
			docID, _ := payload["document_id"].(string)
			if docID == "" {
				continue
			}
			info, ok := byID[docID]
			if !ok {
				name, _ := payload["file_name"].(string)
				info = &DocumentInfo{DocumentID: docID, FileName: name}
				byID[docID] = info
			}
			info.Chunks++
		}
		offset = resp.GetNextPageOffset()
		if offset == nil {
			break
		}
	}

	out := make([]DocumentInfo, 0, len(byID))
	for _, info := range byID {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FileName < out[j].FileName })
	return out, nil
}

// DeleteDocument removes every chunk of the given document.
func (s *Store) DeleteDocument(ctx context.Context, docID string) error {
	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.collection,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatchKeyword("document_id", docID)},
		}),
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("delete document %s: %w", docID, err)
	}
	s.logger.Info("deleted document", "document_id", docID)
	return nil
}

// Close releases the underlying gRPC connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func pointIDString(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if u := id.GetUuid(); u != "" {
		return u
	}
	return fmt.Sprintf("%d", id.GetNum())
}

// payloadToMap converts a Qdrant payload into plain Go values.
func payloadToMap(payload map[string]*qdrant.Value) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = valueToAny(v)
	}
	return out
}

func valueToAny(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_ListValue:
		items := kind.ListValue.GetValues()
		list := make([]any, 0, len(items))
		for _, item := range items {
			list = append(list, valueToAny(item))
		}
		return list
	case *qdrant.Value_StructValue:
		return payloadToMap(kind.StructValue.GetFields())
	default:
		return nil
	}
}
