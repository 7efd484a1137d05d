// Package embed wraps an OpenAI-compatible embedding API behind a small
// batch-oriented interface used by the ingestion pipeline and query paths.
package embed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder turns text into fixed-size vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Options configures the OpenAI-compatible embedding client.
type Options struct {
	APIKey    string
	BaseURL   string // empty means the upstream default
	Model     string
	BatchSize int
}

// OpenAIEmbedder implements Embedder against any OpenAI-compatible endpoint.
type OpenAIEmbedder struct {
	embedder  embeddings.Embedder
	batchSize int
	logger    *slog.Logger
}

// NewOpenAIEmbedder builds the client and wraps it in a langchaingo embedder.
func NewOpenAIEmbedder(opts Options, logger *slog.Logger) (*OpenAIEmbedder, error) {
	clientOpts := []openai.Option{
		openai.WithToken(opts.APIKey),
		openai.WithEmbeddingModel(opts.Model),
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, openai.WithBaseURL(opts.BaseURL))
	}
	client, err := openai.New(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create embedding client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("wrap embedder: %w", err)
	}

	batch := opts.BatchSize
	if batch <= 0 {
		batch = 128
	}
	return &OpenAIEmbedder{
		embedder:  embedder,
		batchSize: batch,
		logger:    logger.With("component", "embedder"),
	}, nil
}

// EmbedTexts embeds texts in batches of at most the configured batch size,
// preserving input order.
func (e *OpenAIEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		vecs, err := e.embedder.EmbedDocuments(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed batch [%d:%d]: %w", start, end, err)
		}
		if len(vecs) != end-start {
			return nil, fmt.Errorf("embed batch [%d:%d]: got %d vectors", start, end, len(vecs))
		}
		out = append(out, vecs...)
	}
	e.logger.Debug("embedded texts", "count", len(texts))
	return out, nil
}

// EmbedQuery embeds a single search query.
func (e *OpenAIEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vec, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return vec, nil
}
