// Package rag answers free-text questions about the stored resumes. A
// question is translated into a structured filter, matched against the
// vector store and the retrieved chunks are handed to a chat model as
// grounding context.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/Ahlawat23/resumekeeper/internal/embed"
	"github.com/Ahlawat23/resumekeeper/internal/queryfilter"
	"github.com/Ahlawat23/resumekeeper/internal/vectorstore"
)

const systemInstruction = `You are ResumeKeeper, an intelligent record keeper of candidate resumes.
Your responsibilities:
1. Retrieve and present candidate resumes or summaries based on user queries.
   Support filtering by skills, years of experience, job titles, industries, or any attributes stored in the database.
   If a user asks for "10 developers with 10+ years experience", fetch exactly those resumes (or the closest match available).
   Always confirm if fewer results are available than requested.
2. If asked what your role is, explain: "I am ResumeKeeper, an assistant specialized in managing and retrieving resumes. I can filter resumes by skill, experience, or role, and present them as needed."
3. Return results in a structured, easy-to-read format. For multiple resumes show a numbered list; for a single resume give a concise summary (Name, Role, Experience, Skills).
4. If you cannot find results, say: "No matching resumes found. You may refine by skills, years of experience, or job title." Never make up data outside of the provided context.
5. You only answer questions related to resumes and your own purpose. If asked something unrelated, politely decline.
6. Be professionally playful, precise, and factual. Use short, action-oriented responses, no fluff.`

// Retriever is the slice of the vector store the answerer needs.
type Retriever interface {
	Search(ctx context.Context, vector []float32, spec queryfilter.Spec, limit uint64) ([]vectorstore.Hit, error)
}

// Answer is the result of one question.
type Answer struct {
	Question string            `json:"question"`
	Answer   string            `json:"answer"`
	Filter   *queryfilter.Spec `json:"filter,omitempty"`
	Hits     []vectorstore.Hit `json:"hits"`
}

// Options configures the chat model used for answer generation.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	TopK    uint64
}

// Answerer runs the retrieve-then-answer flow.
type Answerer struct {
	translator *queryfilter.Translator
	embedder   embed.Embedder
	retriever  Retriever
	chat       llms.Model
	topK       uint64
	logger     *slog.Logger
}

// NewAnswerer builds the chat client and wires the retrieval dependencies.
func NewAnswerer(opts Options, embedder embed.Embedder, retriever Retriever, logger *slog.Logger) (*Answerer, error) {
	clientOpts := []openai.Option{
		openai.WithToken(opts.APIKey),
		openai.WithModel(opts.Model),
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, openai.WithBaseURL(opts.BaseURL))
	}
	chat, err := openai.New(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create chat client: %w", err)
	}

	topK := opts.TopK
	if topK == 0 {
		topK = 20
	}
	return &Answerer{
		translator: queryfilter.NewTranslator(),
		embedder:   embedder,
		retriever:  retriever,
		chat:       chat,
		topK:       topK,
		logger:     logger.With("component", "rag"),
	}, nil
}

// Ask answers one question against the stored resumes.
func (a *Answerer) Ask(ctx context.Context, question string) (*Answer, error) {
	spec := a.translator.Translate(question)

	vector, err := a.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, err
	}

	hits, err := a.retriever.Search(ctx, vector, *spec, a.topK)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("retrieved context", "question", question, "hits", len(hits))

	text, err := a.generate(ctx, question, hits)
	if err != nil {
		return nil, err
	}

	ans := &Answer{Question: question, Answer: text, Hits: hits}
	if !spec.Empty() {
		ans.Filter = spec
	}
	return ans, nil
}

func (a *Answerer) generate(ctx context.Context, question string, hits []vectorstore.Hit) (string, error) {
	var b strings.Builder
	for i, h := range hits {
		if h.Text == "" {
			continue
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(h.Text)
	}

	prompt := fmt.Sprintf(`Use the following CONTEXT to try to answer the QUESTION.
Understand the QUESTION and then answer based on the CONTEXT only.
CONTEXT:
%s

QUESTION:
%s`, b.String(), question)

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemInstruction)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	resp, err := a.chat.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat model returned no choices")
	}
	return resp.Choices[0].Content, nil
}
