package rag

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"

	"github.com/Ahlawat23/resumekeeper/internal/queryfilter"
	"github.com/Ahlawat23/resumekeeper/internal/vectorstore"
)

type fakeEmbedder struct{}

func (fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2}
	}
	return out, nil
}

func (fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

type fakeRetriever struct {
	gotSpec queryfilter.Spec
	hits    []vectorstore.Hit
}

func (f *fakeRetriever) Search(ctx context.Context, vector []float32, spec queryfilter.Spec, limit uint64) ([]vectorstore.Hit, error) {
	f.gotSpec = spec
	return f.hits, nil
}

type fakeChat struct {
	gotPrompt string
	reply     string
}

func (f *fakeChat) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, m := range messages {
		if m.Role == llms.ChatMessageTypeHuman {
			for _, p := range m.Parts {
				if tp, ok := p.(llms.TextContent); ok {
					f.gotPrompt = tp.Text
				}
			}
		}
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.reply}},
	}, nil
}

func (f *fakeChat) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return f.reply, nil
}

func newTestAnswerer(retriever Retriever, chat llms.Model) *Answerer {
	return &Answerer{
		translator: queryfilter.NewTranslator(),
		embedder:   fakeEmbedder{},
		retriever:  retriever,
		chat:       chat,
		topK:       20,
		logger:     slog.Default(),
	}
}

func TestAsk_GroundsAnswerInRetrievedChunks(t *testing.T) {
	retriever := &fakeRetriever{hits: []vectorstore.Hit{
		{ID: "a", Score: 0.9, Text: "Jane Doe, senior designer in Dublin."},
		{ID: "b", Score: 0.7, Text: "John Roe, junior developer in Paris."},
	}}
	chat := &fakeChat{reply: "Jane Doe matches."}
	a := newTestAnswerer(retriever, chat)

	ans, err := a.Ask(context.Background(), "senior designer in Dublin with 5+ years")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Answer != "Jane Doe matches." {
		t.Errorf("answer = %q", ans.Answer)
	}
	if len(ans.Hits) != 2 {
		t.Errorf("expected hits carried through, got %d", len(ans.Hits))
	}
	if !strings.Contains(chat.gotPrompt, "Jane Doe, senior designer in Dublin.") {
		t.Errorf("prompt missing retrieved context:\n%s", chat.gotPrompt)
	}
	if !strings.Contains(chat.gotPrompt, "senior designer in Dublin with 5+ years") {
		t.Errorf("prompt missing question:\n%s", chat.gotPrompt)
	}
}

func TestAsk_TranslatesQuestionIntoFilter(t *testing.T) {
	retriever := &fakeRetriever{}
	a := newTestAnswerer(retriever, &fakeChat{reply: "ok"})

	ans, err := a.Ask(context.Background(), "designers in Dublin, Ireland with 5+ years experience")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Filter == nil {
		t.Fatal("expected a filter for a query with constraints")
	}
	if got := retriever.gotSpec.Fields["city"].Eq; got != "Dublin" {
		t.Errorf("city = %q", got)
	}
	if p, ok := retriever.gotSpec.Fields["yoe"]; !ok || p.Gte == nil || *p.Gte != 5 {
		t.Errorf("yoe predicate = %+v", p)
	}
}

func TestAsk_NoConstraintsMeansNoFilter(t *testing.T) {
	a := newTestAnswerer(&fakeRetriever{}, &fakeChat{reply: "ok"})
	ans, err := a.Ask(context.Background(), "tell me about the candidates")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Filter != nil {
		t.Errorf("expected nil filter, got %+v", ans.Filter)
	}
}
