package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/practice-evaluator/internal/ai"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	config *genai.GenerateContentConfig
	prompt string
	calls  int
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func response(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, &genai.Part{Text: text})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestGenerateContentWithoutKey(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(context.Background(), Config{}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g.GenerateContent(context.Background(), "system", "user"); !errors.Is(err, ai.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestGenerateContentJoinsParts(t *testing.T) {
	t.Parallel()

	models := &fakeModels{resp: response("```json", "  ", "[]", "```")}
	g, err := NewGenerator(context.Background(), Config{Model: "gemini-test"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.models = models

	got, err := g.GenerateContent(context.Background(), "system rules", "turns")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "```json\n[]\n```" {
		t.Fatalf("unexpected output %q", got)
	}

	if models.model != "gemini-test" || models.prompt != "turns" {
		t.Fatalf("unexpected request %s / %q", models.model, models.prompt)
	}
	if models.config == nil || models.config.SystemInstruction == nil {
		t.Fatalf("expected system instruction to be set")
	}
	if models.config.SystemInstruction.Parts[0].Text != "system rules" {
		t.Fatalf("unexpected system instruction %q", models.config.SystemInstruction.Parts[0].Text)
	}
	if models.config.MaxOutputTokens != defaultMaxTokens {
		t.Fatalf("expected default max tokens, got %d", models.config.MaxOutputTokens)
	}
}

func TestGenerateContentAPIError(t *testing.T) {
	t.Parallel()

	models := &fakeModels{err: genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED", Message: "quota"}}
	g, err := NewGenerator(context.Background(), Config{}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.models = models

	_, err = g.GenerateContent(context.Background(), "system", "user")

	var upstream *ai.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusTooManyRequests || upstream.Body != "quota" {
		t.Fatalf("unexpected upstream error %+v", upstream)
	}
	if upstream.Provider != ProviderName {
		t.Fatalf("unexpected provider %q", upstream.Provider)
	}
}

func TestClientConfigHonoursTimeoutAndBaseURL(t *testing.T) {
	t.Parallel()

	cc := clientConfig(Config{BaseURL: " https://gemini.internal/ ", Timeout: 90 * time.Second}, "secret")
	if cc.APIKey != "secret" || cc.Backend != genai.BackendGeminiAPI {
		t.Fatalf("unexpected client config %+v", cc)
	}
	if cc.HTTPClient == nil || cc.HTTPClient.Timeout != 90*time.Second {
		t.Fatalf("expected a 90s http client, got %+v", cc.HTTPClient)
	}
	if cc.HTTPOptions.BaseURL != "https://gemini.internal/" {
		t.Fatalf("unexpected base url %q", cc.HTTPOptions.BaseURL)
	}

	if cc := clientConfig(Config{}, "secret"); cc.HTTPClient != nil || cc.HTTPOptions.BaseURL != "" {
		t.Fatalf("zero config must keep the SDK defaults, got %+v", cc)
	}
}

func TestNewGeneratorWithTimeout(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(context.Background(), Config{APIKey: "secret", Timeout: time.Second}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.models == nil {
		t.Fatalf("expected a client to be created")
	}
}
