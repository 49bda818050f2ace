package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/spigell/practice-evaluator/internal/ai"
)

type stubCompleter struct {
	resp   *openai.ChatCompletion
	err    error
	params openai.ChatCompletionNewParams
	calls  int
}

func (s *stubCompleter) New(_ context.Context, body openai.ChatCompletionNewParams, _ ...option.RequestOption) (*openai.ChatCompletion, error) {
	s.calls++
	s.params = body
	return s.resp, s.err
}

func completion(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestGenerateContentNotConfigured(t *testing.T) {
	t.Parallel()

	g := NewGenerator(Config{}, zap.NewNop())
	stub := &stubCompleter{resp: completion("{}")}
	g.completions = stub

	_, err := g.GenerateContent(context.Background(), "system", "user")
	if !errors.Is(err, ai.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if stub.calls != 0 {
		t.Fatalf("expected no outbound call, got %d", stub.calls)
	}
}

func TestGenerateContentDefaults(t *testing.T) {
	t.Parallel()

	g := NewGenerator(Config{APIKey: "key"}, zap.NewNop())
	stub := &stubCompleter{resp: completion("```json\n[]\n```")}
	g.completions = stub

	got, err := g.GenerateContent(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "```json\n[]\n```" {
		t.Fatalf("expected raw content to be returned, got %q", got)
	}

	if string(stub.params.Model) != DefaultModel {
		t.Fatalf("expected default model, got %q", stub.params.Model)
	}
	if stub.params.Temperature.Value != DefaultTemperature {
		t.Fatalf("expected default temperature, got %v", stub.params.Temperature.Value)
	}
	if stub.params.MaxTokens.Value != DefaultMaxTokens {
		t.Fatalf("expected default max tokens, got %v", stub.params.MaxTokens.Value)
	}
	if len(stub.params.Messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(stub.params.Messages))
	}
	if g.Model() != DefaultModel || g.Provider() != ProviderName {
		t.Fatalf("unexpected identity %s/%s", g.Provider(), g.Model())
	}
}

func TestGenerateContentEmptyChoices(t *testing.T) {
	t.Parallel()

	g := NewGenerator(Config{APIKey: "key", Model: "custom"}, zap.NewNop())
	g.completions = &stubCompleter{resp: &openai.ChatCompletion{}}

	got, err := g.GenerateContent(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty content, got %q", got)
	}
}

func TestGenerateContentUpstreamFailure(t *testing.T) {
	t.Parallel()

	g := NewGenerator(Config{APIKey: "key"}, zap.NewNop())
	g.completions = &stubCompleter{err: &openai.Error{StatusCode: 503, Message: "overloaded"}}

	_, err := g.GenerateContent(context.Background(), "system", "user")

	var upstream *ai.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != 503 || upstream.Body != "overloaded" {
		t.Fatalf("unexpected upstream error: %+v", upstream)
	}

	g.completions = &stubCompleter{err: context.DeadlineExceeded}
	_, err = g.GenerateContent(context.Background(), "system", "user")
	if !errors.As(err, &upstream) || upstream.StatusCode != 0 {
		t.Fatalf("expected transport UpstreamError, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected cause to be preserved")
	}
}
