// Package openai talks to OpenAI-compatible chat completion endpoints. The
// default base URL points at MiniMax.
package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"

	"github.com/spigell/practice-evaluator/internal/ai"
	"github.com/spigell/practice-evaluator/internal/logger"
	"github.com/spigell/practice-evaluator/internal/utils"
)

const (
	ProviderName = "openai"

	DefaultBaseURL     = "https://api.minimax.io/v1"
	DefaultModel       = "MiniMax-M2.5-highspeed"
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 16384

	defaultMaxLogLength = 200
)

// Config configures a Generator. Zero values fall back to the defaults above.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	Temperature  float64
	MaxTokens    int
	Timeout      time.Duration
	MaxLogLength int
}

type chatCompleter interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Generator implements ai.Generator over the chat completions API.
type Generator struct {
	client      openai.Client
	completions chatCompleter
	configured  bool
	settings    ai.Settings
	logger      *zap.Logger
	maxLogLen   int
}

// NewGenerator builds a generator. A missing API key is not an error here:
// every call then fails with ai.ErrNotConfigured before reaching the network.
func NewGenerator(cfg Config, log *zap.Logger) *Generator {
	apiKey := strings.TrimSpace(cfg.APIKey)

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = DefaultTemperature
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	g := &Generator{
		client:     openai.NewClient(opts...),
		configured: apiKey != "",
		settings: ai.Settings{
			Model:       model,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		},
		logger:    logger.WithCommonFields(log, ProviderName, model),
		maxLogLen: maxLogLen,
	}
	g.completions = &g.client.Chat.Completions

	return g
}

// GenerateContent sends one system and one user message and returns the
// content of the first choice. An empty reply is returned as is.
func (g *Generator) GenerateContent(ctx context.Context, system, user string) (string, error) {
	if g == nil || !g.configured {
		return "", ai.ErrNotConfigured
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.settings.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(g.settings.Temperature),
		MaxTokens:   openai.Int(int64(g.settings.MaxTokens)),
	}

	g.logger.Debug("chat completion request",
		zap.Int("system_length", utf8.RuneCountInString(system)),
		zap.Int("user_length", utf8.RuneCountInString(user)),
		zap.String("user_preview", utils.TruncateForLog(user, g.maxLogLen)),
	)

	resp, err := g.completions.New(ctx, params)
	if err != nil {
		return "", g.upstreamError(err)
	}

	var content string
	if resp != nil && len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	g.logger.Debug("chat completion response",
		zap.Int("response_length", utf8.RuneCountInString(content)),
		zap.String("response_preview", utils.TruncateForLog(content, g.maxLogLen)),
	)

	return content, nil
}

func (g *Generator) upstreamError(err error) error {
	upstream := &ai.UpstreamError{Provider: ProviderName, Err: err}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		upstream.StatusCode = apiErr.StatusCode
		upstream.Body = strings.TrimSpace(apiErr.Message)
	}

	return upstream
}

func (g *Generator) Provider() string {
	return ProviderName
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.settings.Model
}
