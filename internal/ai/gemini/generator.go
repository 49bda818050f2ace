// Package gemini implements the generator contract on top of the Google GenAI
// SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/practice-evaluator/internal/ai"
	"github.com/spigell/practice-evaluator/internal/logger"
	"github.com/spigell/practice-evaluator/internal/utils"
)

const (
	ProviderName = "gemini"

	defaultModel        = "gemini-2.5-pro"
	defaultTemperature  = 0.1
	defaultMaxTokens    = 16384
	defaultMaxLogLength = 200
)

// Config configures a Generator.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	Temperature  float64
	MaxTokens    int
	Timeout      time.Duration
	MaxLogLength int
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client.
type Generator struct {
	models    contentGenerator
	settings  ai.Settings
	logger    *zap.Logger
	maxLogLen int
}

// NewGenerator creates a Generator configured for the Gemini API backend.
// Without an API key no client is created and calls fail with
// ai.ErrNotConfigured.
func NewGenerator(ctx context.Context, cfg Config, log *zap.Logger) (*Generator, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	g := &Generator{
		settings: ai.Settings{
			Model:       model,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		},
		logger:    logger.WithCommonFields(log, ProviderName, model),
		maxLogLen: maxLogLen,
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, clientConfig(cfg, apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	g.models = client.Models

	return g, nil
}

func clientConfig(cfg Config, apiKey string) *genai.ClientConfig {
	cc := &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: strings.TrimSpace(cfg.BaseURL)},
	}
	if cfg.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return cc
}

// GenerateContent sends the prompt to Gemini and joins the textual parts of
// every candidate.
func (g *Generator) GenerateContent(ctx context.Context, system, user string) (string, error) {
	if g == nil || g.models == nil {
		return "", ai.ErrNotConfigured
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(float32(g.settings.Temperature)),
		MaxOutputTokens:   int32(g.settings.MaxTokens),
	}

	g.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(user)),
		zap.String("prompt_preview", utils.TruncateForLog(user, g.maxLogLen)),
	)

	resp, err := g.models.GenerateContent(ctx, g.settings.Model, genai.Text(user), config)
	if err != nil {
		return "", upstreamError(err)
	}

	output := collectText(resp)

	g.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, g.maxLogLen)),
	)

	return output, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

func upstreamError(err error) error {
	upstream := &ai.UpstreamError{Provider: ProviderName, Err: err}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		upstream.StatusCode = apiErr.Code
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
