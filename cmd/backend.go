package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/practice-evaluator/internal/ai"
	"github.com/spigell/practice-evaluator/internal/ai/gemini"
	"github.com/spigell/practice-evaluator/internal/ai/openai"
	"github.com/spigell/practice-evaluator/internal/pipeline"
	"github.com/spigell/practice-evaluator/internal/secrets"
	"github.com/spigell/practice-evaluator/internal/taxonomy"
)

// buildService resolves the variant, backend mode and credentials from config
// and assembles the pipeline.
func buildService(ctx context.Context, config *Config, logger *zap.Logger, forceHeuristic bool, opts ...pipeline.Option) (*pipeline.Service, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	variant, err := taxonomy.ParseVariant(config.Variant)
	if err != nil {
		return nil, err
	}

	mode, err := pipeline.ParseMode(config.Backend.Mode)
	if err != nil {
		return nil, err
	}
	if forceHeuristic {
		mode = pipeline.ModeHeuristic
	}

	var apiKey string
	if mode != pipeline.ModeHeuristic {
		apiKey, err = secrets.Optional(secrets.Source{
			Name:  "backend api key",
			Value: config.Backend.APIKey,
			File:  config.Backend.APIKeyFile,
		})
		if err != nil {
			return nil, err
		}
	}
	mode = mode.Resolve(apiKey != "")

	var generator ai.Generator
	if mode == pipeline.ModeModel {
		if apiKey == "" {
			logger.Warn("backend api key is not configured, every evaluation will fail",
				zap.String("hint", "set MINIMAX_API_KEY, MINIMAX_API_KEY_FILE or backend.mode=heuristic"),
			)
		}
		generator, err = newGenerator(ctx, config.Backend, apiKey, logger)
		if err != nil {
			return nil, fmt.Errorf("building generator: %w", err)
		}
	}

	svc, err := pipeline.Build(pipeline.Components{
		Variant:   variant,
		Mode:      mode,
		Generator: generator,
		Heuristic: config.Heuristic,
	}, logger, opts...)
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{zap.String("variant", string(variant)), zap.String("path", svc.Path())}
	if generator != nil {
		fields = append(fields, zap.String("provider", generator.Provider()), zap.String("model", generator.Model()))
	}
	logger.Info("evaluator ready", fields...)

	return svc, nil
}

func newGenerator(ctx context.Context, cfg BackendConfig, apiKey string, logger *zap.Logger) (ai.Generator, error) {
	switch provider := strings.TrimSpace(strings.ToLower(cfg.Provider)); provider {
	case "", openai.ProviderName:
		return openai.NewGenerator(openai.Config{
			APIKey:       apiKey,
			BaseURL:      cfg.BaseURL,
			Model:        cfg.Model,
			Temperature:  cfg.Temperature,
			MaxTokens:    cfg.MaxTokens,
			Timeout:      cfg.Timeout,
			MaxLogLength: cfg.MaxLogLength,
		}, logger.Named("openai")), nil
	case gemini.ProviderName:
		return gemini.NewGenerator(ctx, gemini.Config{
			APIKey:       apiKey,
			BaseURL:      cfg.BaseURL,
			Model:        cfg.Model,
			Temperature:  cfg.Temperature,
			MaxTokens:    cfg.MaxTokens,
			Timeout:      cfg.Timeout,
			MaxLogLength: cfg.MaxLogLength,
		}, logger.Named("gemini"))
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}
