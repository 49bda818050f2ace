package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/practice-evaluator/internal/taxonomy"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()

	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		t.Fatalf("unmarshal defaults: %v", err)
	}
	return &config
}

func TestDefaults(t *testing.T) {
	config := defaultConfig(t)

	if config.Listen != ":8080" || config.Variant != "interview" {
		t.Fatalf("unexpected top-level defaults: %+v", config)
	}
	if config.Backend.Mode != "auto" || config.Backend.Provider != "openai" {
		t.Fatalf("unexpected backend defaults: %+v", config.Backend)
	}
	if config.Backend.Timeout != 3*time.Minute || config.Server.RequestTimeout != 5*time.Minute {
		t.Fatalf("durations were not decoded: %+v %+v", config.Backend, config.Server)
	}
	if config.Heuristic.VerboseWords != 450 || config.Heuristic.MaxSampledTurns != 8 {
		t.Fatalf("unexpected heuristic defaults: %+v", config.Heuristic)
	}
	if config.Tracing.Exporter != "none" || config.Tracing.ServiceName != app || config.Tracing.SampleRatio != 1 {
		t.Fatalf("unexpected tracing defaults: %+v", config.Tracing)
	}
}

func TestBuildServicePaths(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		force     bool
		wantPath  string
		wantWarn  bool
		wantError bool
	}{
		{
			name:     "auto without key falls back to heuristic",
			wantPath: "heuristic",
		},
		{
			name:     "auto with key uses the model",
			mutate:   func(c *Config) { c.Backend.APIKey = "secret" },
			wantPath: "model",
		},
		{
			name:     "heuristic flag wins over a key",
			mutate:   func(c *Config) { c.Backend.APIKey = "secret" },
			force:    true,
			wantPath: "heuristic",
		},
		{
			name:     "model mode without key warns",
			mutate:   func(c *Config) { c.Backend.Mode = "model" },
			wantPath: "model",
			wantWarn: true,
		},
		{
			name:      "unknown provider",
			mutate:    func(c *Config) { c.Backend.APIKey = "secret"; c.Backend.Provider = "anthropic" },
			wantError: true,
		},
		{
			name:      "unknown variant",
			mutate:    func(c *Config) { c.Variant = "therapy" },
			wantError: true,
		},
		{
			name:      "unreadable key file",
			mutate:    func(c *Config) { c.Backend.APIKeyFile = filepath.Join(t.TempDir(), "absent") },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := defaultConfig(t)
			if tt.mutate != nil {
				tt.mutate(config)
			}

			core, observed := observer.New(zapcore.WarnLevel)
			svc, err := buildService(context.Background(), config, zap.New(core), tt.force)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := svc.Path(); got != tt.wantPath {
				t.Fatalf("expected path %s, got %s", tt.wantPath, got)
			}
			if got := svc.Variant(); got != taxonomy.VariantInterview {
				t.Fatalf("unexpected variant %s", got)
			}
			if warned := observed.Len() > 0; warned != tt.wantWarn {
				t.Fatalf("expected warning=%v, got %d entries", tt.wantWarn, observed.Len())
			}
		})
	}
}

func TestNewGeneratorDefaultsToOpenAI(t *testing.T) {
	gen, err := newGenerator(context.Background(), BackendConfig{}, "secret", zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.Provider() != "openai" || gen.Model() != "MiniMax-M2.5-highspeed" {
		t.Fatalf("unexpected generator %s/%s", gen.Provider(), gen.Model())
	}
}
