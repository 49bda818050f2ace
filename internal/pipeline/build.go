package pipeline

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/practice-evaluator/internal/ai"
	"github.com/spigell/practice-evaluator/internal/evidence"
	"github.com/spigell/practice-evaluator/internal/rubric"
	"github.com/spigell/practice-evaluator/internal/taxonomy"
	"github.com/spigell/practice-evaluator/internal/transcript"
)

// Mode selects the implementation pair.
type Mode string

const (
	ModeAuto      Mode = "auto"
	ModeModel     Mode = "model"
	ModeHeuristic Mode = "heuristic"
)

// ParseMode normalizes a configured mode. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeModel, ModeHeuristic:
		return m, nil
	default:
		return "", fmt.Errorf("unknown backend mode %q", s)
	}
}

// Resolve picks the concrete mode. Auto becomes model only when a backend
// key is available.
func (m Mode) Resolve(hasKey bool) Mode {
	if m != ModeAuto {
		return m
	}
	if hasKey {
		return ModeModel
	}
	return ModeHeuristic
}

// HeuristicConfig tunes the heuristic pair.
type HeuristicConfig struct {
	MaxSampledTurns int `mapstructure:"max-sampled-turns"`
	VerboseWords    int `mapstructure:"verbose-words"`
	ShortWords      int `mapstructure:"short-words"`
	FillerThreshold int `mapstructure:"filler-threshold"`
}

func (h HeuristicConfig) thresholds() rubric.Thresholds {
	return rubric.Thresholds{
		VerboseWords:    h.VerboseWords,
		ShortWords:      h.ShortWords,
		FillerThreshold: h.FillerThreshold,
	}
}

// Components describes how to assemble a Service.
type Components struct {
	Variant   taxonomy.Variant
	Mode      Mode
	Generator ai.Generator
	Heuristic HeuristicConfig
}

// Build wires extractor and scorer for the resolved mode. Model mode needs a
// generator even if it has no credentials; calls then fail with
// ai.ErrNotConfigured.
func Build(c Components, logger *zap.Logger, opts ...Option) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	def, err := taxonomy.Lookup(c.Variant)
	if err != nil {
		return nil, err
	}

	switch c.Mode {
	case ModeModel:
		if c.Generator == nil {
			return nil, fmt.Errorf("model mode requires a generator")
		}
		return New(def,
			evidence.NewModelExtractor(c.Generator, def, logger.Named("evidence")),
			rubric.NewModelScorer(c.Generator, def, logger.Named("rubric")),
			logger, opts...), nil
	case ModeHeuristic:
		roles := transcript.DefaultRoles().With(def.PrimaryKeywords, def.CounterpartKeywords)
		return New(def,
			evidence.NewHeuristicExtractor(roles, c.Heuristic.MaxSampledTurns),
			rubric.NewHeuristicScorer(def, roles, c.Heuristic.thresholds()),
			logger, opts...), nil
	default:
		return nil, fmt.Errorf("mode %q must be resolved before building", c.Mode)
	}
}
