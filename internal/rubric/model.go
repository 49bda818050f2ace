package rubric

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/practice-evaluator/internal/ai"
	"github.com/spigell/practice-evaluator/internal/evidence"
	"github.com/spigell/practice-evaluator/internal/taxonomy"
)

// StageName labels scoring failures and log entries.
const StageName = "score"

// ModelScorer delegates scoring to a text-generation backend. Its items are
// on the model scale and must be normalized.
type ModelScorer struct {
	generator ai.Generator
	def       *taxonomy.Definition
	system    string
	logger    *zap.Logger
}

func NewModelScorer(generator ai.Generator, def *taxonomy.Definition, logger *zap.Logger) *ModelScorer {
	return &ModelScorer{
		generator: generator,
		def:       def,
		system:    SystemPrompt(def),
		logger:    logger,
	}
}

func (s *ModelScorer) Name() string {
	return "model"
}

func (s *ModelScorer) Score(ctx context.Context, in Input) (*Result, error) {
	set := in.Evidence
	if set == nil {
		set = &evidence.Set{Events: []evidence.Event{}, SummaryCounts: map[string]int{}}
	}

	user, err := UserPrompt(s.def, set, in.Transcript, in.Hints)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := s.generator.GenerateContent(ctx, s.system, user)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("score response received",
		zap.String("prompt_version", PromptVersion),
		zap.Duration("elapsed", time.Since(start)),
	)

	items, err := DecodeItems(raw)
	if err != nil {
		return nil, err
	}

	canonical, unmatched, err := Canonical(s.def, items)
	if err != nil {
		return nil, &ai.MalformedResponseError{Stage: StageName, Raw: raw, Err: err}
	}

	for _, item := range unmatched {
		s.logger.Warn("score item matches no rubric metric",
			zap.String("category", item.Category),
			zap.String("metric", item.Metric),
		)
	}

	s.logger.Info("scores received",
		zap.Int("items", len(items)),
		zap.Int("unmatched", len(unmatched)),
	)

	return &Result{Items: canonical, Scale: ScaleModel}, nil
}
