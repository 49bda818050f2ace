package evidence

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/practice-evaluator/internal/ai"
	"github.com/spigell/practice-evaluator/internal/taxonomy"
	"github.com/spigell/practice-evaluator/internal/transcript"
)

// StageName labels extraction failures and log entries.
const StageName = "extract"

// ModelExtractor delegates extraction to a text-generation backend.
type ModelExtractor struct {
	generator ai.Generator
	def       *taxonomy.Definition
	system    string
	logger    *zap.Logger
}

func NewModelExtractor(generator ai.Generator, def *taxonomy.Definition, logger *zap.Logger) *ModelExtractor {
	return &ModelExtractor{
		generator: generator,
		def:       def,
		system:    SystemPrompt(def),
		logger:    logger,
	}
}

func (e *ModelExtractor) Name() string {
	return "model"
}

// Extract sends the transcript text to the backend and decodes the reply.
// Undecodable replies surface as *ai.MalformedResponseError.
func (e *ModelExtractor) Extract(ctx context.Context, doc transcript.Document) (*Set, error) {
	start := time.Now()

	raw, err := e.generator.GenerateContent(ctx, e.system, UserPrompt(doc))
	if err != nil {
		return nil, err
	}

	e.logger.Debug("evidence response received",
		zap.String("prompt_version", PromptVersion),
		zap.Duration("elapsed", time.Since(start)),
	)

	set, issues, err := Decode(raw, e.def, doc)
	if err != nil {
		return nil, err
	}

	for _, issue := range issues {
		e.logger.Warn("evidence validation issue", zap.String("issue", issue.String()))
	}

	e.logger.Info("evidence extracted",
		zap.Int("events", len(set.Events)),
		zap.Int("issues", len(issues)),
	)

	return set, nil
}
