// Package pipeline sequences parsing, evidence extraction, scoring and
// normalization for one evaluation request.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/spigell/practice-evaluator/internal/ai"
	"github.com/spigell/practice-evaluator/internal/evidence"
	"github.com/spigell/practice-evaluator/internal/logger"
	"github.com/spigell/practice-evaluator/internal/metrics"
	"github.com/spigell/practice-evaluator/internal/rubric"
	"github.com/spigell/practice-evaluator/internal/taxonomy"
	"github.com/spigell/practice-evaluator/internal/transcript"
)

const (
	StageExtract   = evidence.StageName
	StageScore     = rubric.StageName
	StageNormalize = "normalize"

	tracerName = "github.com/spigell/practice-evaluator/internal/pipeline"
)

// ErrInvalidRequest is returned when the transcript is empty or contains no
// parseable turns. Nothing reaches the extractor in that case.
var ErrInvalidRequest = errors.New("invalid request")

// Request is one evaluation input.
type Request struct {
	Transcript string
	Hints      rubric.Hints
}

// Result is the combined output of a successful evaluation.
type Result struct {
	Evidence *evidence.Set     `json:"evidence"`
	Scores   []rubric.Item     `json:"scores"`
	Turns    []transcript.Turn `json:"-"`
}

// StageError wraps a failure of the extract, score or normalize stage.
// Raw is the unparsed backend reply when the failure was a decoding error;
// Evidence is set when extraction had already succeeded.
type StageError struct {
	Stage    string
	Raw      string
	Evidence *evidence.Set
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Malformed reports whether the stage failed on an undecodable backend reply.
func (e *StageError) Malformed() bool {
	var m *ai.MalformedResponseError
	return errors.As(e.Err, &m)
}

// Service runs evaluations. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	def       *taxonomy.Definition
	extractor evidence.Extractor
	scorer    rubric.Scorer
	logger    *zap.Logger
	metrics   *metrics.Recorder
	tracer    trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Service) {
		s.metrics = r
	}
}

// WithTracerProvider sends the stage spans to tp instead of the global
// provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

func New(def *taxonomy.Definition, extractor evidence.Extractor, scorer rubric.Scorer, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		def:       def,
		extractor: extractor,
		scorer:    scorer,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path names the active implementation, "model" or "heuristic".
func (s *Service) Path() string {
	return s.extractor.Name()
}

func (s *Service) Variant() taxonomy.Variant {
	return s.def.Variant
}

// Evaluate runs one request through every stage. Errors are ErrInvalidRequest
// (wrapped) or *StageError.
func (s *Service) Evaluate(ctx context.Context, req Request) (*Result, error) {
	run := &evaluation{
		state:  StateAwaitingInput,
		logger: logger.WithEvaluationFields(s.logger, string(s.def.Variant), s.Path()),
	}

	result, err := s.evaluate(ctx, run, req)
	if err != nil {
		run.fail(err)
		s.metrics.ObserveEvaluation(s.Path(), outcome(err))
		return nil, err
	}

	run.advance(StateComplete)
	s.metrics.ObserveEvaluation(s.Path(), metrics.OutcomeSuccess)
	s.metrics.ObserveResult(len(result.Evidence.Events), rubric.OverallScore(result.Scores))
	return result, nil
}

func (s *Service) evaluate(ctx context.Context, run *evaluation, req Request) (*Result, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, fmt.Errorf("%w: transcript must be a non-empty string", ErrInvalidRequest)
	}

	doc := transcript.NewDocument(req.Transcript)
	if len(doc.Turns) == 0 {
		return nil, fmt.Errorf("%w: no line matches the \"T<n> (Speaker): text\" format", ErrInvalidRequest)
	}
	run.logger.Info("transcript parsed", zap.Int("turns", len(doc.Turns)))

	run.advance(StateExtracting)
	set, err := s.extract(ctx, doc)
	if err != nil {
		return nil, s.stageError(StageExtract, nil, err)
	}

	run.advance(StateScoring)
	scored, err := s.score(ctx, rubric.Input{Transcript: doc, Evidence: set, Hints: req.Hints})
	if err != nil {
		return nil, s.stageError(StageScore, set, err)
	}

	run.advance(StateNormalizing)
	items := rubric.Normalize(scored.Items, scored.Scale)
	if err := rubric.CheckComplete(s.def, items); err != nil {
		return nil, &StageError{Stage: StageNormalize, Evidence: set, Err: err}
	}

	return &Result{Evidence: set, Scores: items, Turns: doc.Turns}, nil
}

func (s *Service) extract(ctx context.Context, doc transcript.Document) (*evidence.Set, error) {
	ctx, span := s.tracer.Start(ctx, "pipeline.extract", trace.WithAttributes(
		attribute.String("evaluator.path", s.Path()),
		attribute.Int("evaluator.turns", len(doc.Turns)),
	))
	defer span.End()

	start := time.Now()
	set, err := s.extractor.Extract(ctx, doc)
	s.metrics.ObserveStage(StageExtract, s.Path(), time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("evaluator.events", len(set.Events)))
	return set, nil
}

func (s *Service) score(ctx context.Context, in rubric.Input) (*rubric.Result, error) {
	ctx, span := s.tracer.Start(ctx, "pipeline.score", trace.WithAttributes(
		attribute.String("evaluator.path", s.Path()),
	))
	defer span.End()

	start := time.Now()
	res, err := s.scorer.Score(ctx, in)
	s.metrics.ObserveStage(StageScore, s.Path(), time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scoring failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("evaluator.items", len(res.Items)))
	return res, nil
}

func (s *Service) stageError(stage string, set *evidence.Set, err error) error {
	stageErr := &StageError{Stage: stage, Evidence: set, Err: err}

	var malformed *ai.MalformedResponseError
	if errors.As(err, &malformed) {
		stageErr.Raw = malformed.Raw
	}

	var upstream *ai.UpstreamError
	if errors.As(err, &upstream) {
		s.metrics.ObserveUpstreamError(upstream.Provider, upstream.StatusCode)
	}

	return stageErr
}

func outcome(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return metrics.OutcomeInvalid
	}
	var stageErr *StageError
	if errors.As(err, &stageErr) && stageErr.Malformed() {
		return metrics.OutcomeMalformed
	}
	return metrics.OutcomeFailed
}
