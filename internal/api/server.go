// Package api exposes the evaluation pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/spigell/practice-evaluator/internal/metrics"
	"github.com/spigell/practice-evaluator/internal/pipeline"
	"github.com/spigell/practice-evaluator/internal/taxonomy"
)

const (
	DefaultRequestTimeout = 5 * time.Minute
	// larger bodies are answered with 413
	maxBodyBytes = 2 << 20
)

// Evaluator is the part of pipeline.Service the handlers need.
type Evaluator interface {
	Evaluate(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
	Path() string
	Variant() taxonomy.Variant
}

type Server struct {
	evaluator      Evaluator
	metrics        *metrics.Recorder
	logger         *zap.Logger
	requestTimeout time.Duration
	router         chi.Router
}

type Option func(*Server)

func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Server) {
		s.metrics = r
	}
}

// WithRequestTimeout bounds the time one evaluation may take. Zero disables
// the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.requestTimeout = d
	}
}

func NewServer(evaluator Evaluator, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &Server{
		evaluator:      evaluator,
		logger:         logger,
		requestTimeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(srv)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(middleware.RequestID)
	r.Use(srv.observe)
	r.Use(srv.recoverer)

	r.Get("/healthz", srv.handleHealth)
	r.Post("/evaluate", srv.handleEvaluate)
	if srv.metrics != nil {
		r.Method(http.MethodGet, "/metrics", srv.metrics.Handler())
	}

	srv.router = r
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type healthResponse struct {
	Status  string `json:"status"`
	Variant string `json:"variant"`
	Path    string `json:"path"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Variant: string(s.evaluator.Variant()),
		Path:    s.evaluator.Path(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
