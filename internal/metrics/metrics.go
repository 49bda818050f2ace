// Package metrics provides Prometheus metrics for the evaluation service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "practice_evaluator"

	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid_request"
	OutcomeMalformed = "malformed_response"
	OutcomeFailed    = "failed"
)

// Recorder owns every metric of the service. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry *prometheus.Registry

	evaluations         *prometheus.CounterVec
	stageDuration       *prometheus.HistogramVec
	upstreamErrors      *prometheus.CounterVec
	evidenceEvents      prometheus.Histogram
	overallScore        prometheus.Histogram
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewRecorder registers all metrics on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}
	auto := promauto.With(r.registry)

	r.evaluations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "Evaluations by scoring path and outcome",
	}, []string{"path", "outcome"})

	r.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of pipeline stages",
		Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"stage", "path"})

	r.upstreamErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_errors_total",
		Help:      "Failed calls to the text-generation backend",
	}, []string{"provider", "status_code"})

	r.evidenceEvents = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "evidence_events",
		Help:      "Number of evidence events per evaluation",
		Buckets:   prometheus.LinearBuckets(0, 5, 10),
	})

	r.overallScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "overall_score",
		Help:      "Overall score (0-100) of completed evaluations",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})

	r.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	r.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) ObserveEvaluation(path, outcome string) {
	if r == nil {
		return
	}
	r.evaluations.WithLabelValues(path, outcome).Inc()
}

func (r *Recorder) ObserveStage(stage, path string, d time.Duration) {
	if r == nil {
		return
	}
	r.stageDuration.WithLabelValues(stage, path).Observe(d.Seconds())
}

func (r *Recorder) ObserveUpstreamError(provider string, statusCode int) {
	if r == nil {
		return
	}
	r.upstreamErrors.WithLabelValues(provider, strconv.Itoa(statusCode)).Inc()
}

func (r *Recorder) ObserveResult(events, overall int) {
	if r == nil {
		return
	}
	r.evidenceEvents.Observe(float64(events))
	r.overallScore.Observe(float64(overall))
}

func (r *Recorder) ObserveHTTP(route, method string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}
