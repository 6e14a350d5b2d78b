// Package metrics exposes Prometheus counters and histograms for calculations, narrative
// requests and HTTP traffic.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"alight_calculator/pkg/core/calculator"
	"alight_calculator/pkg/core/narrative"
)

const namespace = "alight"

// Outcomes recorded for narrative requests.
const (
	OutcomeOK          = "ok"
	OutcomeRateLimited = "rate_limited"
	OutcomeCredits     = "credits_exhausted"
	OutcomeUnavailable = "unavailable"
	OutcomeCanceled    = "canceled"
)

type Metrics struct {
	registry *prometheus.Registry

	Calculations       *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	CalcDuration       *prometheus.HistogramVec
	NarrativeRequests  *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry, along with the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Completed calculations by calculator and scenario.",
		}, []string{"calculator", "scenario"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Calculations rejected for invalid input.",
		}, []string{"calculator"}),
		CalcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Time spent running a calculator.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"calculator"}),
		NarrativeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narrative_requests_total",
			Help:      "Narrative requests by mode (verdict, memo) and outcome.",
		}, []string{"mode", "outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Calculations,
		m.ValidationFailures,
		m.CalcDuration,
		m.NarrativeRequests,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCalculation records one calculator run. Validation errors count as failures; other
// errors are not counted.
func (m *Metrics) ObserveCalculation(k calculator.Kind, res calculator.Result, took time.Duration, err error) {
	m.CalcDuration.WithLabelValues(string(k)).Observe(took.Seconds())
	if err != nil {
		if errors.Is(err, calculator.ErrInvalidInput) {
			m.ValidationFailures.WithLabelValues(string(k)).Inc()
		}
		return
	}
	m.Calculations.WithLabelValues(string(k), string(res.Summary().Scenario)).Inc()
}

// ObserveNarrative records the outcome of a verdict or memo request.
func (m *Metrics) ObserveNarrative(mode string, err error) {
	m.NarrativeRequests.WithLabelValues(mode, Outcome(err)).Inc()
}

// Outcome classifies a narrative error for labelling.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, narrative.ErrRateLimited):
		return OutcomeRateLimited
	case errors.Is(err, narrative.ErrCreditsExhausted):
		return OutcomeCredits
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	}
	return OutcomeUnavailable
}

// ObserveHTTP records one request against its route pattern.
func (m *Metrics) ObserveHTTP(route, method string, status int, took time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(took.Seconds())
}
