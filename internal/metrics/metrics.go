// Package metrics defines the Prometheus collectors exported by quizbank.
//
// A nil *Metrics is valid and records nothing, so components can be built
// without a registry in tests and one-shot CLI commands.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quizbank"

// Metrics groups all collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Verdicts          *prometheus.CounterVec
	Rejections        *prometheus.CounterVec
	Draws             *prometheus.CounterVec
	ReplenishRuns     *prometheus.CounterVec
	Additions         *prometheus.CounterVec
	Pruned            *prometheus.CounterVec
	ReplenishDuration *prometheus.HistogramVec
	ProviderCalls     *prometheus.CounterVec
}

// New creates the collectors and registers them, along with the Go runtime
// and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_verdicts_total",
				Help:      "Answer validation outcomes for generated questions",
			},
			[]string{"subject", "verdict"},
		),
		Rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_rejections_total",
				Help:      "Generated questions rejected, by the validator that rejected them",
			},
			[]string{"validator"},
		),
		Draws: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "draws_total",
				Help:      "Quiz draws, labelled by whether the bank could serve them",
			},
			[]string{"subject", "result"},
		),
		ReplenishRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "replenish_runs_total",
				Help:      "Replenishment requests, started or skipped because one was in flight",
			},
			[]string{"subject", "outcome"},
		),
		Additions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bank_additions_total",
				Help:      "Questions added to the bank, by source",
			},
			[]string{"subject", "source"},
		),
		Pruned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bank_pruned_total",
				Help:      "Mastered and stale questions removed from the bank",
			},
			[]string{"subject"},
		),
		ReplenishDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "replenish_duration_seconds",
				Help:      "Wall time of a replenishment run",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"subject"},
		),
		ProviderCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_calls_total",
				Help:      "Calls to the generative text provider, by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Verdicts,
		m.Rejections,
		m.Draws,
		m.ReplenishRuns,
		m.Additions,
		m.Pruned,
		m.ReplenishDuration,
		m.ProviderCalls,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Verdict(subject, verdict string) {
	if m == nil {
		return
	}
	m.Verdicts.WithLabelValues(subject, verdict).Inc()
}

func (m *Metrics) Rejected(validator string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(validator).Inc()
}

// Draw records a draw; served is false when the bank was below its floor.
func (m *Metrics) Draw(subject string, served bool) {
	if m == nil {
		return
	}
	result := "served"
	if !served {
		result = "empty"
	}
	m.Draws.WithLabelValues(subject, result).Inc()
}

func (m *Metrics) Replenish(subject string, started bool) {
	if m == nil {
		return
	}
	outcome := "started"
	if !started {
		outcome = "skipped"
	}
	m.ReplenishRuns.WithLabelValues(subject, outcome).Inc()
}

func (m *Metrics) Added(subject, source string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Additions.WithLabelValues(subject, source).Add(float64(n))
}

func (m *Metrics) Prune(subject string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Pruned.WithLabelValues(subject).Add(float64(n))
}

func (m *Metrics) ReplenishTook(subject string, d time.Duration) {
	if m == nil {
		return
	}
	m.ReplenishDuration.WithLabelValues(subject).Observe(d.Seconds())
}

func (m *Metrics) ProviderCall(ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.ProviderCalls.WithLabelValues(outcome).Inc()
}
