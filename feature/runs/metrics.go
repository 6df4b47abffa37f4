package runs

import (
	"recon-engine/core/reconcile"
	"recon-engine/core/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the run counters.
type Metrics struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics registers the run metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recon_rule_evaluations_total",
			Help: "Rule results produced, by engine and status.",
		}, []string{"engine", "status"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recon_runs_total",
			Help: "Runs executed, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recon_run_duration_seconds",
			Help:    "Wall time of one run.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.evaluations, m.runs, m.duration)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) observeReconciliation(s *reconcile.Summary) {
	if m == nil || s == nil {
		return
	}
	for _, r := range s.Results {
		m.evaluations.WithLabelValues("reconciliation", string(r.Status)).Inc()
	}
}

func (m *Metrics) observeValidation(s *validate.Summary) {
	if m == nil || s == nil {
		return
	}
	for _, r := range s.Results {
		m.evaluations.WithLabelValues("validation", string(r.Status)).Inc()
	}
}

func (m *Metrics) observeRun(err error, seconds float64) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.duration.Observe(seconds)
}

