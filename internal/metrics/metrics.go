package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the evaluation collectors
type Metrics struct {
	Evaluations *prometheus.CounterVec
	Violations  *prometheus.CounterVec
	Scores      prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_evaluations_total",
			Help: "Loan applications evaluated, by outcome.",
		}, []string{"outcome"}),
		Violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_compliance_violations_total",
			Help: "Applications rejected by the regulatory checks, by rule.",
		}, []string{"rule"}),
		Scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "loan_score",
			Help:    "Distribution of loan scores for approved applications.",
			Buckets: prometheus.LinearBuckets(10, 10, 9),
		}),
		gatherer: reg,
	}
	reg.MustRegister(m.Evaluations, m.Violations, m.Scores)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
