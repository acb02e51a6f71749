package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce      sync.Once
	evaluationsTotal  *prometheus.CounterVec
	analyticsRequests *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the evaluation
// pipeline and analytics reads.
func RegisterMetrics() {
	registerOnce.Do(func() {
		evaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promptmaster_evaluations_total",
			Help: "Total number of prompt evaluation submissions by outcome.",
		}, []string{"outcome"})

		analyticsRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promptmaster_analytics_requests_total",
			Help: "Total number of analytics read operations served.",
		}, []string{"operation"})

		prometheus.MustRegister(evaluationsTotal, analyticsRequests)
	})
}

// Evaluations exposes the counter for evaluation outcomes.
func Evaluations() *prometheus.CounterVec {
	RegisterMetrics()
	return evaluationsTotal
}

// AnalyticsRequests exposes the counter for analytics operations.
func AnalyticsRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return analyticsRequests
}
