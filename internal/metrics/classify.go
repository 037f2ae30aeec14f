package metrics

import "github.com/prometheus/client_golang/prometheus"

// Classification Prometheus metrics.
var (
	ClassifyRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inventa",
			Name:      "classify_requests_total",
			Help:      "Total number of classification tier attempts",
		},
		[]string{"tier", "status"},
	)

	ClassifyFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inventa",
			Name:      "classify_fallbacks_total",
			Help:      "Total number of fallbacks past a classification tier",
		},
		[]string{"tier"},
	)

	ClassifyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "inventa",
			Name:      "classify_duration_seconds",
			Help:      "Classification tier duration in seconds",
			Buckets:   []float64{0.005, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"tier"},
	)
)

var classifyMetricsRegistered bool

// RegisterClassifyMetrics registers classification metrics. Must be called once from main.
func RegisterClassifyMetrics() {
	if classifyMetricsRegistered {
		return
	}
	prometheus.MustRegister(ClassifyRequestsTotal)
	prometheus.MustRegister(ClassifyFallbacksTotal)
	prometheus.MustRegister(ClassifyDuration)
	classifyMetricsRegistered = true
}
