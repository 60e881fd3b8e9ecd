package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and summary Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mergenx",
			Name:      "search_requests_total",
			Help:      "Total number of hybrid search requests",
		},
		[]string{"tenant", "status"},
	)

	SearchFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mergenx",
			Name:      "search_fallback_total",
			Help:      "Searches served by the degraded insertion-order fallback",
		},
		[]string{"tenant"},
	)

	SummaryRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mergenx",
			Name:      "summary_requests_total",
			Help:      "Total number of summary generation attempts",
		},
		[]string{"model", "status"},
	)

	SummaryRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mergenx",
			Name:      "summary_request_duration_seconds",
			Help:      "Summary generation duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"model"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search and summary metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchFallbackTotal)
	prometheus.MustRegister(SummaryRequestsTotal)
	prometheus.MustRegister(SummaryRequestDuration)
	searchMetricsRegistered = true
}
