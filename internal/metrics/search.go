package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and notification Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propvoice",
			Name:      "search_requests_total",
			Help:      "Total number of hybrid search invocations",
		},
		[]string{"status", "failure_point"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "propvoice",
			Name:      "search_duration_seconds",
			Help:      "End-to-end hybrid search duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	SearchResultsFound = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "propvoice",
			Name:      "search_results_found",
			Help:      "Number of raw matches returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
		},
	)

	NotifyDeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propvoice",
			Name:      "notify_deliveries_total",
			Help:      "Session notification delivery attempts",
		},
		[]string{"kind", "result"}, // result: sent / timeout / error / skipped
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultsFound)
	prometheus.MustRegister(NotifyDeliveriesTotal)
	searchMetricsRegistered = true
}
