package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval and notification Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notedex",
			Name:      "search_requests_total",
			Help:      "Total number of note retrieval requests",
		},
		[]string{"mode", "status"}, // mode: "structural" / "semantic"
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notedex",
			Name:      "notifications_total",
			Help:      "Total push notifications attempted",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers retrieval metrics. Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(NotificationsTotal)
	retrievalMetricsRegistered = true
}
