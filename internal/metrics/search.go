package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/staffdex/internal/domain/search/mode"
)

// Search outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	searchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total retrieval requests by mode and outcome",
		},
		[]string{"mode", "status"},
	)

	searchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Retrieval latency in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"mode"},
	)

	searchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of results returned per request",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
		[]string{"mode"},
	)

	// VectorIndexEntries is the number of rows in the loaded vector index.
	VectorIndexEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vector_index_entries",
			Help:      "Rows in the loaded vector index",
		},
	)
)

// ObserveSearch records one retrieval request. Result count is only observed on success.
func ObserveSearch(m mode.Mode, status string, d time.Duration, results int) {
	searchRequestsTotal.WithLabelValues(string(m), status).Inc()
	searchDuration.WithLabelValues(string(m)).Observe(d.Seconds())
	if status == StatusOK {
		searchResults.WithLabelValues(string(m)).Observe(float64(results))
	}
}
