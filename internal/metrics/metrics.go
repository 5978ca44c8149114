// Package metrics defines the Prometheus collectors for the staffing API.
// Collectors are package-level and must be registered once from main via Register.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "staffdex"

var registerOnce sync.Once

// Register registers every collector with the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			EmbeddingRequestsTotal,
			EmbeddingRequestDuration,
			EmbeddingTokensTotal,
			EmbeddingErrorsTotal,
			EmbeddingCacheTotal,
			searchRequestsTotal,
			searchDuration,
			searchResults,
			VectorIndexEntries,
			GenerationRequestsTotal,
		)
	})
}
