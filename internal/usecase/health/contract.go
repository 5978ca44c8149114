package health

import (
	"context"

	"github.com/kailas-cloud/staffdex/internal/repository/vectorindex"
)

// CachePinger checks embedding cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// IndexSource reports whether the vector index loaded.
type IndexSource interface {
	Load() (*vectorindex.Index, error)
}
