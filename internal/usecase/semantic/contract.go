package semantic

import (
	"context"

	"github.com/kailas-cloud/staffdex/internal/domain"
	"github.com/kailas-cloud/staffdex/internal/repository/vectorindex"
)

// Embedder vectorizes the normalized query.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// IndexSource yields the loaded vector index.
type IndexSource interface {
	Load() (*vectorindex.Index, error)
}
