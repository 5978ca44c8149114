package search

import (
	"context"

	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
)

// KeywordSearcher runs baseline search.
type KeywordSearcher interface {
	Search(query string, topK int) result.KeywordResponse
}

// SemanticSearcher runs vector search.
type SemanticSearcher interface {
	Search(ctx context.Context, query string, topK int) (result.SemanticResponse, error)
}
