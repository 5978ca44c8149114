package chi

import (
	"context"

	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
	"github.com/kailas-cloud/staffdex/internal/usecase/generation"
	"github.com/kailas-cloud/staffdex/internal/usecase/health"
)

// KeywordSearcher runs baseline search.
type KeywordSearcher interface {
	Search(query string, topK int) result.KeywordResponse
}

// SemanticSearcher runs vector search.
type SemanticSearcher interface {
	Search(ctx context.Context, query string, topK int) (result.SemanticResponse, error)
}

// HybridSearcher runs fused search.
type HybridSearcher interface {
	Search(ctx context.Context, query string, topK int) (result.HybridResponse, error)
}

// Responder composes chat answers.
type Responder interface {
	Respond(ctx context.Context, query string, topK int, requestID string) (generation.Response, error)
}

// HealthChecker aggregates dependency checks.
type HealthChecker interface {
	Check(ctx context.Context) health.Report
}
