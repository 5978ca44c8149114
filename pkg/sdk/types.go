package staffdex

import (
	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
	"github.com/kailas-cloud/staffdex/internal/usecase/generation"
)

// Response types shared with the server.
type (
	KeywordResponse  = result.KeywordResponse
	SemanticResponse = result.SemanticResponse
	HybridResponse   = result.HybridResponse
	ChatResponse     = generation.Response
)

// HealthStatus represents the aggregated service health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok" or "degraded"
	Checks map[string]string `json:"checks"` // component → "ok"/"error"
}

// Usage reports embedding tokens spent on one call (from X-Embedding-Tokens).
type Usage struct {
	EmbeddingTokens int
}
