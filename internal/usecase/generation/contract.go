package generation

import (
	"context"

	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
)

// HybridSearcher retrieves fused candidates.
type HybridSearcher interface {
	Search(ctx context.Context, query string, topK int) (result.HybridResponse, error)
}

// Completer produces a chat completion for one system and one user message.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
