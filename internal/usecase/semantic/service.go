// Package semantic implements nearest-neighbor search over employee profile embeddings.
package semantic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/staffdex/internal/domain"
	"github.com/kailas-cloud/staffdex/internal/domain/normalize"
	"github.com/kailas-cloud/staffdex/internal/domain/search/mode"
	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
	"github.com/kailas-cloud/staffdex/internal/metrics"
	"github.com/kailas-cloud/staffdex/internal/repository/vectorindex"
)

// Options configures semantic search.
type Options struct {
	// TopK is used when the caller passes topK <= 0.
	TopK int
	// EmbedTimeout bounds the query embedding call. Zero means no extra bound.
	EmbedTimeout time.Duration
}

// Service embeds queries and searches the vector index. Safe for concurrent use.
type Service struct {
	embed  Embedder
	index  IndexSource
	norm   *normalize.Normalizer
	opts   Options
	logger *zap.Logger
}

// New creates a semantic search service.
func New(embed Embedder, index IndexSource, norm *normalize.Normalizer, opts Options, logger *zap.Logger) *Service {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	return &Service{embed: embed, index: index, norm: norm, opts: opts, logger: logger}
}

// DefaultTopK returns the configured result count.
func (s *Service) DefaultTopK() int { return s.opts.TopK }

// Search returns the topK nearest employees to query. topK <= 0 selects the configured default.
func (s *Service) Search(ctx context.Context, query string, topK int) (result.SemanticResponse, error) {
	start := time.Now()

	resp, err := s.search(ctx, query, topK)
	if err != nil {
		metrics.ObserveSearch(mode.Semantic, metrics.StatusError, time.Since(start), 0)
		return result.SemanticResponse{}, err
	}
	metrics.ObserveSearch(mode.Semantic, metrics.StatusOK, time.Since(start), len(resp.Results))
	return resp, nil
}

func (s *Service) search(ctx context.Context, query string, topK int) (result.SemanticResponse, error) {
	k := topK
	if k <= 0 {
		k = s.opts.TopK
	}

	normalized := s.norm.Text(query)
	resp := result.SemanticResponse{
		Query:           query,
		NormalizedQuery: normalized,
		TopK:            k,
		Results:         []result.SemanticHit{},
	}
	if normalized == "" {
		return resp, nil
	}

	idx, err := s.index.Load()
	if err != nil {
		return result.SemanticResponse{}, fmt.Errorf("load index: %w", err)
	}

	vec, err := s.vectorize(ctx, normalized)
	if err != nil {
		return result.SemanticResponse{}, err
	}

	neighbors, err := idx.Search(vec, k)
	if err != nil {
		return result.SemanticResponse{}, fmt.Errorf("search index: %w", err)
	}

	for _, n := range neighbors {
		m, ok := idx.Meta(n.Row)
		if !ok {
			return result.SemanticResponse{}, fmt.Errorf("%w: no metadata for row %d", domain.ErrIndexUnavailable, n.Row)
		}
		resp.Results = append(resp.Results, result.SemanticHit{
			ID:    m.EmployeeID,
			Name:  m.Name,
			Score: float64(n.Score),
			Meta:  m.TopFields,
		})
	}
	return resp, nil
}

func (s *Service) vectorize(ctx context.Context, text string) ([]float32, error) {
	if s.opts.EmbedTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.EmbedTimeout)
		defer cancel()
	}

	res, err := s.embed.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	domain.UsageFromContext(ctx).Record(res.TotalTokens)

	s.logger.Debug("Query vectorized",
		zap.String("normalized_query", text),
		zap.Int("dimensions", len(res.Embedding)),
		zap.Int("total_tokens", res.TotalTokens),
	)

	vec := make([]float32, len(res.Embedding))
	copy(vec, res.Embedding)
	vectorindex.L2Normalize(vec)
	return vec, nil
}

// Reason renders a short explanation from the snapshot stored with the index row.
func Reason(f result.TopFields) string {
	var parts []string
	if len(f.Skills) > 0 {
		parts = append(parts, "skills: "+strings.Join(f.Skills, ", "))
	}
	if len(f.Domains) > 0 {
		parts = append(parts, "domains: "+strings.Join(f.Domains, ", "))
	}
	if len(parts) == 0 {
		return "Semantic match on profile."
	}
	return "Semantic match on " + strings.Join(parts, "; ") + "."
}
