// Package search fuses keyword and semantic retrieval into one hybrid ranking.
package search

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/staffdex/internal/domain/search/mode"
	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
	"github.com/kailas-cloud/staffdex/internal/metrics"
)

// Options configures fusion.
type Options struct {
	Weights result.Weights
	// FetchK is the minimum number of results requested from each sub-search.
	FetchK int
}

// DefaultOptions returns semantic 0.6, keyword 0.4 and a fetch size of 10.
func DefaultOptions() Options {
	return Options{
		Weights: result.Weights{Semantic: 0.6, Keyword: 0.4},
		FetchK:  10,
	}
}

// Service runs hybrid search. Safe for concurrent use.
type Service struct {
	keyword  KeywordSearcher
	semantic SemanticSearcher
	opts     Options
}

// New creates a hybrid search service.
func New(keyword KeywordSearcher, semantic SemanticSearcher, opts Options) *Service {
	if opts.FetchK <= 0 {
		opts.FetchK = DefaultOptions().FetchK
	}
	return &Service{keyword: keyword, semantic: semantic, opts: opts}
}

// Weights returns the fusion weights.
func (s *Service) Weights() result.Weights { return s.opts.Weights }

// Search runs both sub-searches concurrently and fuses them. Results are
// truncated to topK when topK > 0. A semantic failure fails the request.
func (s *Service) Search(ctx context.Context, query string, topK int) (result.HybridResponse, error) {
	start := time.Now()

	hits, err := s.search(ctx, query, topK)
	if err != nil {
		metrics.ObserveSearch(mode.Hybrid, metrics.StatusError, time.Since(start), 0)
		return result.HybridResponse{}, err
	}
	metrics.ObserveSearch(mode.Hybrid, metrics.StatusOK, time.Since(start), len(hits))

	return result.HybridResponse{
		Query:   query,
		TopK:    topK,
		Weights: s.opts.Weights,
		Results: hits,
	}, nil
}

func (s *Service) search(ctx context.Context, query string, topK int) ([]result.HybridHit, error) {
	fetch := max(topK, s.opts.FetchK)

	var (
		kw  result.KeywordResponse
		sem result.SemanticResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		kw = s.keyword.Search(query, fetch)
		return nil
	})
	g.Go(func() error {
		var err error
		sem, err = s.semantic.Search(gctx, query, fetch)
		if err != nil {
			return fmt.Errorf("semantic search: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hits := merge(kw.Results, sem.Results)
	fuse(hits, s.opts.Weights)

	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}
