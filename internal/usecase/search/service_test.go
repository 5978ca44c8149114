package search

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/staffdex/internal/domain"
	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
)

type fakeKeyword struct {
	results []result.Match
	gotTopK atomic.Int64
}

func (f *fakeKeyword) Search(query string, topK int) result.KeywordResponse {
	f.gotTopK.Store(int64(topK))
	out := f.results
	if len(out) > topK {
		out = out[:topK]
	}
	return result.KeywordResponse{Query: query, TopK: topK, Results: out}
}

type fakeSemantic struct {
	results []result.SemanticHit
	err     error
	gotTopK atomic.Int64
}

func (f *fakeSemantic) Search(_ context.Context, query string, topK int) (result.SemanticResponse, error) {
	f.gotTopK.Store(int64(topK))
	if f.err != nil {
		return result.SemanticResponse{}, f.err
	}
	out := f.results
	if len(out) > topK {
		out = out[:topK]
	}
	return result.SemanticResponse{Query: query, TopK: topK, Results: out}, nil
}

func TestSearch_SemanticOnlyHitRanksAboveZero(t *testing.T) {
	kw := &fakeKeyword{results: []result.Match{{ID: 1, Name: "Alice", Score: 8}}}
	sem := &fakeSemantic{results: []result.SemanticHit{
		{ID: 2, Name: "Bob", Score: 0.8},
		{ID: 1, Name: "Alice", Score: 0.4},
	}}
	svc := New(kw, sem, DefaultOptions())

	resp, err := svc.Search(context.Background(), "python aws", 5)
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	var bob result.HybridHit
	for _, h := range resp.Results {
		if h.ID == 2 {
			bob = h
		}
	}
	assert.Nil(t, bob.KeywordScore)
	assert.Equal(t, 0.0, bob.KeywordScoreNorm)
	assert.Greater(t, bob.Score, 0.0)
	assert.Equal(t, DefaultOptions().Weights, resp.Weights)
}

func TestSearch_FetchSize(t *testing.T) {
	kw := &fakeKeyword{}
	sem := &fakeSemantic{}
	svc := New(kw, sem, DefaultOptions())

	_, err := svc.Search(context.Background(), "q", 3)
	require.NoError(t, err)
	assert.EqualValues(t, 10, kw.gotTopK.Load())
	assert.EqualValues(t, 10, sem.gotTopK.Load())

	_, err = svc.Search(context.Background(), "q", 25)
	require.NoError(t, err)
	assert.EqualValues(t, 25, kw.gotTopK.Load())
	assert.EqualValues(t, 25, sem.gotTopK.Load())
}

func TestSearch_Truncation(t *testing.T) {
	kw := &fakeKeyword{results: []result.Match{{ID: 1, Score: 3}, {ID: 2, Score: 2}, {ID: 3, Score: 1}}}
	sem := &fakeSemantic{results: []result.SemanticHit{{ID: 4, Score: 0.9}, {ID: 5, Score: 0.1}}}
	svc := New(kw, sem, DefaultOptions())

	resp, err := svc.Search(context.Background(), "q", 2)
	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)

	resp, err = svc.Search(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Len(t, resp.Results, 5, "no truncation when topK is not positive")
}

func TestSearch_SemanticFailureFailsRequest(t *testing.T) {
	kw := &fakeKeyword{results: []result.Match{{ID: 1, Score: 3}}}
	sem := &fakeSemantic{err: domain.ErrIndexUnavailable}
	svc := New(kw, sem, DefaultOptions())

	_, err := svc.Search(context.Background(), "q", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIndexUnavailable))
}

func TestSearch_NoMatchesIsEmpty(t *testing.T) {
	svc := New(&fakeKeyword{}, &fakeSemantic{}, DefaultOptions())

	resp, err := svc.Search(context.Background(), "q", 5)
	require.NoError(t, err)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestNew_DefaultFetchK(t *testing.T) {
	svc := New(&fakeKeyword{}, &fakeSemantic{}, Options{Weights: result.Weights{Semantic: 1}})
	assert.Equal(t, 10, svc.opts.FetchK)
	assert.Equal(t, result.Weights{Semantic: 1}, svc.Weights())
}
