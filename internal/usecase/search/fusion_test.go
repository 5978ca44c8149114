package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/staffdex/internal/domain/employee"
	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
)

func f(v float64) *float64 { return &v }

func TestMinMax(t *testing.T) {
	got := minMax([]*float64{f(2), nil, f(6), f(4)})
	assert.Equal(t, []float64{0, 0, 1, 0.5}, got)
}

func TestMinMax_AllEqualAndSingle(t *testing.T) {
	assert.Equal(t, []float64{0, 0}, minMax([]*float64{f(0.7), f(0.7)}))
	assert.Equal(t, []float64{0, 0}, minMax([]*float64{nil, f(3)}))
	assert.Equal(t, []float64{0, 0}, minMax([]*float64{nil, nil}))
	assert.Empty(t, minMax(nil))
}

func TestMinMax_Bounds(t *testing.T) {
	in := []*float64{f(-0.2), f(0.9), f(0.31), nil, f(0.05), f(-0.2)}
	for _, v := range minMax(in) {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestMerge_KeywordFirstThenSemanticOnly(t *testing.T) {
	kw := []result.Match{
		{ID: 2, Name: "Bob", Score: 9, Reason: "kw-2", Availability: employee.Available},
		{ID: 1, Name: "Alice", Score: 3, Reason: "kw-1"},
	}
	sem := []result.SemanticHit{
		{ID: 7, Name: "Gina", Score: 0.8, Meta: result.TopFields{Availability: employee.Soon}},
		{ID: 1, Name: "Alice", Score: 0.5},
	}

	hits := merge(kw, sem)
	require.Len(t, hits, 3)
	assert.Equal(t, []int{2, 1, 7}, []int{hits[0].ID, hits[1].ID, hits[2].ID})

	assert.Nil(t, hits[0].SemanticScore)
	require.NotNil(t, hits[1].SemanticScore)
	assert.InDelta(t, 0.5, *hits[1].SemanticScore, 1e-9)
	assert.Equal(t, "kw-1", hits[1].KeywordReason)
	assert.Nil(t, hits[2].KeywordScore)
	assert.Equal(t, employee.Soon, hits[2].Availability)
	assert.NotEmpty(t, hits[2].SemanticReason)
}

func TestFuse_WeightsAndOrder(t *testing.T) {
	hits := merge(
		[]result.Match{{ID: 1, Score: 10}, {ID: 2, Score: 5}},
		[]result.SemanticHit{{ID: 3, Score: 0.9}, {ID: 2, Score: 0.4}},
	)
	fuse(hits, result.Weights{Semantic: 0.6, Keyword: 0.4})

	// id1: kw 1.0, sem absent -> 0.4
	// id2: kw 0.0, sem 0.0     -> 0.0
	// id3: kw absent, sem 1.0  -> 0.6
	require.Len(t, hits, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{hits[0].ID, hits[1].ID, hits[2].ID})
	assert.InDelta(t, 0.6, hits[0].Score, 1e-9)
	assert.InDelta(t, 0.4, hits[1].Score, 1e-9)
	assert.InDelta(t, 0.0, hits[2].Score, 1e-9)
	assert.Equal(t, 0.0, hits[0].KeywordScoreNorm)
}

func TestFuse_TiesKeepMergeOrder(t *testing.T) {
	hits := merge(
		[]result.Match{{ID: 5, Score: 4}, {ID: 4, Score: 4}},
		[]result.SemanticHit{{ID: 9, Score: 0.3}},
	)
	fuse(hits, result.Weights{Semantic: 0.6, Keyword: 0.4})

	assert.Equal(t, []int{5, 4, 9}, []int{hits[0].ID, hits[1].ID, hits[2].ID})
}

func TestFuse_ConvexBound(t *testing.T) {
	w := result.Weights{Semantic: 0.7, Keyword: 0.3}
	hits := merge(
		[]result.Match{{ID: 1, Score: 12}, {ID: 2, Score: 3}, {ID: 3, Score: 1}},
		[]result.SemanticHit{{ID: 3, Score: 0.61}, {ID: 4, Score: 0.2}, {ID: 1, Score: -0.1}},
	)
	fuse(hits, w)

	for _, h := range hits {
		assert.GreaterOrEqual(t, h.Score, 0.0)
		assert.LessOrEqual(t, h.Score, w.Semantic+w.Keyword+1e-12)
	}
}
