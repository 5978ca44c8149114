package semantic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/staffdex/internal/domain"
	"github.com/kailas-cloud/staffdex/internal/domain/employee"
	"github.com/kailas-cloud/staffdex/internal/domain/normalize"
	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
	"github.com/kailas-cloud/staffdex/internal/repository/vectorindex"
	"github.com/kailas-cloud/staffdex/internal/testutil"
)

type fakeEmbedder struct {
	vec    []float32
	tokens int
	err    error
	calls  int
	texts  []string
	wait   bool
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	f.calls++
	f.texts = append(f.texts, text)
	if f.wait {
		<-ctx.Done()
		return domain.EmbeddingResult{}, ctx.Err()
	}
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: f.vec, TotalTokens: f.tokens}, nil
}

type failingIndex struct{ err error }

func (f failingIndex) Load() (*vectorindex.Index, error) { return nil, f.err }

func testIndex(t *testing.T) *vectorindex.Index {
	t.Helper()
	meta := []vectorindex.Meta{
		{RowID: 0, EmployeeID: 3, Name: "Carol", TopFields: result.TopFields{
			Skills: []string{"Golang", "Kubernetes"}, Domains: []string{"Fintech"},
			Availability: employee.Soon, ExperienceYears: 7,
		}},
		{RowID: 1, EmployeeID: 1, Name: "Alice", TopFields: result.TopFields{
			Skills: []string{"Python", "AWS"}, Availability: employee.Available, ExperienceYears: 4,
		}},
	}
	x, err := vectorindex.New(2, [][]float32{{1, 0}, {0, 1}}, meta)
	require.NoError(t, err)
	return x
}

func newService(t *testing.T, emb Embedder, src IndexSource, opts Options) *Service {
	t.Helper()
	return New(emb, src, normalize.New(testutil.Rules()), opts, zap.NewNop())
}

func TestSearch_HydratesNeighbors(t *testing.T) {
	emb := &fakeEmbedder{vec: []float32{3, 1}, tokens: 7}
	svc := newService(t, emb, vectorindex.NewStaticLoader(testIndex(t)), Options{})

	ctx, usage := domain.NewContextWithUsage(context.Background())
	resp, err := svc.Search(ctx, "Golang K8s fintech", 0)
	require.NoError(t, err)

	assert.Equal(t, "go kubernetes finance", resp.NormalizedQuery)
	assert.Equal(t, []string{"go kubernetes finance"}, emb.texts)
	assert.Equal(t, 5, resp.TopK)
	require.Len(t, resp.Results, 2, "index holds fewer rows than top_k")
	assert.Equal(t, 3, resp.Results[0].ID)
	assert.Equal(t, "Carol", resp.Results[0].Name)
	assert.Equal(t, employee.Soon, resp.Results[0].Meta.Availability)
	assert.Greater(t, resp.Results[0].Score, resp.Results[1].Score)
	assert.InDelta(t, 3/sqrt10, resp.Results[0].Score, 1e-5, "query vector is L2-normalized")

	assert.Equal(t, 7, usage.TotalTokens)
	assert.Equal(t, 1, usage.Calls)
}

const sqrt10 = 3.1622776601683795

func TestSearch_TopK(t *testing.T) {
	emb := &fakeEmbedder{vec: []float32{0, 1}}
	svc := newService(t, emb, vectorindex.NewStaticLoader(testIndex(t)), Options{TopK: 5})

	resp, err := svc.Search(context.Background(), "python", 1)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, resp.Results[0].ID)
	assert.Equal(t, 1, resp.TopK)
}

func TestSearch_EmptyNormalizedQuerySkipsEmbedding(t *testing.T) {
	emb := &fakeEmbedder{vec: []float32{1, 0}}
	svc := newService(t, emb, failingIndex{err: domain.ErrIndexUnavailable}, Options{})

	resp, err := svc.Search(context.Background(), "someone who need", 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.NotNil(t, resp.Results)
	assert.Equal(t, 0, emb.calls)
}

func TestSearch_IndexUnavailable(t *testing.T) {
	emb := &fakeEmbedder{vec: []float32{1, 0}}
	svc := newService(t, emb, failingIndex{err: domain.ErrIndexUnavailable}, Options{})

	_, err := svc.Search(context.Background(), "python", 0)
	require.ErrorIs(t, err, domain.ErrIndexUnavailable)
	assert.Equal(t, 0, emb.calls, "no embedding spend when the index is missing")
}

func TestSearch_EmbeddingError(t *testing.T) {
	emb := &fakeEmbedder{err: domain.ErrEmbeddingProviderError}
	svc := newService(t, emb, vectorindex.NewStaticLoader(testIndex(t)), Options{})

	_, err := svc.Search(context.Background(), "python", 0)
	assert.ErrorIs(t, err, domain.ErrEmbeddingProviderError)
}

func TestSearch_EmbeddingTimeout(t *testing.T) {
	emb := &fakeEmbedder{wait: true}
	svc := newService(t, emb, vectorindex.NewStaticLoader(testIndex(t)), Options{EmbedTimeout: 10 * time.Millisecond})

	_, err := svc.Search(context.Background(), "python", 0)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestSearch_DimensionMismatch(t *testing.T) {
	emb := &fakeEmbedder{vec: []float32{1, 0, 0}}
	svc := newService(t, emb, vectorindex.NewStaticLoader(testIndex(t)), Options{})

	_, err := svc.Search(context.Background(), "python", 0)
	assert.ErrorIs(t, err, domain.ErrVectorDimMismatch)
}

func TestSearch_DoesNotMutateEmbedderVector(t *testing.T) {
	emb := &fakeEmbedder{vec: []float32{3, 4}}
	svc := newService(t, emb, vectorindex.NewStaticLoader(testIndex(t)), Options{})

	_, err := svc.Search(context.Background(), "python", 0)
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4}, emb.vec)
}

func TestReason(t *testing.T) {
	assert.Equal(t,
		"Semantic match on skills: Go, Kubernetes; domains: Fintech.",
		Reason(result.TopFields{Skills: []string{"Go", "Kubernetes"}, Domains: []string{"Fintech"}}),
	)
	assert.Equal(t, "Semantic match on profile.", Reason(result.TopFields{}))
}
