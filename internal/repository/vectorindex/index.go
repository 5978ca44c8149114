// Package vectorindex stores L2-normalized employee profile embeddings in a
// flat inner-product index with a parallel metadata table keyed by row.
package vectorindex

import (
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/staffdex/internal/domain"
	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
)

// IndexType is recorded in the stats artifact.
const IndexType = "IndexFlatIP"

// Meta is the metadata row stored next to each vector.
type Meta struct {
	RowID      int              `json:"row_id"`
	EmployeeID int              `json:"employee_id"`
	Name       string           `json:"name"`
	TopFields  result.TopFields `json:"top_fields"`
}

// Neighbor is one search hit.
type Neighbor struct {
	Row   int
	Score float32
}

// Index is an immutable flat inner-product index. Safe for concurrent reads.
type Index struct {
	dim     int
	vectors []float32 // row-major, len = count*dim
	meta    []Meta
}

// New builds an index from row vectors and their metadata.
// Vectors are stored as given; callers normalize them first.
func New(dim int, vectors [][]float32, meta []Meta) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dim)
	}
	if len(vectors) != len(meta) {
		return nil, fmt.Errorf("vector/metadata count mismatch: %d vs %d", len(vectors), len(meta))
	}
	flat := make([]float32, 0, len(vectors)*dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("row %d: %w: got %d, want %d", i, domain.ErrVectorDimMismatch, len(v), dim)
		}
		flat = append(flat, v...)
	}
	return newFlat(dim, flat, meta)
}

func newFlat(dim int, flat []float32, meta []Meta) (*Index, error) {
	if len(flat) != len(meta)*dim {
		return nil, fmt.Errorf("vector/metadata count mismatch: %d vectors vs %d rows", len(flat)/dim, len(meta))
	}
	for i := range meta {
		if meta[i].RowID != i {
			return nil, fmt.Errorf("metadata row %d has row_id %d", i, meta[i].RowID)
		}
	}
	return &Index{dim: dim, vectors: flat, meta: meta}, nil
}

// Dim returns the vector dimension.
func (x *Index) Dim() int { return x.dim }

// Len returns the number of stored rows.
func (x *Index) Len() int { return len(x.meta) }

// Meta returns the metadata of row, false when out of range.
func (x *Index) Meta(row int) (Meta, bool) {
	if row < 0 || row >= len(x.meta) {
		return Meta{}, false
	}
	return x.meta[row], true
}

// Search returns up to k neighbors by inner product, best first (ties: row asc).
// Fewer than k are returned when the index holds fewer rows.
func (x *Index) Search(vec []float32, k int) ([]Neighbor, error) {
	if len(vec) != x.dim {
		return nil, fmt.Errorf("%w: query has %d, index has %d", domain.ErrVectorDimMismatch, len(vec), x.dim)
	}
	if k <= 0 {
		return []Neighbor{}, nil
	}

	all := make([]Neighbor, len(x.meta))
	for row := range all {
		all[row] = Neighbor{Row: row, Score: dot(vec, x.row(row))}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].Row < all[j].Row
	})

	if k < len(all) {
		all = all[:k]
	}
	return all, nil
}

func (x *Index) row(i int) []float32 {
	return x.vectors[i*x.dim : (i+1)*x.dim]
}

func dot(a, b []float32) float32 {
	var s float32
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// L2Normalize scales v to unit length in place. Zero vectors are left unchanged.
func L2Normalize(v []float32) {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}
