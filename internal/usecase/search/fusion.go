package search

import (
	"sort"

	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
	"github.com/kailas-cloud/staffdex/internal/usecase/semantic"
)

// merge combines both result lists by employee id: keyword hits first in rank
// order, then semantic-only hits in rank order.
func merge(kw []result.Match, sem []result.SemanticHit) []result.HybridHit {
	hits := make([]result.HybridHit, 0, len(kw)+len(sem))
	pos := make(map[int]int, len(kw)+len(sem))

	for _, m := range kw {
		score := float64(m.Score)
		pos[m.ID] = len(hits)
		hits = append(hits, result.HybridHit{
			ID:            m.ID,
			Name:          m.Name,
			Availability:  m.Availability,
			KeywordScore:  &score,
			KeywordReason: m.Reason,
		})
	}

	for _, s := range sem {
		score := s.Score
		i, ok := pos[s.ID]
		if !ok {
			i = len(hits)
			pos[s.ID] = i
			hits = append(hits, result.HybridHit{
				ID:           s.ID,
				Name:         s.Name,
				Availability: s.Meta.Availability,
			})
		}
		hits[i].SemanticScore = &score
		hits[i].SemanticReason = semantic.Reason(s.Meta)
	}
	return hits
}

// minMax maps each present value to (v-min)/(max-min), using 1.0 as the
// denominator when all values are equal. Absent values map to 0.
func minMax(values []*float64) []float64 {
	out := make([]float64, len(values))
	first := true
	var lo, hi float64
	for _, v := range values {
		if v == nil {
			continue
		}
		if first {
			lo, hi = *v, *v
			first = false
			continue
		}
		lo = min(lo, *v)
		hi = max(hi, *v)
	}
	if first {
		return out
	}

	rng := hi - lo
	if rng <= 0 {
		rng = 1.0
	}
	for i, v := range values {
		if v != nil {
			out[i] = (*v - lo) / rng
		}
	}
	return out
}

// fuse normalizes both axes, computes the weighted score and sorts best first.
// Equal scores keep merge order.
func fuse(hits []result.HybridHit, w result.Weights) {
	kw := make([]*float64, len(hits))
	sem := make([]*float64, len(hits))
	for i := range hits {
		kw[i] = hits[i].KeywordScore
		sem[i] = hits[i].SemanticScore
	}
	kwNorm, semNorm := minMax(kw), minMax(sem)

	for i := range hits {
		hits[i].KeywordScoreNorm = kwNorm[i]
		hits[i].SemanticScoreNorm = semNorm[i]
		hits[i].Score = w.Semantic*semNorm[i] + w.Keyword*kwNorm[i]
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
}
