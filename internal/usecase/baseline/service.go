// Package baseline implements keyword search: hard filters from the raw
// query, weighted token overlap per category, and a deterministic ranking.
package baseline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kailas-cloud/staffdex/internal/domain/normalize"
	"github.com/kailas-cloud/staffdex/internal/domain/search/filter"
	"github.com/kailas-cloud/staffdex/internal/domain/search/mode"
	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
	"github.com/kailas-cloud/staffdex/internal/metrics"
	"github.com/kailas-cloud/staffdex/internal/repository/candidate"
)

// Weights are per-category multipliers for matched token counts.
type Weights struct {
	Skills   int
	Domains  int
	Projects int
}

// Options configures scoring.
type Options struct {
	Weights Weights
	// MinTokenMatch is the minimum total matched tokens for a candidate to score.
	MinTokenMatch int
	// TopK is used when the caller passes topK <= 0.
	TopK int
}

// DefaultOptions returns weights 3/2/1, a one-token threshold and top 5.
func DefaultOptions() Options {
	return Options{
		Weights:       Weights{Skills: 3, Domains: 2, Projects: 1},
		MinTokenMatch: 1,
		TopK:          5,
	}
}

// Service scores candidate bags against free-text queries. Safe for concurrent use.
type Service struct {
	candidates CandidateSource
	norm       *normalize.Normalizer
	filters    *filter.Extractor
	opts       Options
}

// New creates a keyword search service.
func New(candidates CandidateSource, norm *normalize.Normalizer, filters *filter.Extractor, opts Options) *Service {
	if opts.TopK <= 0 {
		opts.TopK = DefaultOptions().TopK
	}
	return &Service{candidates: candidates, norm: norm, filters: filters, opts: opts}
}

// DefaultTopK returns the configured result count.
func (s *Service) DefaultTopK() int { return s.opts.TopK }

// Search ranks candidates for query. topK <= 0 selects the configured default.
// No match is an empty result, not an error.
func (s *Service) Search(query string, topK int) result.KeywordResponse {
	start := time.Now()

	flt := s.filters.Extract(query)
	queryTokens := normalize.NewTokenSet(s.norm.Tokens(query)...)

	matches := make([]result.Match, 0)
	for _, c := range s.candidates.All() {
		if !flt.Allows(c.ExperienceYears, c.Availability) {
			continue
		}
		score, terms := s.score(queryTokens, &c)
		if score <= 0 {
			continue
		}
		matches = append(matches, result.Match{
			ID:              c.ID,
			Name:            c.Name,
			Score:           score,
			MatchedTerms:    terms,
			ExperienceYears: c.ExperienceYears,
			Availability:    c.Availability,
		})
	}

	rank(matches)

	k := topK
	if k <= 0 {
		k = s.opts.TopK
	}
	if len(matches) > k {
		matches = matches[:k]
	}
	for i := range matches {
		matches[i].Reason = reason(&matches[i])
	}

	metrics.ObserveSearch(mode.Keyword, metrics.StatusOK, time.Since(start), len(matches))

	return result.KeywordResponse{
		Query:          query,
		FiltersApplied: flt,
		TopK:           k,
		Results:        matches,
	}
}

// score returns the weighted overlap of queryTokens with c. Candidates under
// the MinTokenMatch gate score zero.
func (s *Service) score(queryTokens normalize.TokenSet, c *candidate.Bag) (int, result.MatchedTerms) {
	terms := result.MatchedTerms{
		Skills:   queryTokens.Intersect(c.Skills),
		Domains:  queryTokens.Intersect(c.Domains),
		Projects: queryTokens.Intersect(c.Projects),
	}
	if terms.Total() < s.opts.MinTokenMatch {
		return 0, result.MatchedTerms{Skills: []string{}, Domains: []string{}, Projects: []string{}}
	}

	w := s.opts.Weights
	score := w.Skills*len(terms.Skills) + w.Domains*len(terms.Domains) + w.Projects*len(terms.Projects)
	return score, terms
}

// rank orders by score desc, experience desc, availability rank desc, id asc.
func rank(matches []result.Match) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := &matches[i], &matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.ExperienceYears != b.ExperienceYears {
			return a.ExperienceYears > b.ExperienceYears
		}
		if ra, rb := a.Availability.Rank(), b.Availability.Rank(); ra != rb {
			return ra > rb
		}
		return a.ID < b.ID
	})
}

func reason(m *result.Match) string {
	parts := make([]string, 0, 3)
	if len(m.MatchedTerms.Skills) > 0 {
		parts = append(parts, "skills: "+strings.Join(m.MatchedTerms.Skills, ", "))
	}
	if len(m.MatchedTerms.Domains) > 0 {
		parts = append(parts, "domains: "+strings.Join(m.MatchedTerms.Domains, ", "))
	}
	if len(m.MatchedTerms.Projects) > 0 {
		parts = append(parts, "projects: "+strings.Join(m.MatchedTerms.Projects, ", "))
	}
	detail := "partial match"
	if len(parts) > 0 {
		detail = strings.Join(parts, "; ")
	}
	return fmt.Sprintf("Matched %s; experience=%dy; availability=%s.", detail, m.ExperienceYears, m.Availability)
}
