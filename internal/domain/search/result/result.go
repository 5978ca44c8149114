// Package result holds the per-query outputs of keyword, semantic and hybrid search.
package result

import (
	"github.com/kailas-cloud/staffdex/internal/domain/employee"
	"github.com/kailas-cloud/staffdex/internal/domain/search/filter"
)

// MatchedTerms lists the query tokens found per candidate category, sorted.
type MatchedTerms struct {
	Skills   []string `json:"skills"`
	Domains  []string `json:"domains"`
	Projects []string `json:"projects"`
}

// Total returns the number of matched tokens across categories.
func (m MatchedTerms) Total() int {
	return len(m.Skills) + len(m.Domains) + len(m.Projects)
}

// Match is a single keyword hit.
type Match struct {
	ID              int                   `json:"id"`
	Name            string                `json:"name"`
	Score           int                   `json:"score"`
	MatchedTerms    MatchedTerms          `json:"matched_terms"`
	ExperienceYears int                   `json:"experience_years"`
	Availability    employee.Availability `json:"availability"`
	Reason          string                `json:"reason"`
}

// KeywordResponse is the baseline search output.
type KeywordResponse struct {
	Query          string         `json:"query"`
	FiltersApplied filter.Filters `json:"filters_applied"`
	TopK           int            `json:"top_k"`
	Results        []Match        `json:"results"`
}

// TopFields is the truncated profile snapshot stored next to each index row.
type TopFields struct {
	Skills          []string              `json:"skills"`
	Domains         []string              `json:"domains"`
	Availability    employee.Availability `json:"availability"`
	ExperienceYears int                   `json:"experience_years"`
}

// SemanticHit is a single nearest-neighbor hit.
type SemanticHit struct {
	ID    int       `json:"id"`
	Name  string    `json:"name"`
	Score float64   `json:"sem_score"`
	Meta  TopFields `json:"meta"`
}

// SemanticResponse is the semantic search output.
type SemanticResponse struct {
	Query           string        `json:"query"`
	NormalizedQuery string        `json:"normalized_query"`
	TopK            int           `json:"top_k"`
	Results         []SemanticHit `json:"results"`
}

// HybridHit is one employee in the fused ranking. Keyword and semantic
// fields are nil when the employee was absent from that sub-search.
type HybridHit struct {
	ID                int                   `json:"id"`
	Name              string                `json:"name"`
	Availability      employee.Availability `json:"availability,omitempty"`
	KeywordScore      *float64              `json:"kw_score,omitempty"`
	KeywordReason     string                `json:"reason_kw,omitempty"`
	SemanticScore     *float64              `json:"sem_score,omitempty"`
	SemanticReason    string                `json:"reason_sem,omitempty"`
	KeywordScoreNorm  float64               `json:"kw_score_norm"`
	SemanticScoreNorm float64               `json:"sem_score_norm"`
	Score             float64               `json:"hybrid_score"`
}

// Reason returns the keyword reason when present, else the semantic one.
func (h *HybridHit) Reason() string {
	if h.KeywordReason != "" {
		return h.KeywordReason
	}
	return h.SemanticReason
}

// Weights are the fusion weights per axis.
type Weights struct {
	Semantic float64 `json:"semantic"`
	Keyword  float64 `json:"keyword"`
}

// HybridResponse is the fused search output.
type HybridResponse struct {
	Query   string      `json:"query"`
	TopK    int         `json:"top_k"`
	Weights Weights     `json:"weights"`
	Results []HybridHit `json:"results"`
}
