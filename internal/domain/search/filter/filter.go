// Package filter extracts hard constraints (minimum experience, availability)
// from raw query text. It works on the untokenized string so that phrases such
// as "3+ years" or "next month" survive intact.
package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/staffdex/internal/domain/employee"
	"github.com/kailas-cloud/staffdex/internal/domain/normalize"
)

// Filters are the constraints found in a query. Nil fields impose nothing.
type Filters struct {
	MinExperienceYears *int                   `json:"min_experience_years"`
	Availability       *employee.Availability `json:"availability"`
}

// Allows reports whether a candidate with the given attributes passes.
func (f Filters) Allows(experienceYears int, availability employee.Availability) bool {
	if f.MinExperienceYears != nil && experienceYears < *f.MinExperienceYears {
		return false
	}
	if f.Availability != nil && availability != *f.Availability {
		return false
	}
	return true
}

// IsEmpty reports whether no constraint was extracted.
func (f Filters) IsEmpty() bool {
	return f.MinExperienceYears == nil && f.Availability == nil
}

type availabilityAlias struct {
	phrase string
	bucket employee.Availability
}

// Extractor is immutable after NewExtractor and safe for concurrent use.
type Extractor struct {
	experience []*regexp.Regexp
	aliases    []availabilityAlias
	literals   []*regexp.Regexp
}

// NewExtractor compiles the experience patterns (case-insensitive) and the
// ordered availability aliases from rules.
func NewExtractor(rules normalize.Rules) (*Extractor, error) {
	e := &Extractor{}
	for i, p := range rules.MinExperiencePatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("min_experience_patterns[%d] %q: %w", i, p, err)
		}
		e.experience = append(e.experience, re)
	}
	for _, a := range rules.AvailabilityAliases {
		phrase := strings.ToLower(a.Phrase)
		if phrase == "" {
			continue
		}
		e.aliases = append(e.aliases, availabilityAlias{
			phrase: phrase,
			bucket: employee.ParseAvailability(a.Value),
		})
	}
	for _, b := range employee.Buckets {
		e.literals = append(e.literals, regexp.MustCompile(`\b`+string(b)+`\b`))
	}
	return e, nil
}

// Extract scans raw query text for both filters.
func (e *Extractor) Extract(raw string) Filters {
	lower := strings.ToLower(raw)
	return Filters{
		MinExperienceYears: e.minExperience(lower),
		Availability:       e.availability(lower),
	}
}

// minExperience returns the first group-1 integer of the first matching
// pattern. Matches without a numeric capture are skipped.
func (e *Extractor) minExperience(lower string) *int {
	for _, re := range e.experience {
		m := re.FindStringSubmatch(lower)
		if len(m) < 2 {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return &n
	}
	return nil
}

func (e *Extractor) availability(lower string) *employee.Availability {
	for _, a := range e.aliases {
		if strings.Contains(lower, a.phrase) {
			b := a.bucket
			return &b
		}
	}
	for i, re := range e.literals {
		if re.MatchString(lower) {
			b := employee.Buckets[i]
			return &b
		}
	}
	return nil
}
