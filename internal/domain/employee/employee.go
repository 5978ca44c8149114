// Package employee holds the employee record consumed by every retrieval path.
package employee

import "strings"

// Availability is the staffing availability bucket.
type Availability string

// Availability buckets.
const (
	Available   Availability = "available"
	Soon        Availability = "soon"
	Unavailable Availability = "unavailable"
)

// Buckets lists the known buckets in literal-match priority order.
var Buckets = []Availability{Available, Soon, Unavailable}

// ParseAvailability lowercases and trims s. Unknown values are kept as-is
// and rank 0.
func ParseAvailability(s string) Availability {
	return Availability(strings.ToLower(strings.TrimSpace(s)))
}

// Rank orders buckets for tie-breaks: available > soon > unavailable > unknown.
func (a Availability) Rank() int {
	switch a {
	case Available:
		return 3
	case Soon:
		return 2
	case Unavailable:
		return 1
	default:
		return 0
	}
}

// IsKnown reports whether a is one of the three buckets.
func (a Availability) IsKnown() bool { return a.Rank() > 0 }

// Employee is a source record from the employee dataset.
type Employee struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	ExperienceYears int          `json:"experience_years"`
	Availability    Availability `json:"availability"`
	Skills          []string     `json:"skills"`
	Projects        []string     `json:"projects"`
	Domains         []string     `json:"domains"`
}

// Dataset is the on-disk layout of the employee file.
type Dataset struct {
	Employees []Employee `json:"employees"`
}
