package candidate

import (
	"fmt"

	"github.com/kailas-cloud/staffdex/internal/domain/employee"
	"github.com/kailas-cloud/staffdex/internal/domain/normalize"
)

// Bag is the precomputed keyword view of one employee.
// Token sets are alias-resolved, stopword-free and never mutated.
type Bag struct {
	ID              int
	Name            string
	ExperienceYears int
	Availability    employee.Availability
	Skills          normalize.TokenSet
	Projects        normalize.TokenSet
	Domains         normalize.TokenSet
}

// Repo is the in-memory candidate store, built once from the employee dataset.
type Repo struct {
	bags []Bag
}

// New normalizes every employee into a Bag. Dataset order is preserved.
func New(employees []employee.Employee, n *normalize.Normalizer) (*Repo, error) {
	seen := make(map[int]struct{}, len(employees))
	bags := make([]Bag, 0, len(employees))

	for i := range employees {
		e := &employees[i]
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("employees[%d]: duplicate id %d", i, e.ID)
		}
		if e.ExperienceYears < 0 {
			return nil, fmt.Errorf("employees[%d] (id %d): negative experience_years %d", i, e.ID, e.ExperienceYears)
		}
		seen[e.ID] = struct{}{}

		bags = append(bags, Bag{
			ID:              e.ID,
			Name:            e.Name,
			ExperienceYears: e.ExperienceYears,
			Availability:    employee.ParseAvailability(string(e.Availability)),
			Skills:          n.TokenSet(e.Skills),
			Projects:        n.TokenSet(e.Projects),
			Domains:         n.TokenSet(e.Domains),
		})
	}
	return &Repo{bags: bags}, nil
}

// All returns every bag in dataset order. The slice is shared; callers must not modify it.
func (r *Repo) All() []Bag { return r.bags }

// Len returns the number of candidates.
func (r *Repo) Len() int { return len(r.bags) }
