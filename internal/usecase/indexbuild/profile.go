package indexbuild

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/staffdex/internal/domain/employee"
	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
	"github.com/kailas-cloud/staffdex/internal/repository/vectorindex"
)

// topFieldsLimit caps the skills and domains copied into index metadata.
const topFieldsLimit = 6

// ProfileBlob renders the raw text embedded for one employee, before normalization.
func ProfileBlob(e *employee.Employee) string {
	return fmt.Sprintf("%s. skills: %s. projects: %s. domains: %s. %d years experience. availability %s.",
		e.Name,
		strings.Join(e.Skills, ", "),
		strings.Join(e.Projects, ", "),
		strings.Join(e.Domains, ", "),
		e.ExperienceYears,
		e.Availability,
	)
}

func metaFor(row int, e *employee.Employee) vectorindex.Meta {
	return vectorindex.Meta{
		RowID:      row,
		EmployeeID: e.ID,
		Name:       e.Name,
		TopFields: result.TopFields{
			Skills:          head(e.Skills, topFieldsLimit),
			Domains:         head(e.Domains, topFieldsLimit),
			Availability:    e.Availability,
			ExperienceYears: e.ExperienceYears,
		},
	}
}

func head(s []string, n int) []string {
	out := make([]string, 0, min(len(s), n))
	return append(out, s[:min(len(s), n)]...)
}
