// Package candidate builds and serves the per-employee token bags used by keyword search.
package candidate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/staffdex/internal/domain/employee"
)

// LoadEmployees reads the employee dataset file ({"employees": [...]}).
func LoadEmployees(path string) ([]employee.Employee, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read employees %s: %w", path, err)
	}

	var ds employee.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse employees %s: %w", path, err)
	}
	return ds.Employees, nil
}
