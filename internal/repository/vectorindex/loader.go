package vectorindex

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/staffdex/internal/domain"
	"github.com/kailas-cloud/staffdex/internal/metrics"
)

// Loader reads the index artifacts at most once per process.
// Concurrent first callers share one load; a failure is kept and returned to every caller.
type Loader struct {
	load func() (*Index, error)
}

// NewLoader creates a lazy loader for the artifacts at p.
func NewLoader(p Paths, logger *zap.Logger) *Loader {
	return &Loader{load: sync.OnceValues(func() (*Index, error) {
		x, err := Read(p)
		if err != nil {
			logger.Error("Vector index load failed", zap.String("path", p.Index), zap.Error(err))
			return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
		}
		metrics.VectorIndexEntries.Set(float64(x.Len()))
		logger.Info("Vector index loaded",
			zap.String("path", p.Index),
			zap.Int("rows", x.Len()),
			zap.Int("dim", x.Dim()),
		)
		return x, nil
	})}
}

// NewStaticLoader returns a loader that always yields x.
func NewStaticLoader(x *Index) *Loader {
	return &Loader{load: func() (*Index, error) { return x, nil }}
}

// Load returns the index, loading it on first use.
func (l *Loader) Load() (*Index, error) {
	return l.load()
}
