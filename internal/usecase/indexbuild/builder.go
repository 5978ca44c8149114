// Package indexbuild embeds employee profiles offline and writes the vector index artifacts.
package indexbuild

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/staffdex/internal/domain"
	"github.com/kailas-cloud/staffdex/internal/domain/employee"
	"github.com/kailas-cloud/staffdex/internal/domain/normalize"
	"github.com/kailas-cloud/staffdex/internal/repository/vectorindex"
)

// ErrNoEmployees is returned when the dataset is empty.
var ErrNoEmployees = errors.New("no employees to index")

// Options configures a build.
type Options struct {
	Model     string
	BatchSize int
	Workers   int
	Now       func() time.Time
}

// DefaultBatchSize is the number of profiles per embedding request.
const DefaultBatchSize = 64

// Builder embeds profiles and assembles the index.
type Builder struct {
	embed  domain.Embedder
	norm   *normalize.Normalizer
	opts   Options
	logger *zap.Logger
}

// New creates a Builder. Workers defaults to half the CPUs, at least one.
func New(embed domain.Embedder, norm *normalize.Normalizer, opts Options, logger *zap.Logger) *Builder {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Workers <= 0 {
		opts.Workers = max(runtime.NumCPU()/2, 1)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Builder{embed: embed, norm: norm, opts: opts, logger: logger}
}

// Build embeds every employee and returns the index with its stats.
// Any embedding failure or dimension disagreement aborts the build.
func (b *Builder) Build(ctx context.Context, employees []employee.Employee) (*vectorindex.Index, vectorindex.Stats, error) {
	if len(employees) == 0 {
		return nil, vectorindex.Stats{}, ErrNoEmployees
	}

	texts := make([]string, len(employees))
	meta := make([]vectorindex.Meta, len(employees))
	for i := range employees {
		texts[i] = b.norm.Text(ProfileBlob(&employees[i]))
		meta[i] = metaFor(i, &employees[i])
	}

	vectors, err := b.embedAll(ctx, texts)
	if err != nil {
		return nil, vectorindex.Stats{}, err
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, vectorindex.Stats{}, fmt.Errorf("employee %d: %w: got %d, want %d",
				employees[i].ID, domain.ErrVectorDimMismatch, len(v), dim)
		}
		vectorindex.L2Normalize(v)
	}

	idx, err := vectorindex.New(dim, vectors, meta)
	if err != nil {
		return nil, vectorindex.Stats{}, fmt.Errorf("assemble index: %w", err)
	}

	stats := vectorindex.Stats{
		BuiltAt:      b.opts.Now().UTC().Format(time.RFC3339),
		Model:        b.opts.Model,
		EmbeddingDim: dim,
		NumItems:     idx.Len(),
		IndexType:    vectorindex.IndexType,
	}
	return idx, stats, nil
}

// BuildAndWrite builds the index and persists all artifacts.
func (b *Builder) BuildAndWrite(ctx context.Context, employees []employee.Employee, paths vectorindex.Paths) (vectorindex.Stats, error) {
	idx, stats, err := b.Build(ctx, employees)
	if err != nil {
		return vectorindex.Stats{}, err
	}
	if err := vectorindex.Write(paths, idx, stats); err != nil {
		return vectorindex.Stats{}, fmt.Errorf("write artifacts: %w", err)
	}
	b.logger.Info("Index written",
		zap.String("index", paths.Index),
		zap.Int("rows", stats.NumItems),
		zap.Int("dim", stats.EmbeddingDim),
		zap.String("model", stats.Model),
	)
	return stats, nil
}

// embedAll splits texts into batches and embeds them on a bounded worker pool.
// Results keep input order. The first failure cancels outstanding batches.
func (b *Builder) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	pool, err := ants.NewPool(b.opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vectors := make([][]float32, len(texts))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		tokens   int
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for offset := 0; offset < len(texts); offset += b.opts.BatchSize {
		end := min(offset+b.opts.BatchSize, len(texts))
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			res, err := domain.BatchEmbed(ctx, b.embed, texts[offset:end])
			if err != nil {
				fail(fmt.Errorf("embed batch at %d: %w", offset, err))
				return
			}
			if len(res.Embeddings) != end-offset {
				fail(fmt.Errorf("%w: batch at %d returned %d embeddings for %d texts",
					domain.ErrEmbeddingProviderError, offset, len(res.Embeddings), end-offset))
				return
			}
			copy(vectors[offset:end], res.Embeddings)

			mu.Lock()
			tokens += res.TotalTokens
			mu.Unlock()
			b.logger.Debug("Batch embedded", zap.Int("offset", offset), zap.Int("size", end-offset))
		})
		if submitErr != nil {
			wg.Done()
			fail(fmt.Errorf("submit batch at %d: %w", offset, submitErr))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("embed profiles: %w", err)
	}

	b.logger.Info("Profiles embedded",
		zap.Int("profiles", len(texts)),
		zap.Int("workers", b.opts.Workers),
		zap.Int("total_tokens", tokens),
	)
	return vectors, nil
}
