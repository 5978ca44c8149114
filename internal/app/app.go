// Package app is the composition root: it loads the retrieval documents and
// dataset, builds the embedder chain and wires every service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/staffdex/internal/config"
	dbRedis "github.com/kailas-cloud/staffdex/internal/db/redis"
	"github.com/kailas-cloud/staffdex/internal/domain"
	"github.com/kailas-cloud/staffdex/internal/domain/employee"
	"github.com/kailas-cloud/staffdex/internal/domain/normalize"
	"github.com/kailas-cloud/staffdex/internal/domain/search/filter"
	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
	"github.com/kailas-cloud/staffdex/internal/metrics"
	"github.com/kailas-cloud/staffdex/internal/repository/candidate"
	"github.com/kailas-cloud/staffdex/internal/repository/embcache"
	"github.com/kailas-cloud/staffdex/internal/repository/vectorindex"
	chiTransport "github.com/kailas-cloud/staffdex/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/staffdex/internal/transport/openai"
	"github.com/kailas-cloud/staffdex/internal/usecase/baseline"
	embeddinguc "github.com/kailas-cloud/staffdex/internal/usecase/embedding"
	"github.com/kailas-cloud/staffdex/internal/usecase/generation"
	"github.com/kailas-cloud/staffdex/internal/usecase/health"
	"github.com/kailas-cloud/staffdex/internal/usecase/indexbuild"
	"github.com/kailas-cloud/staffdex/internal/usecase/search"
	"github.com/kailas-cloud/staffdex/internal/usecase/semantic"
)

// App holds the wired services. Everything is immutable after New.
type App struct {
	Config      config.Config
	SemanticCfg config.Semantic
	Employees   []employee.Employee
	Normalizer  *normalize.Normalizer

	Keyword  *baseline.Service
	Semantic *semantic.Service
	Hybrid   *search.Service
	Composer *generation.Service
	Health   *health.Service
	Index    *vectorindex.Loader

	// buildEmbedder skips the query cache; profile vectors are written once.
	buildEmbedder domain.Embedder
	cache         *dbRedis.Store
	logger        *zap.Logger
}

// New loads every document named in cfg.Data and wires the services.
// Any load failure is returned so the caller can exit before serving.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	rules, err := config.LoadNormalization(cfg.Data.Normalization)
	if err != nil {
		return nil, err
	}
	baseCfg, err := config.LoadBaseline(cfg.Data.Baseline)
	if err != nil {
		return nil, err
	}
	semCfg, err := config.LoadSemantic(cfg.Data.Semantic)
	if err != nil {
		return nil, err
	}
	employees, err := candidate.LoadEmployees(cfg.Data.Employees)
	if err != nil {
		return nil, err
	}

	norm := normalize.New(rules)
	extractor, err := filter.NewExtractor(rules)
	if err != nil {
		return nil, fmt.Errorf("compile normalization rules: %w", err)
	}
	candidates, err := candidate.New(employees, norm)
	if err != nil {
		return nil, fmt.Errorf("build candidate store: %w", err)
	}

	a := &App{
		Config:      cfg,
		SemanticCfg: semCfg,
		Employees:   employees,
		Normalizer:  norm,
		logger:      logger,
	}

	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      semCfg.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	a.buildEmbedder = embeddinguc.NewInstrumentedEmbedder(
		base, cfg.Embedding.Provider, semCfg.Model, cfg.Embedding.Dimensions, logger,
	)

	queryInner := domain.Embedder(base)
	if cfg.Cache.Enabled() {
		store, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.Cache.Addrs, Password: cfg.Cache.Password})
		if err != nil {
			return nil, fmt.Errorf("create cache store: %w", err)
		}
		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			store.Close()
			return nil, err
		}
		a.cache = store
		queryInner = embcache.New(base, store, semCfg.Model,
			time.Duration(cfg.Cache.TTLHours)*time.Hour, metrics.EmbeddingCacheTotal, logger)
		logger.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}
	queryEmbedder := embeddinguc.NewInstrumentedEmbedder(
		queryInner, cfg.Embedding.Provider, semCfg.Model, cfg.Embedding.Dimensions, logger,
	)

	a.Index = vectorindex.NewLoader(paths(semCfg.Outputs), logger)
	a.Keyword = baseline.New(candidates, norm, extractor, baseline.Options{
		Weights: baseline.Weights{
			Skills:   baseCfg.Weights.Skills,
			Domains:  baseCfg.Weights.Domains,
			Projects: baseCfg.Weights.Projects,
		},
		MinTokenMatch: baseCfg.MinTokenMatch,
		TopK:          baseCfg.TopK,
	})
	a.Semantic = semantic.New(queryEmbedder, a.Index, norm, semantic.Options{
		TopK:         semCfg.TopK,
		EmbedTimeout: time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
	}, logger)
	a.Hybrid = search.New(a.Keyword, a.Semantic, search.Options{
		Weights: result.Weights{
			Semantic: semCfg.HybridWeights.Semantic,
			Keyword:  semCfg.HybridWeights.Keyword,
		},
		FetchK: semCfg.FetchK,
	})

	chat := openaiTransport.NewChatClient(&openaiTransport.ChatConfig{
		APIKey:      cfg.Generation.APIKey,
		BaseURL:     cfg.Generation.BaseURL,
		Model:       cfg.Generation.Model,
		Temperature: cfg.Generation.Temperature,
	})
	a.Composer = generation.New(a.Hybrid, chat, generation.Options{
		K:                cfg.Generation.K,
		MaxWords:         cfg.Generation.MaxWords,
		NextStepsDefault: cfg.Generation.NextStepsDefault,
		Timeout:          time.Duration(cfg.Generation.TimeoutSec) * time.Second,
		FetchK:           semCfg.FetchK,
	}, logger)

	// nil interface, not a typed nil pointer, when the cache is off.
	var cachePinger health.CachePinger
	if a.cache != nil {
		cachePinger = a.cache
	}
	a.Health = health.New(cachePinger, queryEmbedder, a.Index)

	logger.Info("Retrieval services ready",
		zap.Int("employees", len(employees)),
		zap.String("embedding_provider", cfg.Embedding.Provider),
		zap.String("embedding_model", semCfg.Model),
		zap.String("index", semCfg.Outputs.Index),
		zap.Float64("w_semantic", semCfg.HybridWeights.Semantic),
		zap.Float64("w_keyword", semCfg.HybridWeights.Keyword),
	)
	return a, nil
}

// Close releases the cache connection, if any.
func (a *App) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
}

// IndexPaths returns the artifact locations from semantic.yaml.
func (a *App) IndexPaths() vectorindex.Paths { return paths(a.SemanticCfg.Outputs) }

// IndexBuilder returns a builder using the uncached embedder chain.
func (a *App) IndexBuilder(batchSize, workers int) *indexbuild.Builder {
	return indexbuild.New(a.buildEmbedder, a.Normalizer, indexbuild.Options{
		Model:     a.SemanticCfg.Model,
		BatchSize: batchSize,
		Workers:   workers,
	}, a.logger)
}

// Handler returns the HTTP API with its middleware stack.
func (a *App) Handler() http.Handler {
	server := chiTransport.NewServer(a.Keyword, a.Semantic, a.Hybrid, a.Composer, a.Health,
		chiTransport.Options{HybridTopK: a.SemanticCfg.TopK})
	return chiTransport.NewRouter(server, a.Config.Auth.APIKeys, a.logger)
}

func paths(o config.Outputs) vectorindex.Paths {
	return vectorindex.Paths{Index: o.Index, Meta: o.Meta, Stats: o.Stats}
}
