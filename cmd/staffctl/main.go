package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/staffdex/internal/app"
	"github.com/kailas-cloud/staffdex/internal/config"
	"github.com/kailas-cloud/staffdex/internal/domain/search/mode"
	logpkg "github.com/kailas-cloud/staffdex/internal/logger"
	transport "github.com/kailas-cloud/staffdex/internal/transport/chi"
	"github.com/kailas-cloud/staffdex/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "staffctl",
		Usage:   "Build the employee vector index and query it from the command line",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Config environment (reads config/<env>.yaml)",
				EnvVars: []string{"ENV"},
				Value:   "local",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Explicit config file path (overrides --env)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "build-index",
				Usage:  "Embed every employee profile and write the index artifacts",
				Action: buildIndexCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of profiles per embedding request",
						Value: 64,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent embedding requests (0 = half the CPUs)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run one search and print the JSON response",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "keyword, semantic or hybrid",
						Value:   string(mode.Hybrid),
					},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results (0 = configured default)",
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Compose a staffing recommendation for a request",
				ArgsUsage: "<request>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of candidates (0 = configured default)",
					},
				},
			},
		},
	}
}

// loadApp reads the config and wires the services for one command run.
func loadApp(c *cli.Context) (*app.App, *zap.Logger, error) {
	var (
		cfg config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(c.String("env"))
	}
	if err != nil {
		return nil, nil, err
	}

	level := c.String("log-level")
	if level == "" {
		level = "warn"
	}
	logger, err := logpkg.NewLogger("dev", level)
	if err != nil {
		return nil, nil, err
	}

	a, err := app.New(c.Context, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return a, logger, nil
}

func buildIndexCommand(c *cli.Context) error {
	batchSize := c.Int("batch-size")
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}
	if c.Int("workers") < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Int("workers"))
	}

	a, logger, err := loadApp(c)
	if err != nil {
		return err
	}
	defer a.Close()
	defer func() { _ = logger.Sync() }()

	paths := a.IndexPaths()
	stats, err := a.IndexBuilder(batchSize, c.Int("workers")).BuildAndWrite(c.Context, a.Employees, paths)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Wrote %d vectors (dim %d, model %s) to %s\n",
		stats.NumItems, stats.EmbeddingDim, stats.Model, paths.Index)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}
	m, err := mode.Parse(c.String("mode"))
	if err != nil {
		return err
	}
	topK, err := topKFlag(c)
	if err != nil {
		return err
	}

	a, _, err := loadApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	var out any
	switch m {
	case mode.Keyword:
		out = a.Keyword.Search(query, topK)
	case mode.Semantic:
		out, err = a.Semantic.Search(c.Context, query, topK)
	case mode.Hybrid:
		if topK == 0 {
			topK = a.SemanticCfg.TopK
		}
		out, err = a.Hybrid.Search(c.Context, query, topK)
	}
	if err != nil {
		return fmt.Errorf("%s search: %w", m, err)
	}
	return printJSON(c, out)
}

func askCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("request is required")
	}
	topK, err := topKFlag(c)
	if err != nil {
		return err
	}

	a, _, err := loadApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.Composer.Respond(c.Context, query, topK, "")
	if err != nil {
		return err
	}
	return printJSON(c, resp)
}

// topKFlag reads --top-k with the same upper bound as the HTTP API. Zero selects the default.
func topKFlag(c *cli.Context) (int, error) {
	k := c.Int("top-k")
	if k < 0 || k > transport.MaxTopK {
		return 0, fmt.Errorf("top-k must be between 0 and %d, got %d", transport.MaxTopK, k)
	}
	return k, nil
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
