package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"docs-search-index/internal/catalog"
	"docs-search-index/internal/config"
	"docs-search-index/internal/contextutil"
	"docs-search-index/internal/docsource"
	"docs-search-index/internal/indexer"
	"docs-search-index/internal/metrics"
	"docs-search-index/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// CLI defines the command-line interface structure for Kong.
// Every flag is optional; unset flags fall back to the environment.
type CLI struct {
	Root            string `help:"Project root the catalog paths are relative to (env PROJECT_ROOT)" type:"path"`
	Output          string `short:"o" help:"Artifact path, relative to the project root (env SEARCH_INDEX_OUTPUT)"`
	DB              string `name:"db" help:"Also mirror the index into this SQLite database (env SEARCH_DB_PATH)"`
	MetricsTextfile string `help:"Write Prometheus metrics to this textfile (env METRICS_TEXTFILE)"`
	Verbose         bool   `short:"v" help:"Enable debug logging"`
}

// Main represents the program.
type Main struct {
	// Catalog is the list of documents to index.
	Catalog []catalog.Entry
}

// NewMain returns a new instance of Main with the default catalog.
func NewMain() *Main {
	return &Main{Catalog: catalog.Default()}
}

// Run parses args, builds the search index and writes it.
// Logs go to stdout; usage errors go to stderr.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("build-search-index"),
		kong.Description("Build the documentation site's search index"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadWithOverrides(config.Overrides{
		ProjectRoot:     cli.Root,
		OutputPath:      cli.Output,
		DBPath:          cli.DB,
		MetricsTextfile: cli.MetricsTextfile,
		Verbose:         cli.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(stdout, opts)
	} else {
		handler = slog.NewTextHandler(stdout, opts)
	}
	logger := slog.New(handler).With("run_id", uuid.NewString())
	ctx = contextutil.WithLogger(ctx, logger)
	logger.DebugContext(ctx, "logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
	logger.DebugContext(ctx, "configuration loaded", "root", cfg.ProjectRoot, "output", cfg.OutputPath)

	pipelineOpts := []indexer.Option{indexer.WithLogger(logger)}

	if cfg.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		db, err := storage.New(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close()
		}()

		if err := storage.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.InfoContext(ctx, "database initialized", "path", cfg.DBPath)
		pipelineOpts = append(pipelineOpts, indexer.WithMirror(storage.NewPageRepo(db)))
	}

	var recorder *metrics.PrometheusRecorder
	if cfg.MetricsTextfile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		pipelineOpts = append(pipelineOpts, indexer.WithRecorder(recorder))
	}

	pipeline, err := indexer.NewPipeline(m.Catalog, docsource.NewDirSource(cfg.ProjectRoot), cfg.OutputPath, pipelineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	if _, err := pipeline.Run(ctx); err != nil {
		return err
	}

	if recorder != nil {
		if err := os.MkdirAll(filepath.Dir(cfg.MetricsTextfile), 0755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
		if err := recorder.WriteTextfile(cfg.MetricsTextfile); err != nil {
			return err
		}
		logger.DebugContext(ctx, "metrics written", "path", cfg.MetricsTextfile)
	}

	return nil
}
