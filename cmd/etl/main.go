// Command etl normalizes the raw inbound, outbound and exchange-rate files
// into the canonical CSV tables and their Parquet mirrors.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tourismfx/internal/config"
	"tourismfx/internal/exporter"
	"tourismfx/internal/infrastructure"
	"tourismfx/internal/normalize"
	"tourismfx/internal/pipeline"
	"tourismfx/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout))
}

// run executes one ETL pass and returns the process exit code.
func run(ctx context.Context, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("etl", flag.ContinueOnError)
	configFile := fs.String("config", "", "path to a YAML config file (defaults to config.yaml lookup)")
	rawDir := fs.String("raw", "", "raw input root holding inbound/, outbound/ and exchange/ (defaults to <data_dir>/original_data)")
	cleanDir := fs.String("clean", "", "output directory for canonical tables (defaults to <data_dir>/cleaned_data)")
	organize := fs.Bool("organize", false, "move files dropped in the raw root into their domain directories first")
	skipColumnar := fs.Bool("skip-columnar", false, "do not write Parquet mirrors")
	sqlite := fs.Bool("sqlite", false, "also mirror the canonical tables into SQLite")
	version := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	var (
		cfg *config.Config
		err error
	)
	if *configFile != "" {
		cfg, err = config.LoadFile(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		return 1
	}
	if *rawDir != "" {
		cfg.Paths.RawDir = *rawDir
	}
	if *cleanDir != "" {
		cfg.Paths.CleanDir = *cleanDir
	}
	cfg.Pipeline.Organize = cfg.Pipeline.Organize || *organize
	cfg.Pipeline.SkipColumnar = cfg.Pipeline.SkipColumnar || *skipColumnar
	cfg.Storage.SQLiteEnabled = cfg.Storage.SQLiteEnabled || *sqlite

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", slog.String("error", err.Error()))
		return 1
	}
	defer infrastructure.CloseLogFile()

	paths, err := cfg.ResolvePaths()
	if err != nil {
		logger.Error("Failed to resolve paths", slog.String("error", err.Error()))
		return 1
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to ensure directories", slog.String("error", err.Error()))
		return 1
	}
	paths.LogPathResolution(logger)

	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		logger.Error("Failed to initialize OpenTelemetry", slog.String("error", err.Error()))
		return 1
	}
	defer providers.Shutdown(context.Background())

	metrics, err := infrastructure.NewMetrics(providers.Meter)
	if err != nil {
		logger.Error("Failed to create metrics", slog.String("error", err.Error()))
		return 1
	}

	opts := pipeline.Options{
		RawRoot:      paths.RawDir,
		RawDirs:      paths.RawTargets(),
		CleanDir:     paths.CleanDir,
		Organize:     cfg.Pipeline.Organize,
		SkipColumnar: cfg.Pipeline.SkipColumnar,
		Normalize: normalize.Options{
			InboundMarker:  cfg.Pipeline.InboundMarker,
			OutboundMarker: cfg.Pipeline.OutboundMarker,
			Currencies:     cfg.Pipeline.Currencies,
		},
		Metrics: metrics,
	}

	if cfg.Storage.SQLiteEnabled {
		store, err := exporter.OpenSQLite(paths.SQLiteFile, logger)
		if err != nil {
			logger.Error("Failed to open SQLite mirror",
				slog.String("path", paths.SQLiteFile),
				slog.String("error", err.Error()))
			return 1
		}
		defer store.Close()
		opts.Mirror = store
	}

	runner, err := pipeline.NewRunner(opts, logger)
	if err != nil {
		logger.Error("Failed to build pipeline", slog.String("error", err.Error()))
		return 1
	}

	report, err := runner.Run(ctx)
	if report != nil {
		printReport(stdout, report)
	}
	if err != nil {
		logger.Error("Pipeline interrupted", slog.String("error", err.Error()))
		return 1
	}
	if report.Failed() {
		return 1
	}
	return 0
}

// printReport writes a short human-readable summary of the run.
func printReport(w io.Writer, report *pipeline.Report) {
	fmt.Fprintf(w, "run %s finished in %s\n", report.TraceID, report.Duration.Round(1e6))
	if report.Organized > 0 {
		fmt.Fprintf(w, "organized %d file(s)\n", report.Organized)
	}
	for _, d := range report.Domains {
		status := "ok"
		switch {
		case d.Failed():
			status = "FAILED: " + d.Err.Error()
		case !d.Written:
			status = "no output"
		}
		fmt.Fprintf(w, "%-9s files=%d processed=%d skipped=%d rows=%d columns=%d",
			d.Domain, d.Files, d.Processed, len(d.Skipped), d.Rows, d.Columns)
		if d.FirstDate != "" {
			fmt.Fprintf(w, " range=%s..%s", d.FirstDate, d.LastDate)
		}
		fmt.Fprintf(w, " %s\n", status)
		for _, s := range d.Skipped {
			fmt.Fprintf(w, "  skipped %s (%s): %s\n", s.File, s.Reason, s.Error)
		}
		for _, warn := range d.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warn)
		}
	}
	for _, c := range report.Columnar {
		switch {
		case c.Err != nil:
			fmt.Fprintf(w, "parquet   %s FAILED: %s\n", c.Domain, c.Err)
		case c.Skipped:
			fmt.Fprintf(w, "parquet   %s skipped\n", c.Domain)
		default:
			fmt.Fprintf(w, "parquet   %s rows=%d %s\n", c.Domain, c.Rows, c.Path)
		}
	}
}
