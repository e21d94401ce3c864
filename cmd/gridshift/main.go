package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gridshift-org/gridshift/catalog"
	"github.com/gridshift-org/gridshift/concord"
	"github.com/gridshift-org/gridshift/helpers"
	"github.com/gridshift-org/gridshift/pipeline"
	"github.com/gridshift-org/gridshift/sink"
)

// ============================================================================
// GRIDSHIFT CLI — electrification indicators from a cleaned source extract
// ============================================================================

const version = "0.3.0"

func main() {
	inputPath := flag.String("input", "", "Path to cleaned source CSV (required)")
	source := flag.String("source", "mvr", "Source domain: mvr, gic, eeca, emi_generation, emi_battery_solar")
	concordPath := flag.String("concordance", "", "Path to concordance TOML (default: built-in NZ map)")
	catalogPath := flag.String("catalog", "", "Path to metric catalog TOML (default: built-in registry)")
	outDir := flag.String("out", "", "Directory for per-metric CSV artifacts")
	dbPath := flag.String("db", "", "Path to SQLite artifact store")
	verbose := flag.Bool("verbose", false, "Debug-level logging")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `gridshift — electrification indicator aggregation engine

Usage:
  gridshift --input mvr_cleaned.csv --source mvr --out metrics/
  gridshift --input gas_cleaned.csv --source gic --db indicators.db
  gridshift --input mvr_cleaned.csv --catalog custom_metrics.toml --out metrics/

Flags:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("gridshift %s\n", version)
		os.Exit(0)
	}
	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --input is required")
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// ── Input table ───────────────────────────────────────────────────────
	f, err := os.Open(*inputPath)
	if err != nil {
		fatal(logger, "open input", err)
	}
	view, err := helpers.ParseCSVView(f)
	f.Close()
	if err != nil {
		fatal(logger, "parse input", err)
	}
	logger.Info("input loaded", "path", *inputPath, "rows", view.Len())

	// ── Concordance ───────────────────────────────────────────────────────
	regions := concord.DefaultNZ()
	if *concordPath != "" {
		regions, err = concord.LoadFile(*concordPath)
		if err != nil {
			fatal(logger, "load concordance", err)
		}
	}
	resolver := concord.NewResolver(regions)

	// ── Metric catalog ────────────────────────────────────────────────────
	var metrics []catalog.Metric
	if *catalogPath != "" {
		metrics, err = catalog.LoadFile(*catalogPath)
		if err != nil {
			fatal(logger, "load catalog", err)
		}
	} else {
		metrics = catalog.BySource(catalog.Source(*source))
	}
	if len(metrics) == 0 {
		fatal(logger, "select metrics", fmt.Errorf("no metric definitions for source %q", *source))
	}

	// ── Sinks ─────────────────────────────────────────────────────────────
	var sinks []pipeline.Sink
	if *outDir != "" {
		csvSink, err := sink.NewCSVSink(*outDir)
		if err != nil {
			fatal(logger, "create CSV sink", err)
		}
		sinks = append(sinks, csvSink)
	}
	var store *sink.Store
	if *dbPath != "" {
		store, err = sink.Open(*dbPath)
		if err != nil {
			fatal(logger, "open store", err)
		}
		defer store.Close()
		sinks = append(sinks, store)
	}

	// ── Run ───────────────────────────────────────────────────────────────
	runner := pipeline.New(view, resolver, metrics,
		pipeline.WithLogger(logger),
		pipeline.WithSinks(sinks...),
	)
	summary := runner.Run()
	fmt.Print(summary.String())

	if store != nil {
		runAt := time.Now().UTC().Format(time.RFC3339)
		for _, r := range summary.Results {
			status, errMsg := "ok", ""
			switch {
			case r.Err != nil:
				status, errMsg = "failed", r.Err.Error()
			case r.Skipped:
				status = "skipped"
			}
			if err := store.RecordRun(runAt, r.MetricID, r.OutputName, r.Rows, status, errMsg); err != nil {
				logger.Warn("record run summary", "error", err)
			}
		}
	}

	if summary.Succeeded() == 0 && summary.Failed() > 0 {
		os.Exit(1)
	}
}

func fatal(logger *slog.Logger, stage string, err error) {
	logger.Error(stage, "error", err)
	os.Exit(1)
}
