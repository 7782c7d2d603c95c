// Command growthsim runs Monte Carlo growth simulations over a forecast
// file and writes a full analysis report, with optional CSV, Parquet, and
// run-history exports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"growthsim/internal/config"
	"growthsim/internal/forecast"
	"growthsim/internal/report"
	"growthsim/internal/simulate"
	"growthsim/internal/store"
	"growthsim/internal/util"
)

func main() {
	var (
		cfgPath    = flag.String("config", "", "path to YAML config file")
		input      = flag.String("input", "", "forecast input file")
		output     = flag.String("output", "", "report output file")
		trials     = flag.Int("simulations", 0, "number of simulation trials per instrument")
		volatility = flag.Float64("volatility", 0, "volatility factor applied to forecast noise")
		width      = flag.Int("width", 0, "histogram width in buckets")
		height     = flag.Int("height", 0, "histogram height in rows")
		threads    = flag.Int("threads", 0, "number of simulation workers")
		seed       = flag.Int64("seed", 0, "RNG seed (0 uses current time)")
		csvOut     = flag.Bool("csv", false, "export per-trial outcomes to CSV")
		parquetOut = flag.Bool("parquet", false, "export per-trial outcomes to Parquet")
		history    = flag.Bool("history", false, "list saved runs instead of simulating")
		historyFor = flag.String("history-ticker", "", "restrict -history to one ticker")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	path := *cfgPath
	if path == "" {
		path = os.Getenv("GROWTHSIM_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	applyFlags(&cfg, *input, *output, *trials, *volatility, *width, *height, *threads, *seed, *csvOut, *parquetOut)
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *history {
		if err := listHistory(ctx, cfg, *historyFor); err != nil {
			logger.Error("history listing failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("simulation run failed", "err", err)
		os.Exit(1)
	}
}

// applyFlags copies explicitly set flags over the loaded config. Zero-valued
// flags that were not passed leave the config untouched.
func applyFlags(cfg *config.Config, input, output string, trials int, volatility float64, width, height, threads int, seed int64, csvOut, parquetOut bool) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["input"] {
		cfg.Files.Input = input
	}
	if set["output"] {
		cfg.Files.Output = output
	}
	if set["simulations"] {
		cfg.Simulation.Trials = trials
	}
	if set["volatility"] {
		cfg.Simulation.Volatility = volatility
	}
	if set["width"] {
		cfg.Histogram.Width = width
	}
	if set["height"] {
		cfg.Histogram.Height = height
	}
	if set["threads"] {
		cfg.Simulation.Workers = threads
	}
	if set["seed"] {
		cfg.Simulation.Seed = seed
	}
	if set["csv"] {
		cfg.Export.CSV = csvOut
	}
	if set["parquet"] {
		cfg.Export.Parquet = parquetOut
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	recs, err := forecast.ParseFile(cfg.Files.Input)
	if err != nil {
		return fmt.Errorf("reading forecasts: %w", err)
	}
	if len(recs) == 0 {
		return fmt.Errorf("no valid forecast records in %s", cfg.Files.Input)
	}

	out, err := os.Create(cfg.Files.Output)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer out.Close()

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if cfg.Export.CSV || cfg.Export.Parquet {
		if err := os.MkdirAll(cfg.Files.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}

	var trialStore store.TrialStore
	if cfg.Export.Parquet {
		trialStore = store.NewParquetStore(cfg.Files.DataDir)
	}
	var historyStore store.HistoryStore
	if cfg.Export.History {
		hs, err := store.NewSQLiteStore(cfg.Files.SQLitePath)
		if err != nil {
			return fmt.Errorf("opening run history: %w", err)
		}
		defer hs.Close()
		historyStore = hs
	}

	writer := report.NewWriter(out, cfg.Histogram.Height)
	if err := writer.Header(cfg.Files.Input, cfg.Simulation.Trials, cfg.Simulation.Volatility, time.Now()); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}

	logger.Info("starting simulations",
		"instruments", len(recs),
		"trials", cfg.Simulation.Trials,
		"workers", cfg.Simulation.Workers,
		"volatility", cfg.Simulation.Volatility,
	)

	processed := 0
	for i, rec := range recs {
		if err := ctx.Err(); err != nil {
			return err
		}

		recSeed := seed + int64(i)*1_000_003
		if err := simulateOne(ctx, cfg, rec, recSeed, writer, trialStore, historyStore, logger); err != nil {
			logger.Error("instrument failed, skipping", "ticker", rec.Ticker, "err", err)
			continue
		}
		processed++
	}

	if processed == 0 {
		return fmt.Errorf("all %d instruments failed", len(recs))
	}
	logger.Info("run complete", "processed", processed, "skipped", len(recs)-processed, "report", cfg.Files.Output)
	return nil
}

func simulateOne(ctx context.Context, cfg config.Config, rec forecast.Record, seed int64, writer *report.Writer, trialStore store.TrialStore, historyStore store.HistoryStore, logger *slog.Logger) error {
	noise := simulate.NewNoiseModel(rec, cfg.Simulation.Volatility)
	log := logger.With("ticker", rec.Ticker)

	progress := func(done, total int) {
		log.Debug("progress", "done", done, "total", total)
	}
	runner := simulate.NewRunner(cfg.Simulation.Workers, seed, progress)

	start := time.Now()
	outcomes, perYear, err := runner.Run(ctx, rec, noise, cfg.Simulation.Trials)
	if err != nil {
		return err
	}

	rs, err := simulate.Summarize(rec, noise, cfg.Simulation.Volatility, outcomes, perYear, cfg.Histogram.Width)
	if err != nil {
		return err
	}
	log.Info("simulated",
		"trials", rs.TrialCount,
		"mean", fmt.Sprintf("%.2f%%", rs.Overall.Mean),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if err := writer.Instrument(rs); err != nil {
		return fmt.Errorf("writing report section: %w", err)
	}

	if cfg.Export.CSV {
		path := report.CSVPath(cfg.Files.DataDir, rec.Ticker)
		if err := report.ExportCSV(path, rs.Outcomes); err != nil {
			return err
		}
		log.Info("csv exported", "path", path)
	}
	if trialStore != nil {
		if err := trialStore.WriteOutcomes(ctx, rec.Ticker, rs.Outcomes); err != nil {
			return fmt.Errorf("parquet export: %w", err)
		}
		log.Info("parquet exported", "dir", cfg.Files.DataDir)
	}
	if historyStore != nil {
		if err := historyStore.SaveRun(ctx, rs); err != nil {
			return fmt.Errorf("saving run history: %w", err)
		}
	}
	return nil
}

func listHistory(ctx context.Context, cfg config.Config, ticker string) error {
	hs, err := store.NewSQLiteStore(cfg.Files.SQLitePath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer hs.Close()

	runs, err := hs.ListRuns(ctx, ticker, 50)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	fmt.Printf("%-8s %-20s %8s %6s %9s %9s %9s %8s\n",
		"TICKER", "CREATED", "TRIALS", "VOL", "MEAN%", "P5%", "P95%", "P(+)%")
	for _, r := range runs {
		fmt.Printf("%-8s %-20s %8d %6.2f %9.2f %9.2f %9.2f %8.2f\n",
			r.Ticker, r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Trials, r.Volatility, r.Mean, r.P5, r.P95, r.ProbPositive*100)
	}
	return nil
}
