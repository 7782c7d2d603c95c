// Command forecast-gather builds a forecast input file for growthsim from
// historical market data. It fetches daily bars for the given tickers from
// the Alpaca market-data API, derives trailing annual growth rates, and
// writes them as naive forecasts for the coming years.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"growthsim/internal/config"
	"growthsim/internal/forecast"
	"growthsim/internal/gather"
	"growthsim/internal/util"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "path to YAML config file")
		output  = flag.String("output", "", "forecast file to write (defaults to the configured input file)")
		years   = flag.Int("years", 0, "number of historical years to carry forward")
		verbose = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	tickers := flag.Args()
	if len(tickers) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: forecast-gather [options] TICKER [TICKER...]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	for i, t := range tickers {
		tickers[i] = strings.ToUpper(t)
	}

	path := *cfgPath
	if path == "" {
		path = os.Getenv("GROWTHSIM_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	if cfg.Alpaca.APIKey == "" || cfg.Alpaca.APISecret == "" {
		log.Fatal("alpaca credentials missing: set APCA_API_KEY_ID and APCA_API_SECRET_KEY")
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gcfg := gather.Config{
		APIKey:          cfg.Alpaca.APIKey,
		APISecret:       cfg.Alpaca.APISecret,
		DataURL:         cfg.Alpaca.DataURL,
		YearsBack:       cfg.Alpaca.YearsBack,
		RateLimitPerMin: cfg.Alpaca.RateLimitPerMin,
	}
	if *years > 0 {
		gcfg.YearsBack = *years
	}

	recs, err := gather.New(gcfg).Gather(ctx, tickers, time.Now())
	if err != nil {
		logger.Error("gather interrupted", "err", err)
		os.Exit(1)
	}
	if len(recs) == 0 {
		logger.Error("no forecasts gathered", "tickers", tickers)
		os.Exit(1)
	}

	dest := *output
	if dest == "" {
		dest = cfg.Files.Input
	}
	if err := forecast.WriteFile(dest, recs, gather.Model); err != nil {
		logger.Error("writing forecast file failed", "err", err)
		os.Exit(1)
	}
	logger.Info("forecast file written", "path", dest, "instruments", len(recs))
}
