// Package gather builds forecast input files from historical market data.
// It pulls daily bars from the Alpaca market-data API, reduces them to
// year-end closes, and carries the trailing annual growth rates forward as
// naive forecasts for the coming years.
package gather

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"growthsim/internal/forecast"
	"growthsim/internal/util"
)

// Model is the label written into forecast file headers for records produced
// by this package.
const Model = "trailing annual growth"

// Config holds the Alpaca credentials and gathering parameters.
type Config struct {
	APIKey          string
	APISecret       string
	DataURL         string
	YearsBack       int
	RateLimitPerMin int
}

// Gatherer fetches daily bars and derives per-year growth forecasts.
type Gatherer struct {
	client    *marketdata.Client
	limiter   *util.RateLimiter
	yearsBack int
	log       *slog.Logger
}

// New creates a Gatherer from cfg. YearsBack defaults to 5 and the rate
// limit to 200 requests per minute when unset.
func New(cfg Config) *Gatherer {
	opts := marketdata.ClientOpts{
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
	}
	if cfg.DataURL != "" {
		opts.BaseURL = cfg.DataURL
	}
	yearsBack := cfg.YearsBack
	if yearsBack <= 0 {
		yearsBack = 5
	}
	perMin := cfg.RateLimitPerMin
	if perMin <= 0 {
		perMin = 200
	}
	return &Gatherer{
		client:    marketdata.NewClient(opts),
		limiter:   util.NewRateLimiter(perMin),
		yearsBack: yearsBack,
		log:       slog.Default().With("component", "gather"),
	}
}

// Gather fetches bars for each ticker and returns one forecast record per
// ticker that produced enough history. Tickers that fail to fetch or lack
// history are logged and skipped; Gather only errors when the context is
// cancelled.
func (g *Gatherer) Gather(ctx context.Context, tickers []string, now time.Time) ([]forecast.Record, error) {
	var recs []forecast.Record
	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return recs, err
		}

		bars, err := g.fetchBars(ctx, ticker, now)
		if err != nil {
			g.log.Warn("fetch failed, skipping", "ticker", ticker, "err", err)
			continue
		}

		growth := AnnualGrowth(YearEndCloses(bars))
		if len(growth) == 0 {
			g.log.Warn("insufficient history, skipping", "ticker", ticker, "bars", len(bars))
			continue
		}

		rec := ProjectForecast(ticker, growth, now.Year()+1)
		recs = append(recs, rec)
		g.log.Info("gathered", "ticker", ticker, "years", rec.NumYears())
	}
	return recs, nil
}

// fetchBars pulls daily closes covering yearsBack+1 calendar years so that
// yearsBack year-over-year growth rates can be formed.
func (g *Gatherer) fetchBars(ctx context.Context, symbol string, now time.Time) ([]marketdata.Bar, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Date(now.Year()-g.yearsBack-1, time.January, 1, 0, 0, 0, 0, time.UTC)
	var bars []marketdata.Bar
	err := util.Retry(ctx, 3, time.Second, func() error {
		var err error
		bars, err = g.client.GetBars(symbol, marketdata.GetBarsRequest{
			TimeFrame: marketdata.OneDay,
			Start:     start,
			End:       now,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("GetBars %s: %w", symbol, err)
	}
	return bars, nil
}

// YearEndCloses reduces daily bars to the last close seen in each calendar
// year. Bars need not be sorted; the latest timestamp per year wins.
func YearEndCloses(bars []marketdata.Bar) map[int]float64 {
	latest := make(map[int]time.Time)
	closes := make(map[int]float64)
	for _, b := range bars {
		y := b.Timestamp.Year()
		if ts, ok := latest[y]; !ok || b.Timestamp.After(ts) {
			latest[y] = b.Timestamp
			closes[y] = b.Close
		}
	}
	return closes
}

// AnnualGrowth converts year-end closes into year-over-year growth
// percentages, sorted by year. A year contributes only when the preceding
// year is present with a positive close.
func AnnualGrowth(closes map[int]float64) []forecast.YearRate {
	years := make([]int, 0, len(closes))
	for y := range closes {
		years = append(years, y)
	}
	sort.Ints(years)

	var rates []forecast.YearRate
	for _, y := range years {
		prev, ok := closes[y-1]
		if !ok || prev <= 0 {
			continue
		}
		rates = append(rates, forecast.YearRate{
			Year: y,
			Rate: (closes[y]/prev - 1) * 100,
		})
	}
	return rates
}

// ProjectForecast carries historical growth rates forward as forecasts
// starting at firstYear, oldest rate first.
func ProjectForecast(ticker string, growth []forecast.YearRate, firstYear int) forecast.Record {
	years := make([]forecast.YearRate, len(growth))
	for i, g := range growth {
		years[i] = forecast.YearRate{Year: firstYear + i, Rate: g.Rate}
	}
	return forecast.Record{Ticker: ticker, Years: years}
}
