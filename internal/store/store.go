// Package store persists simulation artifacts: raw per-trial outcomes as
// Parquet files, and per-run summary rows in a SQLite history database.
// Simulation state itself is never persisted; only derived results are.
package store

import (
	"context"
	"time"

	"growthsim/internal/simulate"
)

// TrialStore persists and retrieves raw per-trial outcome samples.
type TrialStore interface {
	// WriteOutcomes persists one run's outcome sample for a ticker,
	// in trial order.
	WriteOutcomes(ctx context.Context, ticker string, outcomes []float64) error

	// ReadOutcomes returns the most recently written outcome sample for
	// the ticker, in trial order.
	ReadOutcomes(ctx context.Context, ticker string) ([]float64, error)
}

// HistoryStore persists per-run summary rows for cross-run comparison.
type HistoryStore interface {
	// SaveRun inserts one instrument's run summary.
	SaveRun(ctx context.Context, rs simulate.RunSummary) error

	// ListRuns returns the most recent runs for a ticker, newest first,
	// up to limit. An empty ticker matches all instruments.
	ListRuns(ctx context.Context, ticker string, limit int) ([]RunRecord, error)
}

// RunRecord is one persisted run-summary row.
type RunRecord struct {
	ID         int64
	Ticker     string
	CreatedAt  time.Time
	Trials     int
	Volatility float64

	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P5     float64
	P50    float64
	P95    float64
	VaR95  float64
	VaR99  float64

	ProbPositive float64
}
