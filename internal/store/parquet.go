package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Compile-time interface check.
var _ TrialStore = (*ParquetStore)(nil)

// ParquetStore implements TrialStore using Parquet files on disk, one file
// per ticker, overwritten on each run.
type ParquetStore struct {
	DataDir string
}

// NewParquetStore creates a ParquetStore rooted at the given data directory.
func NewParquetStore(dataDir string) *ParquetStore {
	return &ParquetStore{DataDir: dataDir}
}

// TrialOutcome is the Parquet schema for one trial's cumulative outcome.
type TrialOutcome struct {
	Ticker  string  `parquet:"ticker"`
	Trial   int64   `parquet:"trial"` // 1-based, matching the CSV export
	Outcome float64 `parquet:"outcome"`
}

// WriteOutcomes writes the run's outcome sample to
// <DataDir>/simulations/<TICKER>.parquet, replacing any previous run.
func (s *ParquetStore) WriteOutcomes(_ context.Context, ticker string, outcomes []float64) error {
	records := make([]TrialOutcome, len(outcomes))
	for i, v := range outcomes {
		records[i] = TrialOutcome{Ticker: ticker, Trial: int64(i + 1), Outcome: v}
	}

	path := s.outcomePath(ticker)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating simulations dir: %w", err)
	}
	if err := parquet.WriteFile(path, records); err != nil {
		return fmt.Errorf("writing outcomes for %s: %w", ticker, err)
	}
	return nil
}

// ReadOutcomes reads back the ticker's outcome sample in trial order.
func (s *ParquetStore) ReadOutcomes(_ context.Context, ticker string) ([]float64, error) {
	records, err := parquet.ReadFile[TrialOutcome](s.outcomePath(ticker))
	if err != nil {
		return nil, fmt.Errorf("reading outcomes for %s: %w", ticker, err)
	}

	outcomes := make([]float64, len(records))
	for _, r := range records {
		idx := int(r.Trial) - 1
		if idx >= 0 && idx < len(outcomes) {
			outcomes[idx] = r.Outcome
		}
	}
	return outcomes, nil
}

// outcomePath returns the Parquet file path for a ticker's raw outcomes.
// Layout: <dataDir>/simulations/<TICKER>.parquet
func (s *ParquetStore) outcomePath(ticker string) string {
	return filepath.Join(s.DataDir, "simulations", strings.ToUpper(ticker)+".parquet")
}
