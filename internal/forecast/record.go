// Package forecast defines per-instrument growth forecasts and the parser
// for the analyst forecast text format.
package forecast

import (
	"errors"
	"fmt"
)

// ErrNoYears is returned when a record with no forecast years reaches
// validation. Such records are skipped; they never enter simulation.
var ErrNoYears = errors.New("forecast: record has no forecast years")

// ErrNoTicker is returned when a record is missing its instrument ticker.
var ErrNoTicker = errors.New("forecast: record has empty ticker")

// YearRate pairs a fiscal year with its forecast growth rate in percent.
type YearRate struct {
	Year int
	Rate float64
}

// Record is one instrument's ordered forecast: a ticker plus (year, rate)
// pairs in the order they were supplied. Records are immutable once built.
type Record struct {
	Ticker string
	Years  []YearRate
}

// NumYears returns the number of forecast years in the record.
func (r Record) NumYears() int { return len(r.Years) }

// Rates returns the forecast growth rates in year order.
func (r Record) Rates() []float64 {
	rates := make([]float64, len(r.Years))
	for i, yr := range r.Years {
		rates[i] = yr.Rate
	}
	return rates
}

// Validate rejects records that cannot be simulated.
func (r Record) Validate() error {
	if r.Ticker == "" {
		return ErrNoTicker
	}
	if len(r.Years) == 0 {
		return fmt.Errorf("forecast: %s: %w", r.Ticker, ErrNoYears)
	}
	return nil
}
