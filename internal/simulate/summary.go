package simulate

import (
	"fmt"

	"growthsim/internal/forecast"
	"growthsim/internal/stats"
)

// YearSummary pairs one forecast year with the distribution of its simulated
// growth rates across all trials.
type YearSummary struct {
	Year         int
	ForecastRate float64
	Stats        stats.Summary
}

// RunSummary aggregates everything derived from one record's simulation run:
// the overall outcome distribution, the per-year distributions, probability
// metrics, and histogram bins. Output collaborators (report writer, CSV and
// Parquet exporters, run-history store) consume it read-only.
type RunSummary struct {
	Ticker     string
	TrialCount int
	Volatility float64
	Noise      NoiseModel

	FirstYear int
	LastYear  int

	Overall stats.Summary
	Years   []YearSummary
	Probs   stats.Probabilities
	Hist    stats.Histogram

	// Outcomes is the raw outcome sample in trial order, for exporters
	// that need per-trial rows.
	Outcomes []float64
}

// Summarize reduces the raw samples produced by a Runner into a RunSummary.
// histBuckets controls histogram resolution. The outcomes slice is retained
// (in trial order); the per-year samples are consumed and may be reordered.
func Summarize(rec forecast.Record, noise NoiseModel, volatility float64, outcomes []float64, perYear [][]float64, histBuckets int) (RunSummary, error) {
	// Statistics sort in place; keep the trial-order sample intact for
	// exporters.
	sorted := make([]float64, len(outcomes))
	copy(sorted, outcomes)

	overall, err := stats.Summarize(sorted)
	if err != nil {
		return RunSummary{}, fmt.Errorf("summarizing outcomes for %s: %w", rec.Ticker, err)
	}

	probs, err := stats.ComputeProbabilities(outcomes)
	if err != nil {
		return RunSummary{}, fmt.Errorf("probability metrics for %s: %w", rec.Ticker, err)
	}

	hist, err := stats.Bin(outcomes, histBuckets)
	if err != nil {
		return RunSummary{}, fmt.Errorf("histogram for %s: %w", rec.Ticker, err)
	}

	years := make([]YearSummary, rec.NumYears())
	for y, yr := range rec.Years {
		ys, err := stats.Summarize(perYear[y])
		if err != nil {
			return RunSummary{}, fmt.Errorf("summarizing year %d for %s: %w", yr.Year, rec.Ticker, err)
		}
		years[y] = YearSummary{Year: yr.Year, ForecastRate: yr.Rate, Stats: ys}
	}

	return RunSummary{
		Ticker:     rec.Ticker,
		TrialCount: len(outcomes),
		Volatility: volatility,
		Noise:      noise,
		FirstYear:  rec.Years[0].Year,
		LastYear:   rec.Years[len(rec.Years)-1].Year,
		Overall:    overall,
		Years:      years,
		Probs:      probs,
		Hist:       hist,
		Outcomes:   outcomes,
	}, nil
}
