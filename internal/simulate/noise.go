package simulate

import (
	"gonum.org/v1/gonum/stat"

	"growthsim/internal/forecast"
)

// NoiseModel holds the per-record uncertainty parameters derived once before
// simulation and read-only afterwards. Every forecast year shares the same
// pooled sigma; noise is not year-specific.
type NoiseModel struct {
	// ForecastMean is the arithmetic mean of the forecast growth rates,
	// reported alongside the simulation results.
	ForecastMean float64

	// Sigma is the adjusted standard deviation used for every per-year
	// draw: the population std-dev of the forecast rates scaled by the
	// volatility factor.
	Sigma float64
}

// NewNoiseModel derives the noise model for one forecast record. The
// volatility factor must be positive; callers validate configuration before
// reaching this point.
func NewNoiseModel(rec forecast.Record, volatilityFactor float64) NoiseModel {
	rates := rec.Rates()
	return NoiseModel{
		ForecastMean: stat.Mean(rates, nil),
		Sigma:        stat.PopStdDev(rates, nil) * volatilityFactor,
	}
}
