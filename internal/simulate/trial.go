package simulate

import "growthsim/internal/forecast"

// Trial runs one independent growth path over the record's forecast years.
// Each year's simulated growth rate is drawn from a normal distribution
// centered on that year's forecast rate with the noise model's pooled sigma,
// and compounded into a cumulative growth factor. The simulated rate for
// each year is written into perYear, which must have length
// rec.NumYears(). The return value is cumulative growth as a percentage of
// the starting value.
//
// Trial is a pure function of its inputs and the generator state: given a
// deterministic NormalSource it is fully reproducible.
func Trial(rec forecast.Record, noise NoiseModel, src *NormalSource, perYear []float64) float64 {
	factor := 1.0
	for i, yr := range rec.Years {
		rate := src.Norm(yr.Rate, noise.Sigma)
		perYear[i] = rate
		factor *= 1.0 + rate/100.0
	}
	return (factor - 1.0) * 100.0
}
