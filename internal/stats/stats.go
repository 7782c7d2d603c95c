// Package stats reduces raw simulation samples into distributional
// summaries: descriptive statistics, order-statistic percentiles,
// value-at-risk, threshold-crossing probabilities, and histogram bins.
package stats

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrEmptySample is returned when a summary is requested for a sample with
// no observations.
var ErrEmptySample = errors.New("stats: empty sample")

// Summary holds the statistical summary of one sealed sample. All values are
// in the same unit as the sample (percent growth for simulation outcomes).
type Summary struct {
	N      int
	Mean   float64
	StdDev float64 // sample std-dev (Bessel); 0 when N == 1, see Summarize
	Min    float64
	Max    float64
	P5     float64
	P25    float64
	P50    float64
	P75    float64
	P95    float64
	VaR95  float64 // -P5: expected loss at 95% confidence
	VaR99  float64 // -P1: expected loss at 99% confidence
}

// Summarize sorts the sample ascending in place and computes its Summary.
// Percentiles are plain order statistics read at floor(p*n) with no
// interpolation. The sample standard deviation uses Bessel's correction;
// for a single observation it is reported as 0 rather than NaN, and callers
// should treat a Summary with N == 1 as degenerate.
func Summarize(sample []float64) (Summary, error) {
	n := len(sample)
	if n == 0 {
		return Summary{}, ErrEmptySample
	}

	sort.Float64s(sample)

	s := Summary{
		N:    n,
		Mean: stat.Mean(sample, nil),
		Min:  sample[0],
		Max:  sample[n-1],
		P5:   Percentile(sample, 0.05),
		P25:  Percentile(sample, 0.25),
		P50:  Percentile(sample, 0.50),
		P75:  Percentile(sample, 0.75),
		P95:  Percentile(sample, 0.95),
	}
	if n > 1 {
		s.StdDev = stat.StdDev(sample, nil)
	}

	s.VaR95 = -s.P5
	s.VaR99 = -Percentile(sample, 0.01)

	return s, nil
}

// Percentile returns the order statistic of a sorted sample at probability p,
// indexing at floor(p*n) clamped into [0, n-1]. The sample must be sorted
// ascending and non-empty.
func Percentile(sorted []float64, p float64) float64 {
	idx := int(p * float64(len(sorted)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
