package stats

import (
	"errors"
	"math"
	"testing"
)

func TestSummarizeKnownSample(t *testing.T) {
	// 1..10 shuffled; Summarize sorts in place.
	sample := []float64{7, 1, 9, 3, 10, 5, 2, 8, 4, 6}

	s, err := Summarize(sample)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if s.N != 10 {
		t.Errorf("N = %d, want 10", s.N)
	}
	if s.Mean != 5.5 {
		t.Errorf("Mean = %v, want 5.5", s.Mean)
	}
	if s.Min != 1 || s.Max != 10 {
		t.Errorf("Min/Max = %v/%v, want 1/10", s.Min, s.Max)
	}

	// Sample std-dev of 1..10 is sqrt(82.5/9).
	wantStd := math.Sqrt(82.5 / 9.0)
	if math.Abs(s.StdDev-wantStd) > 1e-12 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, wantStd)
	}

	// Order statistics at floor(p*10): p5 -> idx 0, p25 -> idx 2,
	// p50 -> idx 5, p75 -> idx 7, p95 -> idx 9.
	if s.P5 != 1 || s.P25 != 3 || s.P50 != 6 || s.P75 != 8 || s.P95 != 10 {
		t.Errorf("percentiles = %v %v %v %v %v, want 1 3 6 8 10",
			s.P5, s.P25, s.P50, s.P75, s.P95)
	}
}

func TestSummarizePercentileOrdering(t *testing.T) {
	samples := [][]float64{
		{42},
		{-5, 3},
		{1, 1, 1, 1},
		{-30.5, -2.2, 0, 0.1, 4.4, 17, 90},
		{3, -8, 12, -1, 0, 55, -20, 7, 7, 2, 41, -3},
	}

	for _, sample := range samples {
		n := len(sample)
		s, err := Summarize(sample)
		if err != nil {
			t.Fatalf("Summarize(n=%d) returned error: %v", n, err)
		}
		ordered := s.Min <= s.P5 && s.P5 <= s.P25 && s.P25 <= s.P50 &&
			s.P50 <= s.P75 && s.P75 <= s.P95 && s.P95 <= s.Max
		if !ordered {
			t.Errorf("n=%d: percentile ordering violated: %+v", n, s)
		}
	}
}

func TestSummarizeVaRIdentity(t *testing.T) {
	sample := []float64{-25, -12, -4, 0, 3, 8, 15, 22, 31, 48}

	s, err := Summarize(sample)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if s.VaR95 != -s.P5 {
		t.Errorf("VaR95 = %v, want -P5 = %v", s.VaR95, -s.P5)
	}
	wantVaR99 := -Percentile(sample, 0.01)
	if s.VaR99 != wantVaR99 {
		t.Errorf("VaR99 = %v, want %v", s.VaR99, wantVaR99)
	}
	// For this sample p5 and p1 both index element 0 (-25), so both VaRs
	// express the worst case as a positive loss.
	if s.VaR95 != 25 || s.VaR99 != 25 {
		t.Errorf("VaR95/VaR99 = %v/%v, want 25/25", s.VaR95, s.VaR99)
	}
}

func TestSummarizeSingleObservation(t *testing.T) {
	s, err := Summarize([]float64{7.5})
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if s.StdDev != 0 {
		t.Errorf("StdDev for n=1 = %v, want 0 (degenerate sentinel)", s.StdDev)
	}
	if s.Mean != 7.5 || s.Min != 7.5 || s.Max != 7.5 || s.P50 != 7.5 {
		t.Errorf("n=1 summary should collapse to the observation: %+v", s)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil)
	if !errors.Is(err, ErrEmptySample) {
		t.Fatalf("Summarize(nil) error = %v, want ErrEmptySample", err)
	}
}

func TestComputeProbabilities(t *testing.T) {
	sample := []float64{-20, -5, 0.1, 15, 25}

	p, err := ComputeProbabilities(sample)
	if err != nil {
		t.Fatalf("ComputeProbabilities returned error: %v", err)
	}

	if p.Positive != 0.6 {
		t.Errorf("Positive = %v, want 0.6", p.Positive)
	}
	if p.Above10 != 0.4 {
		t.Errorf("Above10 = %v, want 0.4", p.Above10)
	}
	if p.Above20 != 0.2 {
		t.Errorf("Above20 = %v, want 0.2", p.Above20)
	}
	if p.BelowNeg10 != 0.2 {
		t.Errorf("BelowNeg10 = %v, want 0.2", p.BelowNeg10)
	}
}

func TestComputeProbabilitiesStrictInequalities(t *testing.T) {
	// Values sitting exactly on a threshold must not count.
	sample := []float64{0, 10, 20, -10}

	p, err := ComputeProbabilities(sample)
	if err != nil {
		t.Fatalf("ComputeProbabilities returned error: %v", err)
	}
	if p.Positive != 0.5 { // 10 and 20
		t.Errorf("Positive = %v, want 0.5", p.Positive)
	}
	if p.Above10 != 0.25 { // only 20
		t.Errorf("Above10 = %v, want 0.25", p.Above10)
	}
	if p.Above20 != 0 {
		t.Errorf("Above20 = %v, want 0", p.Above20)
	}
	if p.BelowNeg10 != 0 {
		t.Errorf("BelowNeg10 = %v, want 0", p.BelowNeg10)
	}
}

func TestComputeProbabilitiesEmpty(t *testing.T) {
	_, err := ComputeProbabilities(nil)
	if !errors.Is(err, ErrEmptySample) {
		t.Fatalf("ComputeProbabilities(nil) error = %v, want ErrEmptySample", err)
	}
}

func TestBin(t *testing.T) {
	sample := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	h, err := Bin(sample, 10)
	if err != nil {
		t.Fatalf("Bin returned error: %v", err)
	}
	if h.Degenerate {
		t.Error("Degenerate = true for a spread sample")
	}
	if h.Min != 0 || h.Max != 9 {
		t.Errorf("Min/Max = %v/%v, want 0/9", h.Min, h.Max)
	}

	total := 0
	for _, c := range h.Counts {
		total += c
	}
	if total != len(sample) {
		t.Errorf("bin counts sum to %d, want %d", total, len(sample))
	}
	if h.Counts[0] == 0 || h.Counts[len(h.Counts)-1] == 0 {
		t.Errorf("extreme values should land in the first and last bins: %v", h.Counts)
	}
}

func TestBinZeroRange(t *testing.T) {
	sample := []float64{5, 5, 5, 5, 5, 5}

	h, err := Bin(sample, 8)
	if err != nil {
		t.Fatalf("Bin returned error: %v", err)
	}
	if !h.Degenerate {
		t.Error("Degenerate = false for a zero-range sample, want true")
	}
	if len(h.Counts) != 8 {
		t.Fatalf("len(Counts) = %d, want 8", len(h.Counts))
	}
	if h.Counts[0] != len(sample) {
		t.Errorf("Counts[0] = %d, want %d (all values in bucket 0)", h.Counts[0], len(sample))
	}
	for i, c := range h.Counts[1:] {
		if c != 0 {
			t.Errorf("Counts[%d] = %d, want 0", i+1, c)
		}
	}
}

func TestBinEmpty(t *testing.T) {
	_, err := Bin(nil, 10)
	if !errors.Is(err, ErrEmptySample) {
		t.Fatalf("Bin(nil) error = %v, want ErrEmptySample", err)
	}
}
