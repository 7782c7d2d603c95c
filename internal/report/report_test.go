package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"growthsim/internal/simulate"
	"growthsim/internal/stats"
)

func sampleSummary(t *testing.T) simulate.RunSummary {
	t.Helper()
	outcomes := []float64{-15.0, -5.0, 2.5, 10.5, 33.1}
	sum, err := stats.Summarize(append([]float64(nil), outcomes...))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	probs, err := stats.ComputeProbabilities(outcomes)
	if err != nil {
		t.Fatalf("ComputeProbabilities: %v", err)
	}
	hist, err := stats.Bin(outcomes, 20)
	if err != nil {
		t.Fatalf("Bin: %v", err)
	}
	return simulate.RunSummary{
		Ticker:     "AAPL",
		TrialCount: len(outcomes),
		Volatility: 1.5,
		Noise:      simulate.NoiseModel{ForecastMean: 10.0, Sigma: 7.5},
		FirstYear:  2026,
		LastYear:   2027,
		Overall:    sum,
		Years: []simulate.YearSummary{
			{Year: 2026, ForecastRate: 10.0, Stats: sum},
			{Year: 2027, ForecastRate: 12.0, Stats: sum},
		},
		Probs:    probs,
		Hist:     hist,
		Outcomes: outcomes,
	}
}

func TestHeader(t *testing.T) {
	var b strings.Builder
	w := NewWriter(&b, 10)
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	if err := w.Header("Forecasts.txt", 10000, 1.5, now); err != nil {
		t.Fatalf("Header: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		"MONTE CARLO SIMULATION ANALYSIS REPORT",
		"Input File: Forecasts.txt",
		"Simulations per Instrument: 10000",
		"Volatility Factor: 1.50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestInstrument(t *testing.T) {
	rs := sampleSummary(t)
	var b strings.Builder
	w := NewWriter(&b, 10)
	if err := w.Instrument(rs); err != nil {
		t.Fatalf("Instrument: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		"MONTE CARLO SIMULATION RESULTS FOR AAPL",
		"Number of Simulations: 5",
		"Forecast Period: 2026-2027 (2 years)",
		"Base Forecast Mean Growth: 10.00%",
		"Adjusted Standard Deviation: 7.50%",
		"SIMULATION SUMMARY STATISTICS:",
		"PERCENTILE ANALYSIS:",
		"RISK METRICS:",
		"PROBABILITY ANALYSIS:",
		"DISTRIBUTION HISTOGRAM:",
		"YEAR-BY-YEAR ANALYSIS:",
		"Year 2026 (Forecast: 10.00%):",
		"Year 2027 (Forecast: 12.00%):",
		"END OF ANALYSIS FOR AAPL",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if !strings.Contains(out, "Probability of Positive Growth:   60.00%") {
		t.Errorf("unexpected probability line:\n%s", out)
	}
}

func TestHistogramShape(t *testing.T) {
	rs := sampleSummary(t)
	var b strings.Builder
	renderHistogram(&b, rs.Hist, 5)
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")

	barRows := 0
	for _, ln := range lines {
		if strings.Contains(ln, "% |") {
			barRows++
			if !strings.HasSuffix(ln, "|") {
				t.Errorf("bar row missing right border: %q", ln)
			}
		}
	}
	if barRows != 5 {
		t.Errorf("bar rows = %d, want 5", barRows)
	}
	axis := "+" + strings.Repeat("-", len(rs.Hist.Counts)) + "+"
	if !strings.Contains(b.String(), axis) {
		t.Errorf("missing x axis %q", axis)
	}
	if !strings.Contains(b.String(), "-15.0%") || !strings.Contains(b.String(), "33.1%") {
		t.Errorf("missing range labels:\n%s", b.String())
	}
}

func TestHistogramDegenerate(t *testing.T) {
	h, err := stats.Bin([]float64{5, 5, 5}, 10)
	if err != nil {
		t.Fatalf("Bin: %v", err)
	}
	var b strings.Builder
	renderHistogram(&b, h, 4)
	if !strings.Contains(b.String(), "zero width") {
		t.Errorf("degenerate note missing:\n%s", b.String())
	}
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	path := CSVPath(dir, "MSFT")
	if got, want := path, filepath.Join(dir, "MSFT_simulation_results.csv"); got != want {
		t.Fatalf("CSVPath = %q, want %q", got, want)
	}

	if err := ExportCSV(path, []float64{1.23456, -9.87654}); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	want := "Simulation,FinalValue\n1,1.2346\n2,-9.8765\n"
	if string(data) != want {
		t.Errorf("csv = %q, want %q", string(data), want)
	}
}
