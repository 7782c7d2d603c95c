// Package report renders simulation summaries as human-readable text
// reports and CSV exports. All numeric content comes pre-computed from the
// simulate and stats packages; this package only formats.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"growthsim/internal/simulate"
	"growthsim/internal/stats"
)

const banner = "===================================================================================="

// Writer renders simulation reports to an io.Writer.
type Writer struct {
	w      io.Writer
	height int // histogram rows
}

// NewWriter creates a report writer. height controls the ASCII histogram's
// vertical resolution; the horizontal resolution is fixed by the summary's
// bin count.
func NewWriter(w io.Writer, height int) *Writer {
	return &Writer{w: w, height: height}
}

// Header writes the one-per-run report preamble.
func (rw *Writer) Header(inputFile string, trials int, volatility float64, now time.Time) error {
	_, err := fmt.Fprintf(rw.w,
		"MONTE CARLO SIMULATION ANALYSIS REPORT\nGenerated: %s\nInput File: %s\nSimulations per Instrument: %d\nVolatility Factor: %.2f\n\n",
		now.Format(time.ANSIC), inputFile, trials, volatility)
	return err
}

// Instrument writes the full per-instrument section: summary statistics,
// percentile analysis, risk metrics, probability analysis, the distribution
// histogram, and the year-by-year breakdown.
func (rw *Writer) Instrument(rs simulate.RunSummary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", banner)
	fmt.Fprintf(&b, "MONTE CARLO SIMULATION RESULTS FOR %s\n", rs.Ticker)
	fmt.Fprintf(&b, "%s\n", banner)
	fmt.Fprintf(&b, "Number of Simulations: %d\n", rs.TrialCount)
	fmt.Fprintf(&b, "Forecast Period: %d-%d (%d years)\n", rs.FirstYear, rs.LastYear, len(rs.Years))
	fmt.Fprintf(&b, "Base Forecast Mean Growth: %.2f%%\n", rs.Noise.ForecastMean)
	fmt.Fprintf(&b, "Adjusted Standard Deviation: %.2f%%\n", rs.Noise.Sigma)
	fmt.Fprintf(&b, "Volatility Factor Applied: %.1fx\n\n", rs.Volatility)

	s := rs.Overall
	fmt.Fprintf(&b, "SIMULATION SUMMARY STATISTICS:\n")
	fmt.Fprintf(&b, "------------------------------\n")
	fmt.Fprintf(&b, "Mean Cumulative Growth:     %8.2f%%\n", s.Mean)
	fmt.Fprintf(&b, "Standard Deviation:         %8.2f%%\n", s.StdDev)
	if s.N == 1 {
		fmt.Fprintf(&b, "  (single trial: standard deviation undefined, reported as 0)\n")
	}
	fmt.Fprintf(&b, "Minimum Growth:             %8.2f%%\n", s.Min)
	fmt.Fprintf(&b, "Maximum Growth:             %8.2f%%\n", s.Max)

	fmt.Fprintf(&b, "\nPERCENTILE ANALYSIS:\n")
	fmt.Fprintf(&b, "--------------------\n")
	fmt.Fprintf(&b, "5th Percentile (Worst 5%%):  %8.2f%%\n", s.P5)
	fmt.Fprintf(&b, "25th Percentile:            %8.2f%%\n", s.P25)
	fmt.Fprintf(&b, "50th Percentile (Median):   %8.2f%%\n", s.P50)
	fmt.Fprintf(&b, "75th Percentile:            %8.2f%%\n", s.P75)
	fmt.Fprintf(&b, "95th Percentile (Best 5%%):  %8.2f%%\n", s.P95)

	fmt.Fprintf(&b, "\nRISK METRICS:\n")
	fmt.Fprintf(&b, "-------------\n")
	fmt.Fprintf(&b, "Value at Risk (95%% confidence): %8.2f%%\n", s.VaR95)
	fmt.Fprintf(&b, "Value at Risk (99%% confidence): %8.2f%%\n", s.VaR99)

	p := rs.Probs
	fmt.Fprintf(&b, "\nPROBABILITY ANALYSIS:\n")
	fmt.Fprintf(&b, "---------------------\n")
	fmt.Fprintf(&b, "Probability of Positive Growth:  %6.2f%%\n", p.Positive*100)
	fmt.Fprintf(&b, "Probability of >10%% Growth:      %6.2f%%\n", p.Above10*100)
	fmt.Fprintf(&b, "Probability of >20%% Growth:      %6.2f%%\n", p.Above20*100)
	fmt.Fprintf(&b, "Probability of <-10%% Loss:       %6.2f%%\n", p.BelowNeg10*100)

	renderHistogram(&b, rs.Hist, rw.height)

	fmt.Fprintf(&b, "YEAR-BY-YEAR ANALYSIS:\n")
	fmt.Fprintf(&b, "======================\n")
	for _, ys := range rs.Years {
		fmt.Fprintf(&b, "Year %d (Forecast: %.2f%%):\n", ys.Year, ys.ForecastRate)
		fmt.Fprintf(&b, "  Simulated Mean: %7.2f%% | Std Dev: %6.2f%%\n", ys.Stats.Mean, ys.Stats.StdDev)
		fmt.Fprintf(&b, "  Range: %7.2f%% to %7.2f%% | Median: %7.2f%%\n",
			ys.Stats.Min, ys.Stats.Max, ys.Stats.P50)
	}

	fmt.Fprintf(&b, "\n%s\n", banner)
	fmt.Fprintf(&b, "END OF ANALYSIS FOR %s\n", rs.Ticker)
	fmt.Fprintf(&b, "%s\n\n\n", banner)

	_, err := io.WriteString(rw.w, b.String())
	return err
}

// renderHistogram draws the binned outcome distribution as ASCII bars. Bar
// heights are scaled to the most populated bin; the y-axis labels the
// relative frequency, the x-axis spans [min, max] of the sample.
func renderHistogram(b *strings.Builder, h stats.Histogram, height int) {
	width := len(h.Counts)
	if width == 0 || height <= 0 {
		return
	}

	maxFreq := 0
	for _, c := range h.Counts {
		if c > maxFreq {
			maxFreq = c
		}
	}

	fmt.Fprintf(b, "\nDISTRIBUTION HISTOGRAM:\n")
	fmt.Fprintf(b, "========================\n")
	if h.Degenerate {
		fmt.Fprintf(b, "(all trials produced the same outcome; distribution has zero width)\n")
	}

	for row := height - 1; row >= 0; row-- {
		fmt.Fprintf(b, "%3d%% |", (row*100)/height)
		for _, c := range h.Counts {
			barHeight := 0
			if maxFreq > 0 {
				barHeight = (c * height) / maxFreq
			}
			if barHeight > row {
				b.WriteByte('*')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString("|\n")
	}

	fmt.Fprintf(b, "     +%s+\n", strings.Repeat("-", width))
	minLabel := fmt.Sprintf("    %.1f%%", h.Min)
	pad := width - 10
	if pad < 1 {
		pad = 1
	}
	fmt.Fprintf(b, "%s%s%.1f%%\n\n", minLabel, strings.Repeat(" ", pad), h.Max)
}
