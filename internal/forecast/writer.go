package forecast

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Write emits records in the same text format Parse reads: a header line per
// instrument, one "YYYY: X.XX%" line per forecast year, and a "---"
// separator after each block.
func Write(w io.Writer, recs []Record, model string) error {
	bw := bufio.NewWriter(w)
	for _, rec := range recs {
		fmt.Fprintf(bw, "%s %s (using %s)\n", headerMarker, rec.Ticker, model)
		for _, yr := range rec.Years {
			fmt.Fprintf(bw, "%d: %.2f%%\n", yr.Year, yr.Rate)
		}
		fmt.Fprintln(bw, "---")
	}
	return bw.Flush()
}

// WriteFile writes records to path, creating or truncating it.
func WriteFile(path string, recs []Record, model string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create forecast file %s: %w", path, err)
	}
	if err := Write(f, recs, model); err != nil {
		f.Close()
		return fmt.Errorf("write forecast file %s: %w", path, err)
	}
	return f.Close()
}
