package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// CSVPath returns the per-ticker CSV export path under dir.
func CSVPath(dir, ticker string) string {
	return filepath.Join(dir, ticker+"_simulation_results.csv")
}

// ExportCSV writes every trial outcome to path, one row per trial in trial
// order, with a 1-based simulation index.
func ExportCSV(path string, outcomes []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "Simulation,FinalValue")
	for i, v := range outcomes {
		fmt.Fprintf(w, "%d,%.4f\n", i+1, v)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	return f.Close()
}
