package store

import (
	"context"
	"path/filepath"
	"testing"

	"growthsim/internal/simulate"
	"growthsim/internal/stats"
)

func TestParquetStoreOutcomePath(t *testing.T) {
	ps := NewParquetStore("/data")

	got := ps.outcomePath("nvda")
	want := filepath.Join("/data", "simulations", "NVDA.parquet")
	if got != want {
		t.Errorf("outcomePath = %s, want %s", got, want)
	}
}

func TestParquetStoreWriteReadOutcomes(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()

	outcomes := []float64{12.5, -3.75, 0, 41.2, 8.8}
	if err := ps.WriteOutcomes(ctx, "AAPL", outcomes); err != nil {
		t.Fatalf("WriteOutcomes: %v", err)
	}

	got, err := ps.ReadOutcomes(ctx, "AAPL")
	if err != nil {
		t.Fatalf("ReadOutcomes: %v", err)
	}
	if len(got) != len(outcomes) {
		t.Fatalf("ReadOutcomes returned %d values, want %d", len(got), len(outcomes))
	}
	for i := range outcomes {
		if got[i] != outcomes[i] {
			t.Errorf("outcomes[%d] = %v, want %v (trial order must survive)", i, got[i], outcomes[i])
		}
	}
}

func TestParquetStoreReadMissing(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	if _, err := ps.ReadOutcomes(context.Background(), "NOPE"); err == nil {
		t.Fatal("ReadOutcomes on missing file should return an error")
	}
}

func sampleRunSummary(ticker string) simulate.RunSummary {
	return simulate.RunSummary{
		Ticker:     ticker,
		TrialCount: 1000,
		Volatility: 1.5,
		Overall: stats.Summary{
			N: 1000, Mean: 22.4, StdDev: 14.1, Min: -31.2, Max: 88.7,
			P5: -2.1, P25: 12.0, P50: 21.9, P75: 32.4, P95: 47.3,
			VaR95: 2.1, VaR99: 11.4,
		},
		Probs: stats.Probabilities{Positive: 0.93, Above10: 0.78, Above20: 0.55, BelowNeg10: 0.02},
	}
}

func TestSQLiteStoreSaveListRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.SaveRun(ctx, sampleRunSummary("NVDA")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := s.SaveRun(ctx, sampleRunSummary("NVDA")); err != nil {
		t.Fatalf("SaveRun (second): %v", err)
	}
	if err := s.SaveRun(ctx, sampleRunSummary("KO")); err != nil {
		t.Fatalf("SaveRun (other ticker): %v", err)
	}

	nvda, err := s.ListRuns(ctx, "NVDA", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(nvda) != 2 {
		t.Fatalf("ListRuns(NVDA) returned %d rows, want 2", len(nvda))
	}
	r := nvda[0]
	if r.Ticker != "NVDA" || r.Trials != 1000 || r.Volatility != 1.5 {
		t.Errorf("run header = %q/%d/%v, want NVDA/1000/1.5", r.Ticker, r.Trials, r.Volatility)
	}
	if r.Mean != 22.4 || r.VaR95 != 2.1 || r.ProbPositive != 0.93 {
		t.Errorf("run stats = %v/%v/%v, want 22.4/2.1/0.93", r.Mean, r.VaR95, r.ProbPositive)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt not recorded")
	}

	all, err := s.ListRuns(ctx, "", 10)
	if err != nil {
		t.Fatalf("ListRuns(all): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListRuns(all) returned %d rows, want 3", len(all))
	}

	limited, err := s.ListRuns(ctx, "", 1)
	if err != nil {
		t.Fatalf("ListRuns(limit=1): %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("ListRuns(limit=1) returned %d rows, want 1", len(limited))
	}
}

func TestSQLiteStoreEmpty(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	records, err := s.ListRuns(context.Background(), "NVDA", 10)
	if err != nil {
		t.Fatalf("ListRuns on empty db: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("ListRuns on empty db returned %d rows, want 0", len(records))
	}
}
