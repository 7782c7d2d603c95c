package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"growthsim/internal/simulate"
)

// Compile-time interface check.
var _ HistoryStore = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	ticker         TEXT    NOT NULL,
	created_at     TEXT    NOT NULL,
	trials         INTEGER NOT NULL,
	volatility     REAL    NOT NULL,
	mean           REAL    NOT NULL,
	std_dev        REAL    NOT NULL,
	min            REAL    NOT NULL,
	max            REAL    NOT NULL,
	p5             REAL    NOT NULL,
	p50            REAL    NOT NULL,
	p95            REAL    NOT NULL,
	var_95         REAL    NOT NULL,
	var_99         REAL    NOT NULL,
	prob_positive  REAL    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_ticker ON runs(ticker, created_at);
`

// SQLiteStore implements HistoryStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, applies the
// schema, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying history schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts one instrument's run summary.
func (s *SQLiteStore) SaveRun(ctx context.Context, rs simulate.RunSummary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			ticker, created_at, trials, volatility,
			mean, std_dev, min, max, p5, p50, p95, var_95, var_99,
			prob_positive
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rs.Ticker,
		time.Now().UTC().Format(time.RFC3339),
		rs.TrialCount,
		rs.Volatility,
		rs.Overall.Mean,
		rs.Overall.StdDev,
		rs.Overall.Min,
		rs.Overall.Max,
		rs.Overall.P5,
		rs.Overall.P50,
		rs.Overall.P95,
		rs.Overall.VaR95,
		rs.Overall.VaR99,
		rs.Probs.Positive,
	)
	if err != nil {
		return fmt.Errorf("saving run for %s: %w", rs.Ticker, err)
	}
	return nil
}

// ListRuns returns the most recent runs for a ticker, newest first, up to
// limit. An empty ticker matches all instruments.
func (s *SQLiteStore) ListRuns(ctx context.Context, ticker string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, ticker, created_at, trials, volatility,
		       mean, std_dev, min, max, p5, p50, p95, var_95, var_99,
		       prob_positive
		FROM runs`
	args := []any{}
	if ticker != "" {
		query += " WHERE ticker = ?"
		args = append(args, ticker)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt string
		if err := rows.Scan(
			&r.ID, &r.Ticker, &createdAt, &r.Trials, &r.Volatility,
			&r.Mean, &r.StdDev, &r.Min, &r.Max, &r.P5, &r.P50, &r.P95,
			&r.VaR95, &r.VaR99, &r.ProbPositive,
		); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			r.CreatedAt = t
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run rows: %w", err)
	}
	return records, nil
}
