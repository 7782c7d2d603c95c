package forecast

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Forecast files are semi-structured text blocks of the form:
//
//	REVENUE FORECAST FOR TSLA (using gpt-4o)
//	---------------------------------------------------
//	2026: 18.50%
//	2027: 15.20%
//	---------------------------------------------------
//
// Each block yields one Record. Body lines that do not parse as
// "YEAR: RATE%" (or "YEAR RATE%") are ignored, matching the free-form
// commentary the upstream forecast generators interleave with the numbers.

const headerMarker = "REVENUE FORECAST FOR"

// ParseFile reads the forecast file at path and returns all records that
// contain at least one forecast year. Blocks with no parseable years are
// dropped with a warning.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening forecast file: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// Parse reads forecast blocks from r and returns the valid records in file
// order.
func Parse(r io.Reader) ([]Record, error) {
	var (
		records []Record
		current Record
		inBlock bool
	)

	flush := func() {
		if !inBlock {
			return
		}
		if err := current.Validate(); err != nil {
			slog.Warn("skipping forecast block", "ticker", current.Ticker, "err", err)
		} else {
			records = append(records, current)
		}
		current = Record{}
		inBlock = false
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")

		if strings.Contains(line, headerMarker) {
			flush()
			current = Record{Ticker: parseTicker(line)}
			inBlock = true
			continue
		}

		if inBlock && strings.Contains(line, "---") {
			// A separator directly after the header opens the body; one
			// after parsed years closes the block.
			if len(current.Years) > 0 {
				flush()
			}
			continue
		}

		if inBlock && strings.TrimSpace(line) != "" {
			if year, rate, ok := parseYearRate(line); ok {
				current.Years = append(current.Years, YearRate{Year: year, Rate: rate})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading forecast input: %w", err)
	}

	// File may end inside an open block.
	flush()

	return records, nil
}

// parseTicker extracts the ticker from a header line such as
// "REVENUE FORECAST FOR NVDA (using gpt-4o)". The parenthetical is optional.
func parseTicker(line string) string {
	idx := strings.Index(line, headerMarker)
	rest := strings.TrimSpace(line[idx+len(headerMarker):])
	if p := strings.Index(rest, " ("); p >= 0 {
		rest = rest[:p]
	}
	return strings.TrimSpace(rest)
}

// parseYearRate parses body lines of the form "2026: 18.50%" or
// "2026 18.50%". The percent sign is optional.
func parseYearRate(line string) (year int, rate float64, ok bool) {
	s := strings.TrimSpace(line)

	if _, err := fmt.Sscanf(s, "%d: %f%%", &year, &rate); err == nil {
		return year, rate, true
	}
	if _, err := fmt.Sscanf(s, "%d: %f", &year, &rate); err == nil {
		return year, rate, true
	}
	if _, err := fmt.Sscanf(s, "%d %f%%", &year, &rate); err == nil {
		return year, rate, true
	}
	if _, err := fmt.Sscanf(s, "%d %f", &year, &rate); err == nil {
		return year, rate, true
	}
	return 0, 0, false
}
