// Package runlog keeps an append-only CSV history of reconciliation runs.
package runlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/payrecon/internal/report"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp  time.Time       `json:"timestamp"`
	RunID      string          `json:"run_id"`
	Source     string          `json:"source"`
	Payments   int             `json:"payments"`
	Matched    int             `json:"matched"`
	Partial    int             `json:"partial_match"`
	Mismatch   int             `json:"amount_mismatch"`
	Unmatched  int             `json:"unmatched"`
	Duplicate  int             `json:"duplicate"`
	WithIssues int             `json:"with_issues"`
	MatchRate  decimal.Decimal `json:"match_rate"`
}

// Header is the CSV header for the run log.
const Header = "timestamp,run_id,source,payments,matched,partial_match,amount_mismatch,unmatched,duplicate,with_issues,match_rate"

const (
	numFields     = 11
	colTimestamp  = 0
	colRunID      = 1
	colSource     = 2
	colPayments   = 3
	colMatched    = 4
	colPartial    = 5
	colMismatch   = 6
	colUnmatched  = 7
	colDuplicate  = 8
	colWithIssues = 9
	colMatchRate  = 10
)

// FromReport summarizes a report as a log entry.
func FromReport(rep *report.Report) Entry {
	s := rep.Summary
	return Entry{
		Timestamp:  rep.GeneratedAt,
		RunID:      rep.ID,
		Source:     rep.Source,
		Payments:   s.TotalPayments,
		Matched:    s.Counts.Matched,
		Partial:    s.Counts.PartialMatch,
		Mismatch:   s.Counts.AmountMismatch,
		Unmatched:  s.Counts.Unmatched,
		Duplicate:  s.Counts.Duplicate,
		WithIssues: s.WithIssues,
		MatchRate:  s.MatchRate,
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colSource] = e.Source
	row[colPayments] = strconv.Itoa(e.Payments)
	row[colMatched] = strconv.Itoa(e.Matched)
	row[colPartial] = strconv.Itoa(e.Partial)
	row[colMismatch] = strconv.Itoa(e.Mismatch)
	row[colUnmatched] = strconv.Itoa(e.Unmatched)
	row[colDuplicate] = strconv.Itoa(e.Duplicate)
	row[colWithIssues] = strconv.Itoa(e.WithIssues)
	row[colMatchRate] = e.MatchRate.StringFixed(4)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	var counts [7]int
	for i, col := range []int{colPayments, colMatched, colPartial, colMismatch, colUnmatched, colDuplicate, colWithIssues} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
		counts[i] = n
	}

	rate, err := decimal.NewFromString(record[colMatchRate])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing match rate %q: %w", record[colMatchRate], err)
	}

	return Entry{
		Timestamp:  ts,
		RunID:      record[colRunID],
		Source:     record[colSource],
		Payments:   counts[0],
		Matched:    counts[1],
		Partial:    counts[2],
		Mismatch:   counts[3],
		Unmatched:  counts[4],
		Duplicate:  counts[5],
		WithIssues: counts[6],
		MatchRate:  rate,
	}, nil
}

// Append writes entries to path, creating the file, its directory and the
// header if needed.
func Append(path string, entries ...Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating run log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing run log: %w", err)
	}
	return f.Close()
}

// Read returns all entries from path, or nil if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
