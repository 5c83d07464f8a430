// Package tripcsv reads and writes trip CSV files as in-memory tables.
package tripcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Column names recognized in trip CSV files.
const (
	ColDate  = "date"
	ColPlace = "place"
	ColType  = "type"
)

// ErrEmptyCSV indicates a CSV file without a header row.
var ErrEmptyCSV = errors.New("CSV file has no header row")

// Table is a loaded CSV file: one header row plus data records, all
// fields kept as strings in input order.
type Table struct {
	Header  []string
	Records [][]string
}

// Load reads a CSV file into a Table. Records must match the header
// width; a malformed file is an error, not a per-row degradation.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyCSV
	}

	return &Table{
		Header:  rows[0],
		Records: rows[1:],
	}, nil
}

// ColumnIndex returns the position of a named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Header {
		if col == name {
			return i
		}
	}

	return -1
}

// Line converts a record index to its 1-based line number in the input
// file, accounting for the header row.
func (t *Table) Line(record int) int {
	return record + 2
}

// Save writes the table with every field quoted, so place names with
// commas survive any downstream reader. encoding/csv only quotes on
// demand, so quoting is done here.
func (t *Table) Save(path string) error {
	var sb strings.Builder

	writeRow(&sb, t.Header)

	for _, rec := range t.Records {
		writeRow(&sb, rec)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	return nil
}

func writeRow(sb *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(field, `"`, `""`))
		sb.WriteByte('"')
	}

	sb.WriteByte('\n')
}
