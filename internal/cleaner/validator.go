package cleaner

import (
	"errors"
	"fmt"
	"strings"

	"triptools/internal/tripcsv"
)

// ErrMissingColumns indicates the CSV lacks a required column.
var ErrMissingColumns = errors.New("CSV must have 'date' and 'place' columns")

// Columns holds the resolved positions of the trip columns. Type is -1
// when the optional type column is absent.
type Columns struct {
	Date  int
	Place int
	Type  int
}

// Validator locates and checks the required trip columns.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// CheckColumns resolves the date/place/type columns, failing when a
// required one is missing and reporting the columns actually found.
func (v *Validator) CheckColumns(t *tripcsv.Table) (Columns, error) {
	cols := Columns{
		Date:  t.ColumnIndex(tripcsv.ColDate),
		Place: t.ColumnIndex(tripcsv.ColPlace),
		Type:  t.ColumnIndex(tripcsv.ColType),
	}

	if cols.Date < 0 || cols.Place < 0 {
		return cols, fmt.Errorf("%w (found: %s)", ErrMissingColumns, strings.Join(t.Header, ", "))
	}

	return cols, nil
}
