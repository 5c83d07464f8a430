// Package cleaner validates and normalizes trip CSV tables.
package cleaner

import (
	"fmt"

	"triptools/internal/models"
	"triptools/internal/tripcsv"
)

// Result summarizes one cleaning run.
type Result struct {
	Output    *tripcsv.Table
	Rows      []models.Row
	Notices   []Notice
	ReadCount int
	DateFrom  string
	DateTo    string
	ByMode    map[models.Mode]int
	HasType   bool
}

// Processor runs the full clean pass over a loaded table.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}
}

// Clean validates columns, drops bad rows, sorts by date, and builds the
// rewritten table. A missing required column is the only error; zero
// surviving rows still yields a (header-only) output table.
func (p *Processor) Clean(t *tripcsv.Table) (*Result, error) {
	cols, err := p.validator.CheckColumns(t)
	if err != nil {
		return nil, fmt.Errorf("column validation failed: %w", err)
	}

	rows, notices := p.transformer.Rows(t, cols)

	result := &Result{
		Output:    p.transformer.Rewrite(t, cols, rows),
		Rows:      rows,
		Notices:   notices,
		ReadCount: len(t.Records),
		ByMode:    map[models.Mode]int{},
		HasType:   cols.Type >= 0,
	}

	for _, row := range rows {
		result.ByMode[row.Mode]++
	}

	if len(rows) > 0 {
		result.DateFrom = rows[0].DateString()
		result.DateTo = rows[len(rows)-1].DateString()
	}

	return result, nil
}
