package cleaner

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"triptools/internal/models"
	"triptools/internal/tripcsv"

	"github.com/araddon/dateparse"
)

// ErrEmptyDate indicates a blank date cell.
var ErrEmptyDate = errors.New("empty date")

// Notice records one dropped row with its input line number.
type Notice struct {
	Line   int
	Reason string
	Value  string
}

func (n Notice) String() string {
	return fmt.Sprintf("row %d: %s (%q)", n.Line, n.Reason, n.Value)
}

// Transformer parses, filters, and canonicalizes trip records.
type Transformer struct{}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{}
}

// ParseDate parses a date cell with a permissive mixed-format parser.
func (tr *Transformer) ParseDate(cell string) (time.Time, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return time.Time{}, ErrEmptyDate
	}

	return dateparse.ParseAny(trimmed)
}

// record pairs a parsed row with its source record for re-emission.
type record struct {
	row    models.Row
	fields []string
}

// Rows parses every record of the table against the resolved columns.
// Records with an unparseable date or a blank place are dropped and
// reported; survivors are sorted ascending by date, input order kept on
// ties.
func (tr *Transformer) Rows(t *tripcsv.Table, cols Columns) ([]models.Row, []Notice) {
	var notices []Notice

	var kept []record

	for i, fields := range t.Records {
		line := t.Line(i)

		date, err := tr.ParseDate(fields[cols.Date])
		if err != nil {
			notices = append(notices, Notice{Line: line, Reason: "invalid date", Value: fields[cols.Date]})

			continue
		}

		place := strings.TrimSpace(fields[cols.Place])
		if place == "" {
			notices = append(notices, Notice{Line: line, Reason: "empty place", Value: fields[cols.Place]})

			continue
		}

		mode := models.ModeFlight
		if cols.Type >= 0 {
			mode = models.ParseMode(fields[cols.Type])
		}

		kept = append(kept, record{
			row: models.Row{
				Date:    date,
				RawDate: fields[cols.Date],
				Place:   place,
				Mode:    mode,
				Line:    line,
			},
			fields: fields,
		})
	}

	sort.SliceStable(kept, func(a, b int) bool {
		return kept[a].row.Date.Before(kept[b].row.Date)
	})

	rows := make([]models.Row, len(kept))
	for i, rec := range kept {
		rows[i] = rec.row
	}

	return rows, notices
}

// Rewrite produces the output table: same columns and order as the
// input, with date cells canonicalized, places trimmed, and type cells
// normalized when the column exists.
func (tr *Transformer) Rewrite(t *tripcsv.Table, cols Columns, rows []models.Row) *tripcsv.Table {
	byLine := make(map[int][]string, len(t.Records))
	for i, fields := range t.Records {
		byLine[t.Line(i)] = fields
	}

	out := &tripcsv.Table{
		Header:  t.Header,
		Records: make([][]string, 0, len(rows)),
	}

	for _, row := range rows {
		src := byLine[row.Line]

		fields := make([]string, len(src))
		copy(fields, src)

		fields[cols.Date] = row.DateString()
		fields[cols.Place] = row.Place

		if cols.Type >= 0 {
			fields[cols.Type] = string(row.Mode)
		}

		out.Records = append(out.Records, fields)
	}

	return out
}
