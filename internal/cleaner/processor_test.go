package cleaner

import (
	"errors"
	"testing"

	"triptools/internal/models"
	"triptools/internal/tripcsv"
)

func TestProcessor_Clean_SortsAndDrops(t *testing.T) {
	table := &tripcsv.Table{
		Header: []string{"date", "place"},
		Records: [][]string{
			{"2025-03-05", "Paris"},
			{"2025-01-10", "Tokyo"},
			{"bad-date", "Rome"},
		},
	}

	result, err := NewProcessor().Clean(table)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}

	if len(result.Rows) != 2 {
		t.Fatalf("kept %d rows, want 2", len(result.Rows))
	}

	if result.Rows[0].Place != "Tokyo" || result.Rows[1].Place != "Paris" {
		t.Errorf("order = %s, %s; want Tokyo, Paris", result.Rows[0].Place, result.Rows[1].Place)
	}

	if len(result.Notices) != 1 {
		t.Fatalf("notices = %d, want 1", len(result.Notices))
	}

	if result.Notices[0].Line != 4 {
		t.Errorf("notice line = %d, want 4", result.Notices[0].Line)
	}

	if result.Output.Records[0][0] != "2025-01-10" {
		t.Errorf("output date = %q, want 2025-01-10", result.Output.Records[0][0])
	}

	if result.DateFrom != "2025-01-10" || result.DateTo != "2025-03-05" {
		t.Errorf("date range = %s..%s, want 2025-01-10..2025-03-05", result.DateFrom, result.DateTo)
	}
}

func TestProcessor_Clean_MissingColumns(t *testing.T) {
	table := &tripcsv.Table{
		Header:  []string{"when", "place"},
		Records: [][]string{{"2025-01-10", "Tokyo"}},
	}

	_, err := NewProcessor().Clean(table)
	if !errors.Is(err, ErrMissingColumns) {
		t.Errorf("Clean error = %v, want ErrMissingColumns", err)
	}
}

func TestProcessor_Clean_BlankPlace(t *testing.T) {
	table := &tripcsv.Table{
		Header: []string{"date", "place"},
		Records: [][]string{
			{"2025-01-10", "   "},
			{"2025-02-01", "  Kyoto  "},
		},
	}

	result, err := NewProcessor().Clean(table)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}

	if len(result.Rows) != 1 {
		t.Fatalf("kept %d rows, want 1", len(result.Rows))
	}

	if result.Rows[0].Place != "Kyoto" {
		t.Errorf("place = %q, want trimmed Kyoto", result.Rows[0].Place)
	}
}

func TestProcessor_Clean_StableTies(t *testing.T) {
	table := &tripcsv.Table{
		Header: []string{"date", "place"},
		Records: [][]string{
			{"2025-01-10", "First"},
			{"2025-01-10", "Second"},
			{"2025-01-10", "Third"},
		},
	}

	result, err := NewProcessor().Clean(table)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}

	want := []string{"First", "Second", "Third"}
	for i, place := range want {
		if result.Rows[i].Place != place {
			t.Errorf("row %d = %q, want %q", i, result.Rows[i].Place, place)
		}
	}
}

func TestProcessor_Clean_TypeNormalization(t *testing.T) {
	table := &tripcsv.Table{
		Header: []string{"date", "place", "type"},
		Records: [][]string{
			{"2025-01-01", "A", "Drive"},
			{"2025-01-02", "B", "FLY"},
			{"2025-01-03", "C", "unknown"},
			{"2025-01-04", "D", "car "},
		},
	}

	result, err := NewProcessor().Clean(table)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}

	want := []string{"car", "flight", "flight", "car"}
	for i, mode := range want {
		if result.Output.Records[i][2] != mode {
			t.Errorf("type[%d] = %q, want %q", i, result.Output.Records[i][2], mode)
		}
	}

	if result.ByMode[models.ModeCar] != 2 || result.ByMode[models.ModeFlight] != 2 {
		t.Errorf("ByMode = %v, want 2 car / 2 flight", result.ByMode)
	}
}

func TestProcessor_Clean_NoTypeColumnDefaultsFlight(t *testing.T) {
	table := &tripcsv.Table{
		Header:  []string{"date", "place"},
		Records: [][]string{{"2025-01-01", "A"}},
	}

	result, err := NewProcessor().Clean(table)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}

	if result.Rows[0].Mode != models.ModeFlight {
		t.Errorf("mode = %q, want flight", result.Rows[0].Mode)
	}

	if result.HasType {
		t.Error("HasType = true, want false")
	}
}

func TestProcessor_Clean_AllInvalid(t *testing.T) {
	table := &tripcsv.Table{
		Header: []string{"date", "place"},
		Records: [][]string{
			{"nonsense", "A"},
			{"2025-01-01", ""},
		},
	}

	result, err := NewProcessor().Clean(table)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}

	if len(result.Rows) != 0 {
		t.Errorf("kept %d rows, want 0", len(result.Rows))
	}

	if len(result.Output.Records) != 0 {
		t.Errorf("output rows = %d, want 0", len(result.Output.Records))
	}
}

func TestProcessor_Clean_Idempotent(t *testing.T) {
	table := &tripcsv.Table{
		Header: []string{"date", "place", "type"},
		Records: [][]string{
			{"2025-01-10", "Tokyo", "flight"},
			{"2025-03-05", "Paris, France", "car"},
		},
	}

	first, err := NewProcessor().Clean(table)
	if err != nil {
		t.Fatalf("first Clean returned unexpected error: %v", err)
	}

	second, err := NewProcessor().Clean(first.Output)
	if err != nil {
		t.Fatalf("second Clean returned unexpected error: %v", err)
	}

	if len(second.Rows) != len(first.Rows) {
		t.Fatalf("row count changed: %d then %d", len(first.Rows), len(second.Rows))
	}

	for i := range first.Output.Records {
		for j := range first.Output.Records[i] {
			if second.Output.Records[i][j] != first.Output.Records[i][j] {
				t.Errorf("cell [%d][%d] changed: %q then %q",
					i, j, first.Output.Records[i][j], second.Output.Records[i][j])
			}
		}
	}
}

func TestTransformer_ParseDate_MixedFormats(t *testing.T) {
	tr := NewTransformer()

	cases := []string{"2025-03-05", "03/05/2025", "March 5, 2025", "5 Mar 2025"}

	for _, in := range cases {
		date, err := tr.ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q) returned unexpected error: %v", in, err)

			continue
		}

		if got := date.Format("2006-01-02"); got != "2025-03-05" {
			t.Errorf("ParseDate(%q) = %s, want 2025-03-05", in, got)
		}
	}
}

func TestTransformer_ParseDate_Empty(t *testing.T) {
	tr := NewTransformer()

	if _, err := tr.ParseDate("   "); !errors.Is(err, ErrEmptyDate) {
		t.Errorf("ParseDate error = %v, want ErrEmptyDate", err)
	}
}
