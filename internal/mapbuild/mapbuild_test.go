package mapbuild

import (
	"errors"
	"strings"
	"testing"
	"time"

	"triptools/internal/models"
)

type stubDriver struct {
	calls int
}

func (d *stubDriver) Drive(from, to models.LatLng) (models.Path, bool) {
	d.calls++

	return models.Path{from, {Lat: 50, Lng: 50}, to}, false
}

func testRows() []models.Row {
	coords := []models.LatLng{
		{Lat: 35.68, Lng: 139.69},
		{Lat: 48.85, Lng: 2.35},
		{Lat: 41.9, Lng: 12.5},
	}

	rows := []models.Row{
		{Place: "Tokyo", Mode: models.ModeFlight},
		{Place: "Paris", Mode: models.ModeFlight},
		{Place: "Rome", Mode: models.ModeCar},
	}

	for i := range rows {
		rows[i].Date = time.Date(2025, 1, 10+i, 0, 0, 0, 0, time.UTC)
		rows[i].Coord = &coords[i]
	}

	return rows
}

func TestBuildSegments(t *testing.T) {
	driver := &stubDriver{}
	segments := BuildSegments(testRows(), driver)

	if len(segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(segments))
	}

	first := segments[0]
	if first.Mode != models.ModeFlight || !first.Dashed || len(first.Path) != 2 {
		t.Errorf("flight segment = %+v, want dashed 2-point path", first)
	}

	second := segments[1]
	if second.Mode != models.ModeCar || second.Dashed || len(second.Path) != 3 {
		t.Errorf("car segment = %+v, want driver path", second)
	}

	if driver.calls != 1 {
		t.Errorf("driver called %d times, want 1 (car legs only)", driver.calls)
	}

	if first.From != "Tokyo" || first.To != "Paris" {
		t.Errorf("segment labels = %s -> %s, want Tokyo -> Paris", first.From, first.To)
	}
}

func TestBuildSegments_SingleRow(t *testing.T) {
	if segments := BuildSegments(testRows()[:1], &stubDriver{}); len(segments) != 0 {
		t.Errorf("segments = %d, want 0 for a single stop", len(segments))
	}
}

func TestRender(t *testing.T) {
	rows := testRows()
	segments := BuildSegments(rows, &stubDriver{})

	html, err := Render(rows, segments, 5)
	if err != nil {
		t.Fatalf("Render returned unexpected error: %v", err)
	}

	if !strings.Contains(html, "var "+MapVar+" = L.map") {
		t.Error("rendered HTML does not declare the map variable")
	}

	if !strings.Contains(html, "Tokyo") || !strings.Contains(html, "Rome") {
		t.Error("rendered HTML is missing place markers")
	}

	if !strings.Contains(html, "</body>") {
		t.Error("rendered HTML has no closing body tag")
	}
}

func TestRender_NoRows(t *testing.T) {
	if _, err := Render(nil, nil, 5); !errors.Is(err, ErrNoLocations) {
		t.Errorf("Render error = %v, want ErrNoLocations", err)
	}
}

func TestInjectAnimation(t *testing.T) {
	rows := testRows()
	segments := BuildSegments(rows, &stubDriver{})

	html, err := Render(rows, segments, 5)
	if err != nil {
		t.Fatalf("Render returned unexpected error: %v", err)
	}

	injected, err := InjectAnimation(html, segments, MapVar)
	if err != nil {
		t.Fatalf("InjectAnimation returned unexpected error: %v", err)
	}

	idx := strings.LastIndex(html, "</body>")

	// Everything before the splice point and the closing tail must
	// survive byte-exact.
	if injected[:idx] != html[:idx] {
		t.Error("bytes before the splice point changed")
	}

	if !strings.HasSuffix(injected, html[idx:]) {
		t.Error("bytes after the splice point changed")
	}

	if !strings.Contains(injected, "var segments = [{") {
		t.Error("segment data literal missing from injected script")
	}

	if strings.Count(injected, "</body>") != 1 {
		t.Error("injection duplicated the closing body tag")
	}
}

func TestInjectAnimation_NoSegments(t *testing.T) {
	rows := testRows()[:1]
	segments := BuildSegments(rows, &stubDriver{})

	html, err := Render(rows, segments, 5)
	if err != nil {
		t.Fatalf("Render returned unexpected error: %v", err)
	}

	injected, err := InjectAnimation(html, segments, MapVar)
	if err != nil {
		t.Fatalf("InjectAnimation returned unexpected error: %v", err)
	}

	if strings.Contains(injected, "var segments = null;") {
		t.Error("segment data literal is null, want an empty array")
	}

	if !strings.Contains(injected, "var segments = [];") {
		t.Error("segment data literal missing empty array for a single stop")
	}
}

func TestInjectAnimation_NoBodyTag(t *testing.T) {
	if _, err := InjectAnimation("<html></html>", nil, MapVar); !errors.Is(err, ErrNoBodyTag) {
		t.Errorf("InjectAnimation error = %v, want ErrNoBodyTag", err)
	}
}
