package mapbuild

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"triptools/internal/models"
)

// MapVar is the JavaScript identifier of the Leaflet map object in the
// generated document. The injector receives it explicitly instead of
// pattern-matching the generated HTML.
const MapVar = "tripMap"

// ErrNoLocations indicates there is nothing to render.
var ErrNoLocations = errors.New("no valid locations to render")

// Marker pin colors.
const (
	colorFirst    = "#d63e2a"
	colorLast     = "#72b026"
	colorInterior = "#38aadd"
)

// Segment line styles.
const (
	colorCar    = "#1e88e5"
	colorFlight = "#8e24aa"
)

// marker is the template model for one stop pin.
type marker struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label int     `json:"label"`
	Color string  `json:"color"`
	Popup string  `json:"popup"`
	Tip   string  `json:"tip"`
}

// line is the template model for one static polyline.
type line struct {
	Path   models.Path `json:"path"`
	Color  string      `json:"color"`
	Dashed bool        `json:"dashed"`
}

type mapData struct {
	CenterLat float64  `json:"centerLat"`
	CenterLng float64  `json:"centerLng"`
	Zoom      int      `json:"zoom"`
	Markers   []marker `json:"markers"`
	Lines     []line   `json:"lines"`
}

var pageTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html, body, #map { height: 100%; margin: 0; }
.stop-pin { border-radius: 50%; border: 2px solid #fff; color: #fff; font-weight: bold; font-size: 11px; text-align: center; line-height: 22px; box-shadow: 0 1px 4px rgba(0,0,0,0.4); }
</style>
</head>
<body>
<div id="map"></div>
<script>
var {{.MapVar}} = L.map('map').setView([{{.CenterLat}}, {{.CenterLng}}], {{.Zoom}});
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
    attribution: '&copy; OpenStreetMap contributors'
}).addTo({{.MapVar}});
var tripData = {{.Data}};
tripData.lines.forEach(function (line) {
    L.polyline(line.path.map(function (p) { return [p.lat, p.lng]; }), {
        color: line.color,
        weight: 3,
        opacity: 0.7,
        dashArray: line.dashed ? '6 8' : null
    }).addTo({{.MapVar}});
});
tripData.markers.forEach(function (m) {
    L.marker([m.lat, m.lng], {
        icon: L.divIcon({
            className: '',
            html: '<div class="stop-pin" style="background:' + m.color + ';width:22px;height:22px;">' + m.label + '</div>',
            iconSize: [22, 22],
            iconAnchor: [11, 11]
        })
    }).addTo({{.MapVar}}).bindPopup(m.popup).bindTooltip(m.tip);
});
</script>
</body>
</html>
`))

type pageModel struct {
	Title     string
	MapVar    template.JS
	CenterLat float64
	CenterLng float64
	Zoom      int
	Data      template.JS
}

// Render produces the self-contained Leaflet document: tile layer,
// numbered colored pins (first red, last green, interior blue), and one
// static polyline per segment.
func Render(rows []models.Row, segments []models.Segment, zoom int) (string, error) {
	if len(rows) == 0 {
		return "", ErrNoLocations
	}

	data := mapData{Zoom: zoom}

	for i, row := range rows {
		color := colorInterior

		switch i {
		case 0:
			color = colorFirst
		case len(rows) - 1:
			color = colorLast
		}

		data.CenterLat += row.Coord.Lat
		data.CenterLng += row.Coord.Lng

		popup := fmt.Sprintf("<b>%s</b><br>%s", template.HTMLEscapeString(row.Place), row.DateString())
		if row.Address != "" {
			popup += "<br><small>" + template.HTMLEscapeString(row.Address) + "</small>"
		}

		data.Markers = append(data.Markers, marker{
			Lat:   row.Coord.Lat,
			Lng:   row.Coord.Lng,
			Label: i + 1,
			Color: color,
			Popup: popup,
			Tip:   fmt.Sprintf("%s (%s)", row.Place, row.DateString()),
		})
	}

	data.CenterLat /= float64(len(rows))
	data.CenterLng /= float64(len(rows))

	for _, seg := range segments {
		color := colorCar
		if seg.Mode == models.ModeFlight {
			color = colorFlight
		}

		data.Lines = append(data.Lines, line{
			Path:   seg.Path,
			Color:  color,
			Dashed: seg.Dashed,
		})
	}

	blob, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal map data: %w", err)
	}

	var sb strings.Builder

	err = pageTemplate.Execute(&sb, pageModel{
		Title:     "Trip Map",
		MapVar:    template.JS(MapVar),
		CenterLat: data.CenterLat,
		CenterLng: data.CenterLng,
		Zoom:      zoom,
		Data:      template.JS(blob),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render map template: %w", err)
	}

	return sb.String(), nil
}
