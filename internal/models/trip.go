// Package models defines the data types shared by the cleaner and the map builder.
package models

import (
	"strings"
	"time"
)

// Mode is the transport used to reach a stop.
type Mode string

// Transport modes.
const (
	ModeCar    Mode = "car"
	ModeFlight Mode = "flight"
)

// modeSynonyms maps free-text type values to a closed vocabulary.
var modeSynonyms = map[string]Mode{
	"car":     ModeCar,
	"drive":   ModeCar,
	"driving": ModeCar,
	"flight":  ModeFlight,
	"fly":     ModeFlight,
	"airline": ModeFlight,
	"plane":   ModeFlight,
}

// ParseMode normalizes a free-text type value. Unknown or empty values
// fall back to ModeFlight.
func ParseMode(s string) Mode {
	if mode, ok := modeSynonyms[strings.ToLower(strings.TrimSpace(s))]; ok {
		return mode
	}

	return ModeFlight
}

// LatLng is a geographic coordinate (WGS 84).
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Path is an ordered sequence of coordinates.
type Path []LatLng

// Row is one trip stop after cleaning.
type Row struct {
	Date    time.Time
	RawDate string
	Place   string
	Mode    Mode
	Line    int // 1-based CSV line, header included
	Coord   *LatLng
	Address string
}

// DateString returns the canonical date form used in output files.
func (r *Row) DateString() string {
	return r.Date.Format("2006-01-02")
}

// Segment is one chronological hop between two consecutive stops.
type Segment struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Mode   Mode   `json:"mode"`
	Dashed bool   `json:"dashed"`
	Path   Path   `json:"path"`
}
