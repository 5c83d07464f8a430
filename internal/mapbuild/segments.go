// Package mapbuild assembles trip segments and renders the HTML map.
package mapbuild

import (
	"triptools/internal/models"
)

// Driver resolves a car leg into a path, reporting whether the result is
// a degraded straight line.
type Driver interface {
	Drive(from, to models.LatLng) (path models.Path, dashed bool)
}

// BuildSegments builds one segment per adjacent pair of rows. Rows must
// already be date-sorted and coordinate-resolved. The leg's mode comes
// from the arrival row; car legs go through the driver, flight legs are
// straight dashed lines.
func BuildSegments(rows []models.Row, driver Driver) []models.Segment {
	var segments []models.Segment

	for i := 1; i < len(rows); i++ {
		from, to := rows[i-1], rows[i]

		seg := models.Segment{
			From: from.Place,
			To:   to.Place,
			Mode: to.Mode,
		}

		if to.Mode == models.ModeCar {
			seg.Path, seg.Dashed = driver.Drive(*from.Coord, *to.Coord)
		} else {
			seg.Path = models.Path{*from.Coord, *to.Coord}
			seg.Dashed = true
		}

		segments = append(segments, seg)
	}

	return segments
}
