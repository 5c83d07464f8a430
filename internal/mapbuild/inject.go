package mapbuild

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"triptools/internal/models"
)

// ErrNoBodyTag indicates the document has no closing body marker to
// splice the animation into.
var ErrNoBodyTag = errors.New("no closing body tag in HTML")

// Animation timing. Each segment is resampled to a fixed number of
// points and stepped on a fixed tick, with a pause between segments.
const (
	animSteps       = 100
	animTickMs      = 50
	animSegmentRest = 500
)

// animationScript is the fixed client-side animation block. It expects
// two %s verbs: the segment data literal and the map variable name.
const animationScript = `<script>
(function () {
    var segments = %s;
    var map = %s;
    if (!segments.length) { return; }

    var button = document.createElement('button');
    button.textContent = '▶ Play';
    button.style.cssText = 'position:absolute;top:10px;right:10px;z-index:1000;padding:8px 14px;font-size:14px;cursor:pointer;border-radius:4px;border:1px solid #888;background:#fff;';
    document.body.appendChild(button);

    var mover = L.circleMarker(segments[0].path[0], {
        radius: 8, color: '#fff', weight: 2, fillColor: '#f39c12', fillOpacity: 1
    }).addTo(map);

    function pointAt(path, t) {
        if (path.length === 1) { return path[0]; }
        var f = t * (path.length - 1);
        var i = Math.min(Math.floor(f), path.length - 2);
        var r = f - i;
        return {
            lat: path[i].lat + (path[i + 1].lat - path[i].lat) * r,
            lng: path[i].lng + (path[i + 1].lng - path[i].lng) * r
        };
    }

    var playing = false;
    var segIdx = 0;
    var step = 0;
    var timer = null;

    function tick() {
        if (!playing) { return; }
        if (step > %d) {
            segIdx += 1;
            step = 0;
            if (segIdx >= segments.length) {
                segIdx = 0;
                playing = false;
                button.textContent = '▶ Play';
                return;
            }
            timer = setTimeout(tick, %d);
            return;
        }
        var p = pointAt(segments[segIdx].path, step / %d);
        mover.setLatLng([p.lat, p.lng]);
        step += 1;
        timer = setTimeout(tick, %d);
    }

    button.addEventListener('click', function () {
        playing = !playing;
        button.textContent = playing ? '⏸ Pause' : '▶ Play';
        if (playing) { tick(); } else if (timer) { clearTimeout(timer); }
    });
})();
</script>
`

// InjectAnimation splices the segment data and the play/pause animation
// script immediately before the document's last closing body tag. The
// splice is byte-exact string substitution; the surrounding HTML is not
// parsed or reflowed.
func InjectAnimation(html string, segments []models.Segment, mapVar string) (string, error) {
	idx := strings.LastIndex(html, "</body>")
	if idx < 0 {
		return "", ErrNoBodyTag
	}

	// A single-stop trip has no segments; keep the data literal an array
	// so the script's length guard works instead of throwing on null.
	if segments == nil {
		segments = []models.Segment{}
	}

	blob, err := json.Marshal(segments)
	if err != nil {
		return "", fmt.Errorf("failed to marshal segments: %w", err)
	}

	script := fmt.Sprintf(animationScript,
		string(blob), mapVar, animSteps, animSegmentRest, animSteps, animTickMs)

	return html[:idx] + script + html[idx:], nil
}
