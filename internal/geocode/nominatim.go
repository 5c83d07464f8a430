// Package geocode resolves place names to coordinates.
package geocode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"triptools/internal/config"
	"triptools/internal/models"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Result is one resolved place.
type Result struct {
	Coord   models.LatLng
	Address string
}

// Geocoder resolves a free-text place name. A nil result with a nil
// error means the provider found nothing.
type Geocoder interface {
	Geocode(place string) (*Result, error)
}

// Nominatim is a Geocoder backed by the Nominatim search API. It
// enforces a minimum delay between consecutive requests and retries
// transient failures with a fixed wait, so a batch of lookups stays
// within the provider's usage policy.
type Nominatim struct {
	client    *http.Client
	endpoint  string
	userAgent string
	minDelay  time.Duration
	errorWait time.Duration
	attempts  int
	lastCall  time.Time
	sleep     func(time.Duration)
}

// NewNominatim creates a geocoder from the geocoder config section.
func NewNominatim(cfg *config.GeocoderConfig) *Nominatim {
	return &Nominatim{
		client:    &http.Client{Timeout: cfg.Timeout()},
		endpoint:  cfg.Endpoint,
		userAgent: cfg.UserAgent,
		minDelay:  cfg.MinDelay(),
		errorWait: cfg.ErrorWait(),
		attempts:  cfg.MaxAttempts,
		sleep:     time.Sleep,
	}
}

// nominatimPlace is one entry of the provider's search response.
// Coordinates arrive as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves one place name. An empty provider result is
// (nil, nil); transport errors and non-200 responses are retried up to
// the configured attempt count before the error is returned.
func (n *Nominatim) Geocode(place string) (*Result, error) {
	n.throttle()

	query := url.Values{}
	query.Set("q", place)
	query.Set("format", "json")
	query.Set("limit", "1")

	requestURL := n.endpoint + "/search?" + query.Encode()

	var lastErr error

	for attempt := 1; attempt <= n.attempts; attempt++ {
		if attempt > 1 && n.errorWait > 0 {
			n.sleep(n.errorWait)
		}

		body, err := n.fetch(requestURL)
		if err != nil {
			lastErr = fmt.Errorf("geocode request failed (attempt %d/%d): %w", attempt, n.attempts, err)

			continue
		}

		var places []nominatimPlace
		if err := json.Unmarshal(body, &places); err != nil {
			lastErr = fmt.Errorf("failed to decode geocode response: %w", err)

			continue
		}

		if len(places) == 0 {
			return nil, nil
		}

		return parsePlace(places[0])
	}

	return nil, lastErr
}

func (n *Nominatim) fetch(requestURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// throttle sleeps until the minimum interval since the previous request
// has elapsed. The pacing is deliberate serialization, not an
// optimization target.
func (n *Nominatim) throttle() {
	if !n.lastCall.IsZero() {
		if wait := n.minDelay - time.Since(n.lastCall); wait > 0 {
			n.sleep(wait)
		}
	}

	n.lastCall = time.Now()
}

func parsePlace(p nominatimPlace) (*Result, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", p.Lat, err)
	}

	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", p.Lon, err)
	}

	return &Result{
		Coord:   models.LatLng{Lat: lat, Lng: lng},
		Address: p.DisplayName,
	}, nil
}
