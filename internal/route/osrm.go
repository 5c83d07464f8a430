// Package route fetches driving paths between two coordinates.
package route

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"triptools/internal/config"
	"triptools/internal/models"

	"github.com/twpayne/go-polyline"
)

// Routing errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrNoRoute              = errors.New("no route in response")
	ErrProviderCode         = errors.New("provider returned non-Ok code")
)

// Router fetches a driving path between two points.
type Router interface {
	Route(from, to models.LatLng) (models.Path, error)
}

// OSRM is a Router backed by the keyless OSRM HTTP API.
type OSRM struct {
	client   *http.Client
	endpoint string
}

// NewOSRM creates an OSRM router from the routing config section.
func NewOSRM(cfg *config.RoutingConfig) *OSRM {
	return &OSRM{
		client:   &http.Client{Timeout: cfg.Timeout()},
		endpoint: cfg.OSRMEndpoint,
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// Route fetches a driving path. OSRM takes lng,lat pairs and returns an
// encoded polyline with overview=full.
func (o *OSRM) Route(from, to models.LatLng) (models.Path, error) {
	requestURL := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full",
		o.endpoint, from.Lng, from.Lat, to.Lng, to.Lat)

	req, err := http.NewRequest(http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OSRM request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OSRM response: %w", err)
	}

	var parsed osrmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode OSRM response: %w", err)
	}

	if parsed.Code != "Ok" {
		return nil, fmt.Errorf("%w: %s", ErrProviderCode, parsed.Code)
	}

	if len(parsed.Routes) == 0 {
		return nil, ErrNoRoute
	}

	return decodeGeometry(parsed.Routes[0].Geometry)
}

// decodeGeometry decodes a Google polyline (precision 5) into a path.
func decodeGeometry(geometry string) (models.Path, error) {
	if geometry == "" {
		return nil, ErrNoRoute
	}

	coords, _, err := polyline.DecodeCoords([]byte(geometry))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}

	path := make(models.Path, len(coords))
	for i, c := range coords {
		path[i] = models.LatLng{Lat: c[0], Lng: c[1]}
	}

	return path, nil
}
