package route

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"triptools/internal/config"
	"triptools/internal/models"
)

// OpenRouteService is a Router backed by the openrouteservice directions
// API. It needs an API key.
type OpenRouteService struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// NewOpenRouteService creates an ORS router from the routing config
// section and an API key.
func NewOpenRouteService(cfg *config.RoutingConfig, apiKey string) *OpenRouteService {
	return &OpenRouteService{
		client:   &http.Client{Timeout: cfg.Timeout()},
		endpoint: cfg.ORSEndpoint,
		apiKey:   apiKey,
	}
}

type orsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type orsResponse struct {
	Routes []struct {
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// Route fetches a driving path. ORS takes lng,lat pairs in the request
// body and returns an encoded polyline geometry.
func (o *OpenRouteService) Route(from, to models.LatLng) (models.Path, error) {
	payload, err := json.Marshal(orsRequest{
		Coordinates: [][2]float64{{from.Lng, from.Lat}, {to.Lng, to.Lat}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	requestURL := o.endpoint + "/v2/directions/driving-car"

	req, err := http.NewRequest(http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ORS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ORS response: %w", err)
	}

	var parsed orsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode ORS response: %w", err)
	}

	if len(parsed.Routes) == 0 {
		return nil, ErrNoRoute
	}

	return decodeGeometry(parsed.Routes[0].Geometry)
}
