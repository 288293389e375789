package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"eventhorizon/internal/domain"
)

type httpGeocoder struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPGeocoder returns a Geocoder that calls a positionstack-compatible
// forward geocoding endpoint.
func NewHTTPGeocoder(client *http.Client, baseURL, apiKey string) domain.Geocoder {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpGeocoder{client: client, baseURL: baseURL, apiKey: apiKey}
}

type geocodeResponse struct {
	Data []struct {
		Latitude   float64 `json:"latitude"`
		Longitude  float64 `json:"longitude"`
		Confidence float64 `json:"confidence"`
	} `json:"data"`
}

func (g *httpGeocoder) Geocode(ctx context.Context, address string) ([]domain.GeocodeCandidate, error) {
	q := url.Values{}
	q.Set("access_key", g.apiKey)
	q.Set("query", address)
	reqURL := fmt.Sprintf("%s/v1/forward?%s", g.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from geocoder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder api returned status: %d", resp.StatusCode)
	}

	var data geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}

	candidates := make([]domain.GeocodeCandidate, 0, len(data.Data))
	for _, d := range data.Data {
		candidates = append(candidates, domain.GeocodeCandidate{
			Lat:        d.Latitude,
			Lng:        d.Longitude,
			Confidence: d.Confidence,
		})
	}
	return candidates, nil
}
