package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
)

const metersPerMile = 1609.34

// MapsClient implements Estimator and Geocoder against the Google Maps
// Directions and Geocoding web APIs. The client is safe for concurrent use.
type MapsClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewMapsClient builds a MapsClient for the given API key.
func NewMapsClient(apiKey string) (*MapsClient, error) {
	if apiKey == "" {
		return nil, errors.New("maps api key is empty")
	}
	return &MapsClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    "https://maps.googleapis.com",
	}, nil
}

// directionsResponse covers the subset of the Directions API payload we read.
type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Distance struct {
				Value float64 `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"` // seconds
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// Estimate queries the Directions API for the driving leg between two
// waypoints, converting meters to miles and seconds to minutes.
func (c *MapsClient) Estimate(ctx context.Context, origin, destination domain.Waypoint) (Leg, error) {
	q := url.Values{}
	q.Set("origin", fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude))
	q.Set("destination", fmt.Sprintf("%f,%f", destination.Latitude, destination.Longitude))
	q.Set("key", c.apiKey)

	var resp directionsResponse
	if err := c.getJSON(ctx, "/maps/api/directions/json", q, &resp); err != nil {
		return Leg{}, fmt.Errorf("route.MapsClient.Estimate: %w", err)
	}
	if resp.Status != "OK" {
		return Leg{}, fmt.Errorf("route.MapsClient.Estimate: directions status %s: %s", resp.Status, resp.ErrorMessage)
	}
	if len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		return Leg{}, errors.New("route.MapsClient.Estimate: directions response has no legs")
	}

	leg := resp.Routes[0].Legs[0]
	return Leg{
		DistanceMiles:   leg.Distance.Value / metersPerMile,
		DurationMinutes: leg.Duration.Value / 60,
	}, nil
}

// geocodeResponse covers the subset of the Geocoding API payload we read.
type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves an address to coordinates via the Geocoding API.
func (c *MapsClient) Geocode(ctx context.Context, address string) (lat, lon float64, err error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", q, &resp); err != nil {
		return 0, 0, fmt.Errorf("route.MapsClient.Geocode: %w", err)
	}
	if resp.Status != "OK" {
		return 0, 0, fmt.Errorf("route.MapsClient.Geocode: geocode status %s: %s", resp.Status, resp.ErrorMessage)
	}
	if len(resp.Results) == 0 {
		return 0, 0, errors.New("route.MapsClient.Geocode: geocode response has no results")
	}

	loc := resp.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

// getJSON issues a GET against path with query q and decodes the body into out.
func (c *MapsClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
