// utils/geocoder.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
)

// GeoPoint is a resolved coordinate pair.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// NominatimGeocoder resolves free-text addresses against the OpenStreetMap
// Nominatim search API. No API key, but Nominatim requires an identifying
// User-Agent.
type NominatimGeocoder struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

func NewNominatimGeocoder() *NominatimGeocoder {
	baseURL := os.Getenv("NOMINATIM_BASE_URL")
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	return &NominatimGeocoder{
		BaseURL:    baseURL,
		UserAgent:  "Constellation/1.0",
		HTTPClient: HTTPClient,
	}
}

// Geocode returns the best match for the address, (nil, nil) when Nominatim
// has no result, and an error on transport or decode failure.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (*GeoPoint, error) {
	log.Printf("[Geocoding] Attempting to geocode: %s", address)

	u, err := url.Parse(fmt.Sprintf("%s/search", g.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse geocoder base URL: %w", err)
	}
	q := u.Query()
	q.Set("format", "json")
	q.Set("q", address)
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}

	if len(results) == 0 {
		log.Printf("[Geocoding] No results found for: %s", address)
		return nil, nil
	}

	var point GeoPoint
	if point.Latitude, err = strconv.ParseFloat(results[0].Lat, 64); err != nil {
		return nil, fmt.Errorf("bad latitude %q: %w", results[0].Lat, err)
	}
	if point.Longitude, err = strconv.ParseFloat(results[0].Lon, 64); err != nil {
		return nil, fmt.Errorf("bad longitude %q: %w", results[0].Lon, err)
	}

	log.Printf("[Geocoding] Success for %s: %f, %f", address, point.Latitude, point.Longitude)
	return &point, nil
}
