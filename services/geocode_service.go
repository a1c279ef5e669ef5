package services

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/foodos-payload/frituurapp/config"
)

// GeocodeService resolves street addresses to coordinates through the
// mapping provider and measures the straight-line distance to a shop.
type GeocodeService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGeocodeService(cfg *config.Config) *GeocodeService {
	return &GeocodeService{
		apiKey:  cfg.GeocodeAPIKey,
		baseURL: cfg.GeocodeBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type GeocodeResult struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	DistanceKm float64 `json:"distance_km"`
}

// Lookup resolves an address to lat/lng.
func (g *GeocodeService) Lookup(address string) (*GeocodeResult, error) {
	endpoint := fmt.Sprintf("%s/v1/geocode?address=%s&key=%s",
		g.baseURL, url.QueryEscape(address), url.QueryEscape(g.apiKey))

	resp, err := g.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode provider returned %d: %s", resp.StatusCode, string(raw))
	}

	var out struct {
		Results []struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"results"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if len(out.Results) == 0 {
		return nil, fmt.Errorf("no geocode result for address")
	}

	return &GeocodeResult{Lat: out.Results[0].Lat, Lng: out.Results[0].Lng}, nil
}

// DistanceFrom resolves an address and fills in the great-circle distance
// from the given origin.
func (g *GeocodeService) DistanceFrom(originLat, originLng float64, address string) (*GeocodeResult, error) {
	result, err := g.Lookup(address)
	if err != nil {
		return nil, err
	}
	result.DistanceKm = HaversineKm(originLat, originLng, result.Lat, result.Lng)
	return result, nil
}

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0

	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
