package services

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{
			name: "same point",
			lat1: 50.8467, lng1: 4.3525, lat2: 50.8467, lng2: 4.3525,
			wantKm: 0, tolerance: 0.001,
		},
		{
			name: "brussels to antwerp",
			lat1: 50.8467, lng1: 4.3525, lat2: 51.2194, lng2: 4.4025,
			wantKm: 41.6, tolerance: 1.0,
		},
		{
			name: "brussels to paris",
			lat1: 50.8467, lng1: 4.3525, lat2: 48.8566, lng2: 2.3522,
			wantKm: 264, tolerance: 5.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %v, want %v +/- %v", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestGeocodeLookup(t *testing.T) {
	tests := []struct {
		name           string
		mockResponse   string
		mockStatusCode int
		wantLat        float64
		wantErr        bool
	}{
		{
			name:           "single result",
			mockResponse:   `{"results":[{"lat":50.85,"lng":4.35}]}`,
			mockStatusCode: http.StatusOK,
			wantLat:        50.85,
		},
		{
			name:           "no results",
			mockResponse:   `{"results":[]}`,
			mockStatusCode: http.StatusOK,
			wantErr:        true,
		},
		{
			name:           "provider error",
			mockResponse:   `{"error":"quota exceeded"}`,
			mockStatusCode: http.StatusTooManyRequests,
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.mockStatusCode)
				fmt.Fprint(w, tt.mockResponse)
			}))
			defer srv.Close()

			g := &GeocodeService{
				apiKey:     "test-key",
				baseURL:    srv.URL,
				httpClient: srv.Client(),
			}

			result, err := g.Lookup("Grote Markt 1, Brussels")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && result.Lat != tt.wantLat {
				t.Errorf("Lookup() lat = %v, want %v", result.Lat, tt.wantLat)
			}
		})
	}
}

func TestDistanceFrom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[{"lat":51.2194,"lng":4.4025}]}`)
	}))
	defer srv.Close()

	g := &GeocodeService{
		apiKey:     "test-key",
		baseURL:    srv.URL,
		httpClient: srv.Client(),
	}

	result, err := g.DistanceFrom(50.8467, 4.3525, "Antwerp")
	if err != nil {
		t.Fatalf("DistanceFrom() error = %v", err)
	}
	if math.Abs(result.DistanceKm-41.6) > 1.0 {
		t.Errorf("DistanceFrom() km = %v, want ~41.6", result.DistanceKm)
	}
}
