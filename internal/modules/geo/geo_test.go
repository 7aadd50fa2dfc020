package geo

import (
	"math"
	"strings"
	"testing"
)

func TestDistanceKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lon1      float64
		lat2      float64
		lon2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			lat1:      38.7223, lon1: -9.1393,
			lat2:      38.7223, lon2: -9.1393,
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "Lisbon centre to Belem (~6km)",
			lat1:      38.7223, lon1: -9.1393,
			lat2:      38.6970, lon2: -9.2033,
			wantKm:    6.2,
			tolerance: 0.5,
		},
		{
			name:      "London to Paris (~344km)",
			lat1:      51.5074, lon1: -0.1278,
			lat2:      48.8566, lon2: 2.3522,
			wantKm:    344,
			tolerance: 5,
		},
		{
			name:      "New York to Los Angeles (~3944km)",
			lat1:      40.7128, lon1: -74.0060,
			lat2:      34.0522, lon2: -118.2437,
			wantKm:    3944,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("DistanceKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	d1 := DistanceKm(38.7, -9.1, 41.1, -8.6)
	d2 := DistanceKm(41.1, -8.6, 38.7, -9.1)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("distance is not symmetric: %f vs %f", d1, d2)
	}
}

func TestOSMDeepLink(t *testing.T) {
	link := OSMDeepLink(38.7223, -9.1393, 15)
	if !strings.HasPrefix(link, "https://www.openstreetmap.org/#map=15/") {
		t.Errorf("unexpected link format: %s", link)
	}
	if !strings.Contains(link, "38.7223") || !strings.Contains(link, "-9.1393") {
		t.Errorf("link missing coordinates: %s", link)
	}
}
