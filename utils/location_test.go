package utils

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{"same point", 10, 10, 10, 10, 0, 0.001},
		{"paris to london", 48.8566, 2.3522, 51.5074, -0.1278, 343.5, 2},
		{"one degree of latitude", 0, 0, 1, 0, 111.19, 0.5},
		{"antipodes", 0, 0, 0, 180, 20015, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("expected ~%.1f km, got %.1f km", tt.wantKm, got)
			}
		})
	}
}

func TestWithinRadius(t *testing.T) {
	// (10.01, 10.01) is roughly 1.5 km from (10, 10).
	if !WithinRadius(10, 10, 10.01, 10.01, 5) {
		t.Error("expected point inside 5 km radius")
	}
	if WithinRadius(10, 10, 11, 11, 5) {
		t.Error("expected point outside 5 km radius")
	}
	if !WithinRadius(10, 10, 10, 10, 0) {
		t.Error("a point is within a zero radius of itself")
	}
}

func TestIsLocationValid(t *testing.T) {
	valid := [][2]float64{{0, 0}, {90, 180}, {-90, -180}, {45.5, -122.6}}
	for _, c := range valid {
		if !IsLocationValid(c[0], c[1]) {
			t.Errorf("expected (%v, %v) valid", c[0], c[1])
		}
	}

	invalid := [][2]float64{{91, 0}, {-91, 0}, {0, 181}, {0, -181}}
	for _, c := range invalid {
		if IsLocationValid(c[0], c[1]) {
			t.Errorf("expected (%v, %v) invalid", c[0], c[1])
		}
	}
}
