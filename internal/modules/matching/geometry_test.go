package matching

import (
	"math"
	"testing"

	"smartride/internal/types"
)

// The 111 km/degree conversion is an equirectangular approximation that
// ignores latitude; the expectations below are exact in that model, not
// great-circle distances. The engine only uses these values against a
// coarse 15 km gate at moderate latitudes.
func TestPerpendicularDistanceKm(t *testing.T) {
	tests := []struct {
		name      string
		segStart  types.Point
		segEnd    types.Point
		p         types.Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:     "point on segment",
			segStart: types.Point{Lat: 0, Lng: 0},
			segEnd:   types.Point{Lat: 1, Lng: 0},
			p:        types.Point{Lat: 0.5, Lng: 0},
			wantKm:   0, tolerance: 1e-9,
		},
		{
			name:     "perpendicular offset from midpoint",
			segStart: types.Point{Lat: 0, Lng: 0},
			segEnd:   types.Point{Lat: 0, Lng: 1},
			p:        types.Point{Lat: 0.05, Lng: 0.5},
			wantKm:   5.55, tolerance: 1e-9,
		},
		{
			name:     "clamped before segment start",
			segStart: types.Point{Lat: 0, Lng: 0},
			segEnd:   types.Point{Lat: 0, Lng: 1},
			p:        types.Point{Lat: 0.03, Lng: -0.04},
			wantKm:   0.05 * 111.0, tolerance: 1e-9,
		},
		{
			name:     "clamped past segment end",
			segStart: types.Point{Lat: 0, Lng: 0},
			segEnd:   types.Point{Lat: 0, Lng: 1},
			p:        types.Point{Lat: 0.03, Lng: 1.04},
			wantKm:   0.05 * 111.0, tolerance: 1e-9,
		},
		{
			name:     "zero-length segment falls back to start distance",
			segStart: types.Point{Lat: 0.5, Lng: 0.5},
			segEnd:   types.Point{Lat: 0.5, Lng: 0.5},
			p:        types.Point{Lat: 0.6, Lng: 0.5},
			wantKm:   0.1 * 111.0, tolerance: 1e-6,
		},
		{
			name:     "endpoint is closest point",
			segStart: types.Point{Lat: 0, Lng: 0},
			segEnd:   types.Point{Lat: 1, Lng: 1},
			p:        types.Point{Lat: 1.1, Lng: 1.1},
			wantKm:   math.Sqrt(0.02) * 111.0, tolerance: 1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerpendicularDistanceKm(tt.segStart, tt.segEnd, tt.p)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("PerpendicularDistanceKm() = %v, want %v (±%v)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestPerpendicularDistanceKm_Symmetry(t *testing.T) {
	a := types.Point{Lat: 0.2, Lng: 0.1}
	b := types.Point{Lat: 0.9, Lng: 0.8}
	p := types.Point{Lat: 0.4, Lng: 0.7}

	d1 := PerpendicularDistanceKm(a, b, p)
	d2 := PerpendicularDistanceKm(b, a, p)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("segment direction changed the distance: %v vs %v", d1, d2)
	}
}
