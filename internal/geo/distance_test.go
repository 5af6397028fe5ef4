package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKm                 float64
		tolKm                  float64
	}{
		{"same point", 17.6868, 74.0180, 17.6868, 74.0180, 0, 0.001},
		{"nearby station", 17.6868, 74.0180, 17.6950, 74.0250, 1.37, 0.05},
		{"pune to mumbai", 18.5204, 73.8567, 19.0760, 72.8777, 120, 5},
		{"across equator", -1.0, 10.0, 1.0, 10.0, 222.4, 1},
		{"across antimeridian", 0, 179.5, 0, -179.5, 111.2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolKm {
				t.Errorf("Distance() = %.3f km, want %.3f±%.3f km", got, tt.wantKm, tt.tolKm)
			}
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	ab := Distance(17.6868, 74.0180, 18.5204, 73.8567)
	ba := Distance(18.5204, 73.8567, 17.6868, 74.0180)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", ab, ba)
	}
}
