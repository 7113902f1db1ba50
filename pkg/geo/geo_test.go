package geo

import (
	"math"
	"strconv"
	"strings"
	"testing"
)

// TestBoundsString tests wire formatting of bounding rectangles.
func TestBoundsString(t *testing.T) {
	t.Run("Zone rectangle", func(t *testing.T) {
		b := Bounds{TopLeftY: 75.78, BottomRightY: -75.78, TopLeftX: -427.56, BottomRightX: 427.56}

		expected := "75.78,-75.78,-427.56,427.56"
		if b.String() != expected {
			t.Errorf("Expected %q, got %q", expected, b.String())
		}
	})

	t.Run("Round trip", func(t *testing.T) {
		b := Bounds{TopLeftY: 52.5200, BottomRightY: 48.1351, TopLeftX: 2.3522, BottomRightX: 13.4050}

		parts := strings.Split(b.String(), ",")
		if len(parts) != 4 {
			t.Fatalf("Expected 4 fields, got %d", len(parts))
		}

		values := make([]float64, 4)
		for i, part := range parts {
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				t.Fatalf("Field %d did not parse: %v", i, err)
			}
			values[i] = v
		}

		original := []float64{b.TopLeftY, b.BottomRightY, b.TopLeftX, b.BottomRightX}
		for i := range values {
			if math.Abs(values[i]-original[i]) > 1e-9 {
				t.Errorf("Field %d: expected %f, got %f", i, original[i], values[i])
			}
		}
	})
}

// TestBoundsAroundPoint tests the point-plus-radius rectangle.
func TestBoundsAroundPoint(t *testing.T) {
	t.Run("Centered at origin", func(t *testing.T) {
		b := BoundsAroundPoint(0, 0, 100000)

		// The rectangle must be symmetric about the origin.
		if math.Abs(b.TopLeftY+b.BottomRightY) > 1e-9 {
			t.Errorf("Latitude edges not symmetric: %f vs %f", b.TopLeftY, b.BottomRightY)
		}
		if math.Abs(b.TopLeftX+b.BottomRightX) > 1e-9 {
			t.Errorf("Longitude edges not symmetric: %f vs %f", b.TopLeftX, b.BottomRightX)
		}
		if b.TopLeftY <= 0 {
			t.Errorf("Expected northern edge above the point, got %f", b.TopLeftY)
		}
		if b.TopLeftX >= 0 {
			t.Errorf("Expected western edge below the point, got %f", b.TopLeftX)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		a := BoundsAroundPoint(52.567967, 13.282644, 2000)
		b := BoundsAroundPoint(52.567967, 13.282644, 2000)

		if a != b {
			t.Errorf("Expected identical rectangles, got %v and %v", a, b)
		}
	})

	t.Run("Radius sign ignored", func(t *testing.T) {
		a := BoundsAroundPoint(10, 20, 5000)
		b := BoundsAroundPoint(10, 20, -5000)

		if a != b {
			t.Errorf("Expected |radius| handling, got %v and %v", a, b)
		}
	})

	t.Run("Scales with radius", func(t *testing.T) {
		small := BoundsAroundPoint(0, 0, 1000)
		large := BoundsAroundPoint(0, 0, 100000)

		if large.TopLeftY <= small.TopLeftY {
			t.Errorf("Expected larger radius to widen the rectangle: %f vs %f",
				large.TopLeftY, small.TopLeftY)
		}
	})
}

// TestDistanceTo tests the great-circle distance.
func TestDistanceTo(t *testing.T) {
	tests := []struct {
		name       string
		from       Position
		to         Position
		expectedKm float64
		tolerance  float64
	}{
		{"Same point", Position{10, 10}, Position{10, 10}, 0, 0.001},
		{"One degree of latitude", Position{0, 0}, Position{1, 0}, 111.19, 0.5},
		{"Equator quarter turn", Position{0, 0}, Position{0, 90}, 10007.5, 5},
		{"LHR to JFK", Position{51.4775, -0.4614}, Position{40.6413, -73.7781}, 5540, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.DistanceTo(tt.to)
			if math.Abs(got-tt.expectedKm) > tt.tolerance {
				t.Errorf("Expected ~%f km, got %f km", tt.expectedKm, got)
			}
		})
	}
}
