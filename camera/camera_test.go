package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func near(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < 0.01 && math.Abs(a.Y-b.Y) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 800, 8)

	// Short axis is 800 px across 16 world units
	if cam.Zoom != 50 {
		t.Errorf("expected zoom 50, got %f", cam.Zoom)
	}
	if cam.MinZoom != 12.5 || cam.MaxZoom != 200 {
		t.Errorf("zoom limits = [%f, %f], want [12.5, 200]", cam.MinZoom, cam.MaxZoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 800, 8)
	cam.Follow(r2.Vec{X: 10, Y: -3}, 37)

	if s := cam.WorldToScreen(r2.Vec{X: 10, Y: -3}); !near(s, r2.Vec{X: 640, Y: 400}) {
		t.Errorf("expected screen center (640, 400), got %v", s)
	}
}

func TestRotationPointsHeadingUp(t *testing.T) {
	tests := []struct {
		name    string
		heading float64 // degrees
	}{
		{"east", 0},
		{"north", 90},
		{"west", 180},
		{"diagonal", -45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(1280, 800, 8)
			rad := tt.heading * math.Pi / 180
			cam.Follow(r2.Vec{}, -(tt.heading + 90))

			ahead := r2.Vec{X: math.Cos(rad), Y: math.Sin(rad)}
			s := cam.WorldToScreen(ahead)
			if !near(s, r2.Vec{X: 640, Y: 400 - cam.Zoom}) {
				t.Errorf("one unit ahead maps to %v, want straight up from centre", s)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 800, 8)
	cam.Follow(r2.Vec{X: 0, Y: 32.5}, -123)

	testCases := []r2.Vec{
		{X: 640, Y: 400},  // center
		{X: 100, Y: 100},  // top-left
		{X: 1200, Y: 700}, // near bottom-right
	}

	for _, tc := range testCases {
		w := cam.ScreenToWorld(tc)
		if s := cam.WorldToScreen(w); !near(s, tc) {
			t.Errorf("roundtrip failed: %v -> %v -> %v", tc, w, s)
		}
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 800, 8)

	cam.SetZoom(1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.ZoomBy(1000)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}

	cam.Reset()
	if cam.Zoom != 50 {
		t.Errorf("expected reset zoom 50, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 800, 8)
	cam.Follow(r2.Vec{X: 5, Y: 5}, 90)

	if !cam.IsVisible(r2.Vec{X: 5, Y: 5}, 0.5) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(r2.Vec{X: 50, Y: 5}, 0.5) {
		t.Error("far point should not be visible")
	}
	// Half-diagonal is ~15.1 units at zoom 50
	if !cam.IsVisible(r2.Vec{X: 5, Y: 21}, 1) {
		t.Error("edge point with radius should be visible")
	}
}
