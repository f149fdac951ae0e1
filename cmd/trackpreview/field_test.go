package main

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/config"
	"github.com/pthm-cable/donuts/systems"
)

func TestFrictionGridSeesRoadAndGravel(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	track := systems.NewTrack(cfg.Track, 1)

	const size = 64
	grid := make([]float64, size*size)
	frictionGrid(grid, size, track, cfg.Track.Radius+cfg.Track.Width)

	lo, hi, mean := gridStats(grid)
	if hi != cfg.Track.RoadFriction {
		t.Errorf("max friction = %v, want road friction %v", hi, cfg.Track.RoadFriction)
	}
	if lo >= cfg.Track.RoadFriction {
		t.Errorf("min friction = %v, want gravel below the road", lo)
	}
	if mean <= lo || mean >= hi {
		t.Errorf("mean %v outside (%v, %v)", mean, lo, hi)
	}
}

func TestFrictionColorEnds(t *testing.T) {
	if c := frictionColor(0, 0, 1); c.R != 214 || c.G != 190 || c.B != 140 {
		t.Errorf("low friction colour = %v, want gravel", c)
	}
	if c := frictionColor(1, 0, 1); c.R != 60 || c.G != 60 || c.B != 66 {
		t.Errorf("high friction colour = %v, want asphalt", c)
	}
	// Flat field does not divide by zero
	if c := frictionColor(0.9, 0.9, 0.9); c.A != 255 {
		t.Errorf("flat field colour = %v", c)
	}
}

func TestWorldToPreview(t *testing.T) {
	got := worldToPreview(r2.Vec{X: 10, Y: -10}, 10, 5, 5, 100)
	if !scalar.EqualWithinAbs(got.X, 105, 1e-12) || !scalar.EqualWithinAbs(got.Y, 5, 1e-12) {
		t.Errorf("worldToPreview = %v, want (105, 5)", got)
	}
}

func TestTrackYAML(t *testing.T) {
	out := trackYAML(config.TrackConfig{Radius: 35, Width: 10})
	for _, want := range []string{"track:", "radius: 35", "width: 10"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q:\n%s", want, out)
		}
	}
}
