package systems

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/components"
)

func TestTrackFriction(t *testing.T) {
	cfg := testConfig(t).Track
	track := NewTrack(cfg, 1)

	tests := []struct {
		name   string
		pos    r2.Vec
		onRoad bool
	}{
		{"centre line", r2.Vec{Y: track.MidRadius()}, true},
		{"inner edge", r2.Vec{X: track.InnerRadius()}, true},
		{"outer edge", r2.Vec{X: -cfg.Radius}, true},
		{"infield", r2.Vec{X: 3, Y: 4}, false},
		{"outside ring", r2.Vec{X: cfg.Radius + 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := track.OnRoad(tt.pos); got != tt.onRoad {
				t.Fatalf("OnRoad(%v) = %v, want %v", tt.pos, got, tt.onRoad)
			}
			f := track.Friction(tt.pos)
			if tt.onRoad && f != cfg.RoadFriction {
				t.Errorf("road friction = %v, want %v", f, cfg.RoadFriction)
			}
			if !tt.onRoad {
				lo := cfg.OffroadFriction - cfg.GravelVariation
				hi := cfg.OffroadFriction + cfg.GravelVariation
				if f < lo-1e-9 || f > hi+1e-9 {
					t.Errorf("gravel friction = %v, want within [%v, %v]", f, lo, hi)
				}
			}
		})
	}
}

func TestTrackFrictionDeterministic(t *testing.T) {
	cfg := testConfig(t).Track
	a, b := NewTrack(cfg, 42), NewTrack(cfg, 42)
	p := r2.Vec{X: 7.3, Y: -2.1}

	if a.Friction(p) != b.Friction(p) {
		t.Error("same seed gave different gravel friction")
	}
}

func TestTrackVehicleSpawnOnRoad(t *testing.T) {
	track := NewTrack(testConfig(t).Track, 1)
	spawn := track.VehicleSpawn()

	if spawn != (r2.Vec{Y: 32.5}) {
		t.Errorf("spawn = %v, want (0, 32.5)", spawn)
	}
	if !track.OnRoad(spawn) {
		t.Error("vehicle spawns off-road")
	}
}

func TestTrackObjectSpawns(t *testing.T) {
	track := NewTrack(testConfig(t).Track, 1)
	rng := rand.New(rand.NewSource(7))
	spawn := track.VehicleSpawn()

	barrels := track.ObjectSpawns(components.KindBarrel, 50, rng)
	rocks := track.ObjectSpawns(components.KindRock, 50, rng)

	if len(barrels) != 50 || len(rocks) != 50 {
		t.Fatalf("got %d barrels and %d rocks, want 50 each", len(barrels), len(rocks))
	}
	for _, p := range barrels {
		if !track.OnRoad(p) {
			t.Errorf("barrel spawned off-road at %v", p)
		}
		if r2.Norm(r2.Sub(p, spawn)) < spawnClearance {
			t.Errorf("barrel at %v blocks the start", p)
		}
	}
	for _, p := range rocks {
		if track.OnRoad(p) {
			t.Errorf("rock spawned on the road at %v", p)
		}
	}
}
