package systems

import (
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/components"
	"github.com/pthm-cable/donuts/config"
	"github.com/pthm-cable/donuts/geom"
)

// spawnClearance keeps objects off the starting grid.
const spawnClearance = 4.0

// Track is the ring road the car drives on. The road is the annulus between the
// inner radius and Radius; everything else is gravel with noisy grip.
type Track struct {
	cfg    config.TrackConfig
	inner  float64
	gravel opensimplex.Noise
}

// NewTrack creates a track whose off-road grip pattern is fixed by seed.
func NewTrack(cfg config.TrackConfig, seed int64) *Track {
	return &Track{
		cfg:    cfg,
		inner:  cfg.Radius - cfg.Width,
		gravel: opensimplex.New(seed),
	}
}

// Radius returns the outer edge of the road.
func (t *Track) Radius() float64 { return t.cfg.Radius }

// InnerRadius returns the inner edge of the road.
func (t *Track) InnerRadius() float64 { return t.inner }

// MidRadius returns the radius of the centre line.
func (t *Track) MidRadius() float64 { return t.cfg.Radius - t.cfg.Width/2 }

// OnRoad reports whether pos lies on the tarmac.
func (t *Track) OnRoad(pos r2.Vec) bool {
	d := r2.Norm(pos)
	return d >= t.inner && d <= t.cfg.Radius
}

// Friction returns the per-tick speed retention at pos, in [0, 1].
func (t *Track) Friction(pos r2.Vec) float64 {
	if t.OnRoad(pos) {
		return t.cfg.RoadFriction
	}
	n := t.gravel.Eval2(pos.X*t.cfg.GravelScale, pos.Y*t.cfg.GravelScale)
	return geom.Clamp(t.cfg.OffroadFriction+n*t.cfg.GravelVariation, 0, 1)
}

// VehicleSpawn returns the starting position on the outer half of the road.
func (t *Track) VehicleSpawn() r2.Vec {
	return r2.Vec{Y: t.cfg.Radius - t.cfg.Width/4}
}

// ObjectSpawns scatters n spawn points for kind. Barrels land on the road, rocks on
// the gravel either side of it. No point lands near the vehicle spawn.
func (t *Track) ObjectSpawns(kind components.ObjectKind, n int, rng *rand.Rand) []r2.Vec {
	lo, hi := t.inner+1, t.cfg.Radius-1
	spawn := t.VehicleSpawn()

	out := make([]r2.Vec, 0, n)
	for len(out) < n {
		if kind == components.KindRock {
			if rng.Intn(2) == 0 {
				lo, hi = 2, t.inner-2
			} else {
				lo, hi = t.cfg.Radius+2, t.cfg.Radius+t.cfg.Width
			}
		}
		// Uniform over the annulus area rather than its radius
		r := math.Sqrt(lo*lo + rng.Float64()*(hi*hi-lo*lo))
		p := r2.Scale(r, geom.AngleToVec(rng.Float64()*2*math.Pi))
		if r2.Norm(r2.Sub(p, spawn)) < spawnClearance {
			continue
		}
		out = append(out, p)
	}
	return out
}
