package game

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/components"
	"github.com/pthm-cable/donuts/geom"
	"github.com/pthm-cable/donuts/systems"
)

// Autopilot tuning.
const (
	pilotLookahead = 0.25 // radians of track ahead to steer at
	pilotDeadband  = 0.05 // heading error (sin) ignored by the steering
	pilotRange     = 12.0 // furthest barrel worth shooting at
	pilotAimDot    = 0.97 // hook must face this close to the target before firing
	pilotMinHold   = 60   // ticks
	pilotMaxHold   = 240
)

// AutoPilot drives clockwise around the ring, the way the car faces at the start.
// It shoots the hook at the nearest barrel in range and tows it for a random while
// before letting go.
type AutoPilot struct {
	rng      *rand.Rand
	target   int
	holdLeft int
}

// NewAutoPilot creates an autopilot with its own random stream.
func NewAutoPilot(seed int64) *AutoPilot {
	return &AutoPilot{rng: rand.New(rand.NewSource(seed)), target: -1}
}

// Poll implements InputSource.
func (p *AutoPilot) Poll(g *Game) Input {
	car := g.Vehicle()
	in := Input{Accelerate: true}

	// Steer towards a point on the centre line a little further round
	angle := geom.VecToAngle(car.Pos) - pilotLookahead
	goal := r2.Scale(g.Track().MidRadius(), geom.AngleToVec(angle))
	want := geom.NormalizeOr(r2.Sub(goal, car.Pos), car.Dir)
	// Positive cross means the goal is on the +angle side, which is Right
	switch cross := car.Dir.X*want.Y - car.Dir.Y*want.X; {
	case cross > pilotDeadband:
		in.Right = true
	case cross < -pilotDeadband:
		in.Left = true
	}

	dock := g.Dock()
	in.Aim = r2.Add(dock, car.Dir)

	switch g.Hook().Mode() {
	case systems.ModeReady:
		p.target = nearestBarrel(g.Objects(), dock, pilotRange)
		if p.target < 0 {
			break
		}
		in.Aim = g.Objects().At(p.target).Pos
		aim := geom.NormalizeOr(r2.Sub(in.Aim, dock), car.Dir)
		if r2.Dot(aim, g.Hook().Facing()) > pilotAimDot {
			in.Fire = true
			p.holdLeft = pilotMinHold + p.rng.Intn(pilotMaxHold-pilotMinHold)
		}
	case systems.ModeLocked:
		p.holdLeft--
		if p.holdLeft <= 0 {
			in.Fire = true
		}
	}
	return in
}

// nearestBarrel returns the index of the closest barrel within reach of pos, or -1.
func nearestBarrel(objects *systems.ObjectStore, pos r2.Vec, reach float64) int {
	best, bestDist := -1, math.Inf(1)
	objects.Each(func(i int, obj *components.Draggable) {
		if obj.Kind != components.KindBarrel {
			return
		}
		if d := r2.Norm(r2.Sub(obj.Pos, pos)); d < reach && d < bestDist {
			best, bestDist = i, d
		}
	})
	return best
}
