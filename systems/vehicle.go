package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/components"
	"github.com/pthm-cable/donuts/config"
	"github.com/pthm-cable/donuts/geom"
)

// VehicleInput is the held state of the driving keys for one tick.
type VehicleInput struct {
	Accelerate bool
	Left       bool
	Right      bool
}

// VehicleSystem integrates throttle, steering and terrain friction for the car.
type VehicleSystem struct {
	cfg config.VehicleConfig
}

// NewVehicleSystem creates a vehicle integrator with the given tuning.
func NewVehicleSystem(cfg config.VehicleConfig) *VehicleSystem {
	return &VehicleSystem{cfg: cfg}
}

// Update advances v by one tick. friction is the terrain friction at v.Pos before the
// move and now is the simulation clock in seconds.
func (s *VehicleSystem) Update(v *components.Vehicle, in VehicleInput, friction, now float64) {
	cfg := &s.cfg

	v.Throttle = s.advanceRamp(v.Throttle, in.Accelerate, now)
	throttle := s.Throttle(s.RampTime(v.Throttle, now))

	// Speed collapses when the car slides sideways relative to its heading
	align := math.Max(r2.Dot(v.Vel, v.Dir)-cfg.AlignThreshold, 0) / cfg.AlignWindow
	v.Speed = cfg.MaxSpeed * throttle * align

	v.Vel = geom.Normalize(r2.Add(v.Vel, r2.Scale(cfg.Thrust*throttle, v.Dir)))

	if in.Left != in.Right {
		turn := cfg.SteerStep * math.Min(v.Speed/cfg.MaxSpeed, 1)
		if in.Left {
			turn = -turn
		}
		v.Dir = geom.AngleToVec(geom.VecToAngle(v.Dir) + turn)
	}

	v.Speed *= friction
	v.Pos = r2.Add(v.Pos, r2.Scale(v.Speed, v.Vel))
}

// advanceRamp applies the accelerator edge for this tick.
func (s *VehicleSystem) advanceRamp(r components.ThrottleRamp, held bool, now float64) components.ThrottleRamp {
	switch {
	case held && r.Phase == components.ThrottleIdle:
		return components.ThrottleRamp{Phase: components.ThrottleForward, Start: now}
	case held && r.Phase == components.ThrottleCoast:
		// Resume the ramp where coasting left it
		return components.ThrottleRamp{Phase: components.ThrottleForward, Start: now - s.RampTime(r, now)}
	case !held && r.Phase == components.ThrottleForward:
		return components.ThrottleRamp{
			Phase:       components.ThrottleCoast,
			Start:       now,
			ForwardTime: math.Min(now-r.Start, s.cfg.RampMemory),
		}
	case !held && r.Phase == components.ThrottleCoast && s.RampTime(r, now) <= 0:
		return components.ThrottleRamp{}
	}
	return r
}

// RampTime returns the position on the throttle curve, in seconds of forward time.
func (s *VehicleSystem) RampTime(r components.ThrottleRamp, now float64) float64 {
	switch r.Phase {
	case components.ThrottleForward:
		return now - r.Start
	case components.ThrottleCoast:
		return math.Max(r.ForwardTime-(now-r.Start)*s.cfg.CoastRate, 0)
	default:
		return 0
	}
}

// Throttle maps ramp time to [0, 1]: a quick rise to a plateau, a flat stretch,
// then a slower rise to full power.
func (s *VehicleSystem) Throttle(t float64) float64 {
	cfg := &s.cfg
	switch {
	case t < cfg.ZeroToPlateau:
		return geom.Smoothstep(t/cfg.ZeroToPlateau) * cfg.Plateau
	case t > cfg.MaxStart:
		return geom.Smoothstep((t-cfg.MaxStart)/cfg.PlateauToMax)*(1-cfg.Plateau) + cfg.Plateau
	default:
		return cfg.Plateau
	}
}

// Dock returns the hook attachment point on v.
func (s *VehicleSystem) Dock(v *components.Vehicle) r2.Vec {
	return r2.Add(v.Pos, r2.Scale(s.cfg.DockOffset, v.Dir))
}

// Circle returns the collision footprint of v.
func (s *VehicleSystem) Circle(v *components.Vehicle) Circle {
	return Circle{Pos: v.Pos, Radius: s.cfg.Radius, Tag: VehicleTag}
}

// MaxSpeed returns the configured top speed.
func (s *VehicleSystem) MaxSpeed() float64 {
	return s.cfg.MaxSpeed
}

// CameraRotation returns the camera roll in degrees that keeps v pointing up on a
// y-down screen.
func CameraRotation(v *components.Vehicle) float64 {
	return -(geom.VecToAngle(v.Dir)*180/math.Pi + 90)
}
