package components

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/geom"
)

// ThrottlePhase tracks what the accelerator has been doing.
type ThrottlePhase uint8

const (
	ThrottleIdle    ThrottlePhase = iota // Never pressed, or fully coasted down
	ThrottleForward                      // Held since Start
	ThrottleCoast                        // Released at Start after ForwardTime seconds of ramp
)

func (p ThrottlePhase) String() string {
	switch p {
	case ThrottleIdle:
		return "idle"
	case ThrottleForward:
		return "forward"
	case ThrottleCoast:
		return "coast"
	default:
		return "unknown"
	}
}

// ThrottleRamp remembers how long forward has been held so the throttle curve can
// spin up, and coast back down, instead of snapping.
type ThrottleRamp struct {
	Phase       ThrottlePhase
	Start       float64 // Sim seconds
	ForwardTime float64 // Ramp seconds banked when coasting began
}

// Vehicle is the player car. Vel is a direction only; Speed scales it.
type Vehicle struct {
	Pos      r2.Vec
	Dir      r2.Vec
	Vel      r2.Vec
	Speed    float64
	Throttle ThrottleRamp
}

// NewVehicle returns a stationary vehicle facing +X.
func NewVehicle(pos r2.Vec) Vehicle {
	return Vehicle{
		Pos: pos,
		Dir: geom.UnitX,
	}
}
