package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/components"
	"github.com/pthm-cable/donuts/config"
	"github.com/pthm-cable/donuts/geom"
)

// HookState is one of HookReady, HookLaunched, HookLocked or HookRetracting.
// Each variant carries only the fields its own update needs.
type HookState interface {
	hookState()
}

// HookReady sits on the dock and turns towards the aim point.
type HookReady struct {
	Facing r2.Vec
}

// HookLaunched flies outward along Facing, losing speed every tick.
type HookLaunched struct {
	Pos    r2.Vec
	Facing r2.Vec
	Speed  float64
}

// HookLocked holds the object at index Held on an elastic tether ending at End.
// GripOffset is fixed at lock time: where the claw bit relative to the object centre.
type HookLocked struct {
	End         r2.Vec
	Facing      r2.Vec
	ChainLength float64
	Held        int
	GripOffset  r2.Vec
	Vel         r2.Vec
}

// HookRetracting eases from Reached back to the dock, starting at Started (sim seconds).
type HookRetracting struct {
	Pos     r2.Vec
	Reached r2.Vec
	Facing  r2.Vec
	Started float64
}

func (HookReady) hookState()      {}
func (HookLaunched) hookState()   {}
func (HookLocked) hookState()     {}
func (HookRetracting) hookState() {}

// HookMode names the active state, for logs and the debug panel.
type HookMode uint8

const (
	ModeReady HookMode = iota
	ModeLaunched
	ModeLocked
	ModeRetracting
)

func (m HookMode) String() string {
	switch m {
	case ModeReady:
		return "ready"
	case ModeLaunched:
		return "launched"
	case ModeLocked:
		return "locked"
	case ModeRetracting:
		return "retracting"
	default:
		return "unknown"
	}
}

// Hook is the grapple mounted on the vehicle dock.
type Hook struct {
	state HookState
	cfg   config.HookConfig
}

// NewHook returns a ready hook facing +X.
func NewHook(cfg config.HookConfig) *Hook {
	return &Hook{
		state: HookReady{Facing: geom.UnitX},
		cfg:   cfg,
	}
}

// State returns the current state variant.
func (h *Hook) State() HookState {
	return h.state
}

// Mode returns the name of the current state.
func (h *Hook) Mode() HookMode {
	switch h.state.(type) {
	case HookLaunched:
		return ModeLaunched
	case HookLocked:
		return ModeLocked
	case HookRetracting:
		return ModeRetracting
	default:
		return ModeReady
	}
}

// Config returns the hook tuning.
func (h *Hook) Config() *config.HookConfig {
	return &h.cfg
}

// Face turns a ready hook towards goal. It does nothing in any other state.
func (h *Hook) Face(dock, goal r2.Vec) {
	st, ok := h.state.(HookReady)
	if !ok {
		return
	}
	aim := geom.NormalizeOr(r2.Sub(goal, dock), st.Facing)
	st.Facing = geom.NormalizeOr(geom.Slerp(aim, st.Facing, h.cfg.AimBlend), st.Facing)
	h.state = st
}

// Launch fires a ready hook from the dock along its facing.
func (h *Hook) Launch(dock r2.Vec) bool {
	st, ok := h.state.(HookReady)
	if !ok {
		return false
	}
	h.state = HookLaunched{
		Pos:    dock,
		Facing: st.Facing,
		Speed:  h.cfg.LaunchSpeed,
	}
	return true
}

// Retract starts pulling a launched or locked hook back to the dock from where its
// tip is now. A locked hook lets go of its object without imparting any impulse.
func (h *Hook) Retract(now float64) bool {
	var pos, facing r2.Vec
	switch st := h.state.(type) {
	case HookLaunched:
		pos, facing = st.Pos, st.Facing
	case HookLocked:
		pos, facing = st.End, st.Facing
	default:
		return false
	}
	h.state = HookRetracting{
		Pos:     pos,
		Reached: pos,
		Facing:  facing,
		Started: now,
	}
	return true
}

// Fly advances a launched or retracting hook by one tick.
func (h *Hook) Fly(dock r2.Vec, now float64) {
	switch st := h.state.(type) {
	case HookLaunched:
		st.Speed *= h.cfg.FlightDamping
		st.Pos = r2.Add(st.Pos, r2.Scale(st.Speed, st.Facing))
		h.state = st
		if st.Speed < h.cfg.ExhaustSpeed {
			h.Retract(now)
		}
	case HookRetracting:
		u := geom.Smoothstep((now - st.Started) / h.cfg.RetractSeconds)
		st.Pos = geom.Lerp(st.Reached, dock, u)
		if u >= 1 {
			h.state = HookReady{Facing: st.Facing}
			return
		}
		h.state = st
	}
}

// Lock latches a launched hook onto obj, which lives at index in the object store.
// In any other state it does nothing.
func (h *Hook) Lock(dock r2.Vec, index int, obj *components.Draggable) bool {
	st, ok := h.state.(HookLaunched)
	if !ok {
		return false
	}
	// A hook tip exactly on the centre grips from the side it came from
	grip := r2.Scale(h.cfg.GripDepth, geom.NormalizeOr(r2.Sub(st.Pos, obj.Pos), r2.Scale(-1, st.Facing)))
	h.state = HookLocked{
		End:         r2.Add(obj.Pos, grip),
		Facing:      geom.NormalizeOr(r2.Scale(-1, grip), st.Facing),
		ChainLength: r2.Norm(r2.Sub(dock, st.Pos)) + h.cfg.ChainSlack,
		Held:        index,
		GripOffset:  grip,
	}
	return true
}

// Drag runs one tick of the tether while locked: the end is sprung towards the dock
// once it strays beyond the chain, and the held object is carried along behind it.
// obj must be the object at the held index.
func (h *Hook) Drag(dock r2.Vec, obj *components.Draggable) {
	st, ok := h.state.(HookLocked)
	if !ok {
		return
	}

	delta := r2.Sub(st.End, dock)
	dist := r2.Norm(delta)
	st.ChainLength = math.Max(math.Min(st.ChainLength, dist), h.cfg.ChainFloor)
	if dist > st.ChainLength {
		pull := r2.Scale(1/dist, delta)
		st.Vel = r2.Add(st.Vel, r2.Scale(st.ChainLength-dist, pull))
	}
	st.Vel = r2.Scale(h.cfg.TetherDamping, st.Vel)
	st.End = r2.Add(st.End, st.Vel)

	gripDir := geom.NormalizeOr(r2.Scale(-1, st.GripOffset), geom.UnitX)
	dir := geom.NormalizeOr(r2.Sub(obj.Pos, st.End), gripDir)
	st.Facing = dir
	obj.Pos = r2.Add(st.End, r2.Scale(h.cfg.GripDepth, dir))

	h.state = st
}

// Release lets go of obj, flinging it with a share of the tether's velocity, and
// starts retracting. obj must be the object at the held index.
func (h *Hook) Release(obj *components.Draggable, now float64) bool {
	st, ok := h.state.(HookLocked)
	if !ok {
		return false
	}
	obj.Knockback(r2.Scale(h.cfg.ReleaseScale, st.Vel))
	return h.Retract(now)
}

// Circle returns the collision circle just ahead of a launched hook's tip.
// Other states have no collision footprint.
func (h *Hook) Circle() (Circle, bool) {
	st, ok := h.state.(HookLaunched)
	if !ok {
		return Circle{}, false
	}
	return Circle{
		Pos:    r2.Add(st.Pos, r2.Scale(h.cfg.TipReach, st.Facing)),
		Radius: h.cfg.TipRadius,
		Tag:    HookTag,
	}, true
}

// Held returns the index of the held object while locked.
func (h *Hook) Held() (int, bool) {
	st, ok := h.state.(HookLocked)
	if !ok {
		return 0, false
	}
	return st.Held, true
}

// Tip returns where the claw currently is.
func (h *Hook) Tip(dock r2.Vec) r2.Vec {
	switch st := h.state.(type) {
	case HookLaunched:
		return st.Pos
	case HookLocked:
		return st.End
	case HookRetracting:
		return st.Pos
	default:
		return dock
	}
}

// Facing returns the claw direction.
func (h *Hook) Facing() r2.Vec {
	switch st := h.state.(type) {
	case HookReady:
		return st.Facing
	case HookLaunched:
		return st.Facing
	case HookLocked:
		return st.Facing
	case HookRetracting:
		return st.Facing
	default:
		return geom.UnitX
	}
}
