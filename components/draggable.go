package components

import "gonum.org/v1/gonum/spatial/r2"

// ObjectKind distinguishes the things scattered on the track.
type ObjectKind uint8

const (
	KindBarrel ObjectKind = iota // Slides, takes knockback, can be hooked
	KindRock                     // Never moves
)

// String returns the kind name used in logs and CSV output.
func (k ObjectKind) String() string {
	switch k {
	case KindBarrel:
		return "barrel"
	case KindRock:
		return "rock"
	default:
		return "unknown"
	}
}

// Movable reports whether objects of this kind respond to friction and impulses.
func (k ObjectKind) Movable() bool {
	return k == KindBarrel
}

// Draggable is a can or rock on the track.
type Draggable struct {
	Pos  r2.Vec
	Vel  r2.Vec
	Kind ObjectKind
}

// Slide decays velocity by friction and advances the position.
func (d *Draggable) Slide(friction float64) {
	if !d.Kind.Movable() {
		return
	}
	d.Vel = r2.Scale(friction, d.Vel)
	d.Pos = r2.Add(d.Pos, d.Vel)
}

// Knockback adds an impulse to the velocity.
func (d *Draggable) Knockback(impulse r2.Vec) {
	if !d.Kind.Movable() {
		return
	}
	d.Vel = r2.Add(d.Vel, impulse)
}
