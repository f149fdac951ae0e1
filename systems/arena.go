package systems

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/geom"
)

// TagKind identifies what owns a circle.
type TagKind uint8

const (
	TagHook TagKind = iota
	TagVehicle
	TagRock
	TagCan
)

// Tag identifies the entity behind a circle. Index is only meaningful for TagCan and
// refers to the object store slot for the tick the circle was gathered in.
type Tag struct {
	Kind  TagKind
	Index int
}

var (
	HookTag    = Tag{Kind: TagHook}
	VehicleTag = Tag{Kind: TagVehicle}
	RockTag    = Tag{Kind: TagRock}
)

// CanTag returns the tag for the object at index i.
func CanTag(i int) Tag {
	return Tag{Kind: TagCan, Index: i}
}

// less is a total order on tags, used to break ties deterministically.
func (t Tag) less(o Tag) bool {
	if t.Kind != o.Kind {
		return t.Kind < o.Kind
	}
	return t.Index < o.Index
}

func (t Tag) String() string {
	switch t.Kind {
	case TagHook:
		return "hook"
	case TagVehicle:
		return "vehicle"
	case TagRock:
		return "rock"
	case TagCan:
		return fmt.Sprintf("can(%d)", t.Index)
	default:
		return "unknown"
	}
}

// Circle is a tagged collision footprint, rebuilt every tick.
type Circle struct {
	Pos    r2.Vec
	Radius float64
	Tag    Tag
}

// Contact reports that Members[0] overlaps Members[1].
// Normal points from the second member towards the first.
type Contact struct {
	Members [2]Tag
	Normal  r2.Vec
	Depth   float64
}

// Arena detects overlaps between the circles handed to it each tick.
type Arena struct {
	circles  []Circle
	contacts []Contact
	spare    []Contact
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		circles:  make([]Circle, 0, 64),
		contacts: make([]Contact, 0, 64),
		spare:    make([]Contact, 0, 64),
	}
}

// Collide replaces the working set with circles and recomputes all contacts.
// Every overlapping pair is reported twice, once from each side, with negated normals.
func (a *Arena) Collide(circles []Circle) {
	a.circles = append(a.circles[:0], circles...)
	a.contacts = a.contacts[:0]

	for i := range a.circles {
		c0 := &a.circles[i]
		for j := range a.circles {
			c1 := &a.circles[j]
			if c0.Tag == c1.Tag {
				continue
			}

			delta := r2.Sub(c0.Pos, c1.Pos)
			dist := r2.Norm(delta)
			depth := c0.Radius + c1.Radius - dist
			if depth <= 0 {
				continue
			}

			a.contacts = append(a.contacts, Contact{
				Members: [2]Tag{c0.Tag, c1.Tag},
				Normal:  geom.NormalizeOr(delta, coincidentNormal(c0.Tag, c1.Tag)),
				Depth:   depth,
			})
		}
	}
}

// coincidentNormal picks a separation axis for circles sharing a centre.
// The sign follows tag order so the mirrored contact still gets the opposite normal.
func coincidentNormal(first, second Tag) r2.Vec {
	if first.less(second) {
		return r2.Vec{X: -1}
	}
	return r2.Vec{X: 1}
}

// DrainContacts returns the contacts from the last Collide and clears them.
// The returned slice is reused by the arena and is only valid until the next Collide.
func (a *Arena) DrainContacts() []Contact {
	out := a.contacts
	a.contacts = a.spare[:0]
	a.spare = out
	return out
}

// Circles returns the working set from the last Collide. Callers must not modify it.
func (a *Arena) Circles() []Circle {
	return a.circles
}
