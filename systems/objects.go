package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/components"
)

// ObjectStore owns the barrels and rocks on the track.
//
// Objects live in an ECS world, but their slot order is kept in an append-only entity
// list: the index handed out by Spawn is what Can tags and the hook refer to. There is
// no way to remove or reorder objects, so an index taken during a tick stays valid.
type ObjectStore struct {
	world    *ecs.World
	mapper   *ecs.Map2[components.Draggable, components.Body]
	objMap   *ecs.Map1[components.Draggable]
	bodyMap  *ecs.Map1[components.Body]
	filter   *ecs.Filter2[components.Draggable, components.Body]
	entities []ecs.Entity
}

// NewObjectStore creates an empty store.
func NewObjectStore() *ObjectStore {
	w := ecs.NewWorld()
	return &ObjectStore{
		world:   w,
		mapper:  ecs.NewMap2[components.Draggable, components.Body](w),
		objMap:  ecs.NewMap1[components.Draggable](w),
		bodyMap: ecs.NewMap1[components.Body](w),
		filter:  ecs.NewFilter2[components.Draggable, components.Body](w),
	}
}

// Spawn adds a resting object and returns its index.
func (s *ObjectStore) Spawn(pos r2.Vec, kind components.ObjectKind, radius float64) int {
	obj := components.Draggable{Pos: pos, Kind: kind}
	body := components.Body{Radius: radius}
	e := s.mapper.NewEntity(&obj, &body)
	s.entities = append(s.entities, e)
	return len(s.entities) - 1
}

// Len returns the number of objects.
func (s *ObjectStore) Len() int {
	return len(s.entities)
}

// At returns the object at index i. An out-of-range index is a programming error.
func (s *ObjectStore) At(i int) *components.Draggable {
	return s.objMap.Get(s.entities[i])
}

// Radius returns the collision radius of the object at index i.
func (s *ObjectStore) Radius(i int) float64 {
	return s.bodyMap.Get(s.entities[i]).Radius
}

// SlideAll applies Slide to every object using the friction at its own position.
func (s *ObjectStore) SlideAll(friction func(pos r2.Vec) float64) {
	query := s.filter.Query()
	for query.Next() {
		obj, _ := query.Get()
		if !obj.Kind.Movable() {
			continue
		}
		obj.Slide(friction(obj.Pos))
	}
}

// Circles appends one circle per object to dst in index order.
// Barrels carry their index, rocks share the rock tag.
func (s *ObjectStore) Circles(dst []Circle) []Circle {
	for i, e := range s.entities {
		obj := s.objMap.Get(e)
		tag := CanTag(i)
		if obj.Kind == components.KindRock {
			tag = RockTag
		}
		dst = append(dst, Circle{
			Pos:    obj.Pos,
			Radius: s.bodyMap.Get(e).Radius,
			Tag:    tag,
		})
	}
	return dst
}

// Each calls fn for every object in index order.
func (s *ObjectStore) Each(fn func(i int, obj *components.Draggable)) {
	for i, e := range s.entities {
		fn(i, s.objMap.Get(e))
	}
}

// Count returns how many objects of the given kind exist.
func (s *ObjectStore) Count(kind components.ObjectKind) int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		obj, _ := query.Get()
		if obj.Kind == kind {
			n++
		}
	}
	return n
}
