package components

// Body holds the collision footprint of an entity.
type Body struct {
	Radius float64
}
