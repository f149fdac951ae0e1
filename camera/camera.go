// Package camera provides the chase camera that follows the car around the track.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/geom"
)

// Camera maps world space onto a y-down screen.
// The view is centred on the target and rolled by Rotation so the car always
// points up the screen.
type Camera struct {
	// Target is the camera center in world coordinates
	Target r2.Vec

	// Rotation in degrees, applied counter-clockwise in world space
	Rotation float64

	// Zoom is screen pixels per world unit
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Zoom constraints
	MinZoom, MaxZoom float64

	// reach is the world distance from centre to the nearer screen edge at default zoom
	reach float64
}

// New creates a camera that shows reach world units from the centre to the nearer
// screen edge.
func New(viewportW, viewportH, reach float64) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		reach:     reach,
	}
	c.Reset()
	return c
}

// Follow centres the camera on target with the given roll.
func (c *Camera) Follow(target r2.Vec, rotation float64) {
	c.Target = target
	c.Rotation = rotation
}

// WorldToScreen converts a world position to screen pixels.
func (c *Camera) WorldToScreen(p r2.Vec) r2.Vec {
	d := geom.Rotate(r2.Sub(p, c.Target), c.Rotation*math.Pi/180)
	return r2.Vec{
		X: c.ViewportW/2 + d.X*c.Zoom,
		Y: c.ViewportH/2 + d.Y*c.Zoom,
	}
}

// ScreenToWorld converts screen pixels to a world position.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	d := r2.Vec{
		X: (s.X - c.ViewportW/2) / c.Zoom,
		Y: (s.Y - c.ViewportH/2) / c.Zoom,
	}
	return r2.Add(c.Target, geom.Rotate(d, -c.Rotation*math.Pi/180))
}

// IsVisible returns true if a circle at p with the given radius could be on screen.
// The check uses the half-diagonal so it holds at any rotation.
func (c *Camera) IsVisible(p r2.Vec, radius float64) bool {
	halfDiag := math.Hypot(c.ViewportW, c.ViewportH) / (2 * c.Zoom)
	return r2.Norm(r2.Sub(p, c.Target)) <= halfDiag+radius
}

// Resize updates viewport dimensions, keeping the zoom level.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = geom.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns to the default zoom. Zoom limits allow a view four times wider or
// closer than the default.
func (c *Camera) Reset() {
	def := math.Min(c.ViewportW, c.ViewportH) / (2 * c.reach)
	c.Zoom = def
	c.MinZoom = def / 4
	c.MaxZoom = def * 4
}
