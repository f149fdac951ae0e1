// Package geom provides the 2D vector and angle helpers shared by the simulation.
// Vectors are gonum r2.Vec values; every helper here tolerates zero-length input.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Zero is the zero vector.
var Zero = r2.Vec{}

// UnitX is the default facing for freshly built entities.
var UnitX = r2.Vec{X: 1}

// AngleToVec returns the unit vector pointing at angle radians.
func AngleToVec(angle float64) r2.Vec {
	sin, cos := math.Sincos(angle)
	return r2.Vec{X: cos, Y: sin}
}

// VecToAngle returns the heading of v in radians, in (-Pi, Pi].
func VecToAngle(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// Normalize returns v scaled to unit length, or the zero vector when v has no length.
func Normalize(v r2.Vec) r2.Vec {
	return NormalizeOr(v, Zero)
}

// NormalizeOr returns v scaled to unit length, or fallback when v has no length.
func NormalizeOr(v r2.Vec, fallback r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return r2.Scale(1/n, v)
}

// Lerp interpolates linearly from a (t=0) to b (t=1).
func Lerp(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Rotate turns v by angle radians around the origin.
func Rotate(v r2.Vec, angle float64) r2.Vec {
	sin, cos := math.Sincos(angle)
	return r2.Vec{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Smoothstep clamps x to [0, 1] and eases it with 3x²-2x³.
func Smoothstep(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return x * x * (3 - 2*x)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
