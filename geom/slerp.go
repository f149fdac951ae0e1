package geom

import "gonum.org/v1/gonum/spatial/r2"

// Coefficients of the truncated series for sin(tθ)/sin(θ) expressed in cos(θ)-1.
// The last term carries the mu correction that absorbs the truncation error.
const slerpMu = 1.85298109240830

var (
	slerpU = [8]float64{
		1.0 / (1 * 3),
		1.0 / (2 * 5),
		1.0 / (3 * 7),
		1.0 / (4 * 9),
		1.0 / (5 * 11),
		1.0 / (6 * 13),
		1.0 / (7 * 15),
		slerpMu / (8 * 17),
	}
	slerpV = [8]float64{
		1.0 / 3,
		2.0 / 5,
		3.0 / 7,
		4.0 / 9,
		5.0 / 11,
		6.0 / 13,
		7.0 / 15,
		slerpMu * 8 / 17,
	}
)

// Slerp interpolates between the (near-)unit vectors a and b along the arc joining them.
// t=0 yields b and t=1 yields a. It is evaluated with a rational series instead of
// acos/sin, so it is safe to call every tick and never divides.
func Slerp(a, b r2.Vec, t float64) r2.Vec {
	xm1 := r2.Dot(a, b) - 1
	fa := slerpWeight(t, xm1)
	fb := slerpWeight(1-t, xm1)
	return r2.Add(r2.Scale(fa, a), r2.Scale(fb, b))
}

// slerpWeight approximates sin(tθ)/sin(θ) where xm1 = cos(θ)-1.
func slerpWeight(t, xm1 float64) float64 {
	t2 := t * t
	acc := 1.0
	for i := len(slerpU) - 1; i >= 0; i-- {
		acc = 1 + (slerpU[i]*t2-slerpV[i])*xm1*acc
	}
	return t * acc
}
