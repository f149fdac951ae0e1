package main

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/systems"
)

// frictionGrid samples t.Friction over a square of side 2*extent centred on the
// origin. Row 0 is the top of the preview, which is -Y in world space on a y-down screen.
func frictionGrid(grid []float64, size int, t *systems.Track, extent float64) {
	step := 2 * extent / float64(size)
	for y := 0; y < size; y++ {
		wy := -extent + (float64(y)+0.5)*step
		for x := 0; x < size; x++ {
			wx := -extent + (float64(x)+0.5)*step
			grid[y*size+x] = t.Friction(r2.Vec{X: wx, Y: wy})
		}
	}
}

// gridStats returns the min, max and mean of grid.
func gridStats(grid []float64) (lo, hi, mean float64) {
	if len(grid) == 0 {
		return 0, 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, v := range grid {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
	}
	return lo, hi, sum / float64(len(grid))
}

// frictionColor maps friction to a gravel-to-asphalt gradient over [lo, hi].
// Grippier ground is drawn darker.
func frictionColor(v, lo, hi float64) color.RGBA {
	t := 0.0
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	t = math.Max(0, math.Min(1, t))

	gravel := [3]float64{214, 190, 140}
	asphalt := [3]float64{60, 60, 66}
	mix := func(i int) uint8 {
		return uint8(gravel[i] + (asphalt[i]-gravel[i])*t)
	}
	return color.RGBA{R: mix(0), G: mix(1), B: mix(2), A: 255}
}

// worldToPreview maps a world point into preview pixel space.
func worldToPreview(p r2.Vec, extent, originX, originY, size float64) r2.Vec {
	scale := size / (2 * extent)
	return r2.Vec{
		X: originX + (p.X+extent)*scale,
		Y: originY + (p.Y+extent)*scale,
	}
}
