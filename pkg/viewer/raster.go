package viewer

import (
	"image"
	"image/color"
	"math"
)

// screenPoint is a projected vertex: pixel position and camera depth
type screenPoint struct {
	X, Y, Z float64
}

// fillTriangle scan-converts a triangle, keeping a pixel only where it is
// nearer than what the depth buffer already holds
func fillTriangle(img *image.RGBA, zbuffer []float64, a, b, c screenPoint, col color.RGBA) {
	v := [3]screenPoint{a, b, c}
	if v[0].Y > v[1].Y {
		v[0], v[1] = v[1], v[0]
	}
	if v[1].Y > v[2].Y {
		v[1], v[2] = v[2], v[1]
	}
	if v[0].Y > v[1].Y {
		v[0], v[1] = v[1], v[0]
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	top := int(math.Max(0, math.Ceil(v[0].Y)))
	bottom := int(math.Min(float64(bounds.Dy()-1), v[2].Y))

	for y := top; y <= bottom; y++ {
		fy := float64(y)

		// The long edge 0-2 spans every scanline; the short side is 0-1
		// above the middle vertex and 1-2 below it.
		xl, zl := lerpEdge(v[0], v[2], fy)
		var xr, zr float64
		if fy < v[1].Y {
			xr, zr = lerpEdge(v[0], v[1], fy)
		} else {
			xr, zr = lerpEdge(v[1], v[2], fy)
		}
		if xl > xr {
			xl, xr = xr, xl
			zl, zr = zr, zl
		}

		left := int(math.Max(0, math.Ceil(xl)))
		right := int(math.Min(float64(width-1), xr))
		for x := left; x <= right; x++ {
			t := 0.0
			if xr != xl {
				t = (float64(x) - xl) / (xr - xl)
			}
			z := zl + t*(zr-zl)

			idx := y*width + x
			if z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// lerpEdge returns x and depth of edge p-q at scanline y
func lerpEdge(p, q screenPoint, y float64) (float64, float64) {
	if q.Y == p.Y {
		return p.X, p.Z
	}
	t := (y - p.Y) / (q.Y - p.Y)
	return p.X + t*(q.X-p.X), p.Z + t*(q.Z-p.Z)
}

// drawLine draws a line using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
