package geometry

import "math"

// degenerateTolerance is the relative size below which the bisector system
// determinant is treated as zero
const degenerateTolerance = 1e-12

// Circumcircle is the circle through three points inside a chosen plane.
// Degenerate is the "no result" sentinel: the points are collinear once
// projected, and Center/RadiusSquared are meaningless.
type Circumcircle struct {
	Center        Vector3
	RadiusSquared float64
	Degenerate    bool
}

// Radius returns the circle radius, +Inf for a degenerate circle
func (c Circumcircle) Radius() float64 {
	if c.Degenerate {
		return math.Inf(1)
	}
	return math.Sqrt(c.RadiusSquared)
}

// Circumcenter3D projects a, b and c onto the plane through a with the given
// normal, solves the two perpendicular-bisector equations there and maps the
// center back to 3D. A zero normal means the plane of the three points.
//
// With a at the origin of the plane coordinates the system is
//
//	2*bx*X + 2*by*Y = bx² + by²
//	2*cx*X + 2*cy*Y = cx² + cy²
func Circumcenter3D(a, b, c, normal Vector3) Circumcircle {
	if normal.Length() == 0 {
		n, ok := PlaneNormalFromThreePoints(a, b, c)
		if !ok {
			return Circumcircle{Degenerate: true}
		}
		normal = n
	}
	plane := Plane{Origin: a, Normal: normal.Normalize()}
	u, v := plane.Basis(b.Sub(a))

	pb := plane.To2D(b, u, v)
	pc := plane.To2D(c, u, v)
	center, r2, ok := circumcenter2D(pb, pc)
	if !ok {
		return Circumcircle{Degenerate: true}
	}
	return Circumcircle{
		Center:        plane.From2D(center, u, v),
		RadiusSquared: r2,
	}
}

// Circumcircle2D returns the center and squared radius of the circle through
// three points of the plane; ok is false for collinear points
func Circumcircle2D(a, b, c Vector2) (center Vector2, radiusSquared float64, ok bool) {
	rel, r2, ok := circumcenter2D(b.Sub(a), c.Sub(a))
	if !ok {
		return Vector2{}, 0, false
	}
	return rel.Add(a), r2, true
}

// circumcenter2D solves the bisector system with the first point at the origin
func circumcenter2D(b, c Vector2) (Vector2, float64, bool) {
	d := 2 * (b.X*c.Y - b.Y*c.X)
	scale := b.Length() * c.Length()
	if scale == 0 || math.Abs(d) <= degenerateTolerance*2*scale {
		return Vector2{}, 0, false
	}
	bb := b.X*b.X + b.Y*b.Y
	cc := c.X*c.X + c.Y*c.Y
	center := Vector2{
		X: (c.Y*bb - b.Y*cc) / d,
		Y: (b.X*cc - c.X*bb) / d,
	}
	return center, center.X*center.X + center.Y*center.Y, true
}
