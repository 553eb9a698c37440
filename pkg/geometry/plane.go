package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Plane is a point on the plane plus its unit normal
type Plane struct {
	Origin Vector3
	Normal Vector3
}

// PlaneNormalFromThreePoints returns the unit normal of the plane through a, b
// and c following the right-hand rule. ok is false when the points are
// collinear or coincident.
func PlaneNormalFromThreePoints(a, b, c Vector3) (normal Vector3, ok bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Length()
	if l == 0 {
		return Vector3{}, false
	}
	scale := b.Sub(a).Length() * c.Sub(a).Length()
	if l <= 1e-12*scale {
		return Vector3{}, false
	}
	return n.Mul(1 / l), true
}

// FitPlaneLeastSquares fits a plane through the centroid of points whose
// normal is the eigenvector of the covariance matrix with the smallest
// eigenvalue. maxDeviation is the largest absolute distance of an input point
// from the fitted plane. The normal sign is canonical: its first non-zero
// component among Z, Y, X is positive.
func FitPlaneLeastSquares(points []Vector3) (plane Plane, maxDeviation float64, ok bool) {
	if len(points) < 3 {
		return Plane{}, 0, false
	}

	var centroid Vector3
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float64(len(points)))

	var xx, xy, xz, yy, yz, zz float64
	for _, p := range points {
		d := p.Sub(centroid)
		xx += d.X * d.X
		xy += d.X * d.Y
		xz += d.X * d.Z
		yy += d.Y * d.Y
		yz += d.Y * d.Z
		zz += d.Z * d.Z
	}

	cov := mat.NewSymDense(3, []float64{
		xx, xy, xz,
		xy, yy, yz,
		xz, yz, zz,
	})
	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return Plane{}, 0, false
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Eigenvalues come back in ascending order.
	normal := NewVector3(vecs.At(0, 0), vecs.At(1, 0), vecs.At(2, 0)).Normalize()
	if normal.Length() == 0 {
		return Plane{}, 0, false
	}
	normal = canonicalNormal(normal)

	plane = Plane{Origin: centroid, Normal: normal}
	for _, p := range points {
		maxDeviation = math.Max(maxDeviation, math.Abs(plane.SignedDistance(p)))
	}
	return plane, maxDeviation, true
}

func canonicalNormal(n Vector3) Vector3 {
	switch {
	case n.Z != 0:
		if n.Z < 0 {
			return n.Mul(-1)
		}
	case n.Y != 0:
		if n.Y < 0 {
			return n.Mul(-1)
		}
	case n.X < 0:
		return n.Mul(-1)
	}
	return n
}

// SignedDistance returns the distance of p from the plane, positive on the
// side the normal points to
func (p Plane) SignedDistance(point Vector3) float64 {
	return point.Sub(p.Origin).Dot(p.Normal)
}

// ProjectPoint returns the orthogonal projection of point onto the plane
func (p Plane) ProjectPoint(point Vector3) Vector3 {
	return point.Sub(p.Normal.Mul(p.SignedDistance(point)))
}

// Basis returns two unit vectors spanning the plane such that u x v == normal.
// hint, when not parallel to the normal, fixes the direction of u.
func (p Plane) Basis(hint Vector3) (u, v Vector3) {
	u = hint.RejectFrom(p.Normal)
	if u.Length() <= 1e-12*hint.Length() || u.Length() == 0 {
		// Any axis not parallel to the normal will do.
		axis := NewVector3(1, 0, 0)
		if math.Abs(p.Normal.X) > 0.9 {
			axis = NewVector3(0, 1, 0)
		}
		u = axis.RejectFrom(p.Normal)
	}
	u = u.Normalize()
	v = p.Normal.Cross(u)
	return u, v
}

// To2D expresses point in the plane coordinates (u, v) relative to the origin
func (p Plane) To2D(point, u, v Vector3) Vector2 {
	d := point.Sub(p.Origin)
	return Vector2{X: d.Dot(u), Y: d.Dot(v)}
}

// From2D maps plane coordinates back to 3D
func (p Plane) From2D(q Vector2, u, v Vector3) Vector3 {
	return p.Origin.Add(u.Mul(q.X)).Add(v.Mul(q.Y))
}
