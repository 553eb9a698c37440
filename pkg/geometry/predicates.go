package geometry

import "math/big"

// The predicates below evaluate their determinant in floating point first and
// only fall back to exact rational arithmetic when the result is within the
// error bound of zero.

// filterBound scales the permanent of a determinant into a conservative
// bound on its floating-point evaluation error.
const filterBound = 1e-12

// Orient2D returns +1 when p0, p1, p2 wind counterclockwise, -1 when they wind
// clockwise and 0 when they are exactly collinear.
func Orient2D(p0, p1, p2 Vector2) int {
	m := [][]float64{
		{p1.X - p0.X, p1.Y - p0.Y},
		{p2.X - p0.X, p2.Y - p0.Y},
	}
	if s, ok := filteredSign(m); ok {
		return s
	}
	return exactSign([][]*big.Rat{
		{ratSub(p1.X, p0.X), ratSub(p1.Y, p0.Y)},
		{ratSub(p2.X, p0.X), ratSub(p2.Y, p0.Y)},
	})
}

// InCircle returns +1 when d lies strictly inside the circle through a, b and
// c, -1 when it lies outside and 0 when it is on the circle or a, b, c are
// collinear. The result does not depend on the winding of a, b, c.
func InCircle(a, b, c, d Vector2) int {
	o := Orient2D(a, b, c)
	if o == 0 {
		return 0
	}
	rows := []Vector2{a, b, c}
	m := make([][]float64, 3)
	for i, p := range rows {
		dx, dy := p.X-d.X, p.Y-d.Y
		m[i] = []float64{dx, dy, dx*dx + dy*dy}
	}
	if s, ok := filteredSign(m); ok {
		return s * o
	}
	e := make([][]*big.Rat, 3)
	for i, p := range rows {
		dx, dy := ratSub(p.X, d.X), ratSub(p.Y, d.Y)
		e[i] = []*big.Rat{dx, dy, ratLift(dx, dy)}
	}
	return exactSign(e) * o
}

// Orient3D returns +1 when d lies on the side of the plane through a, b, c
// that the right-handed normal (b-a)x(c-a) points to, -1 on the other side
// and 0 when the four points are coplanar.
func Orient3D(a, b, c, d Vector3) int {
	rows := []Vector3{b, c, d}
	m := make([][]float64, 3)
	for i, p := range rows {
		m[i] = []float64{p.X - a.X, p.Y - a.Y, p.Z - a.Z}
	}
	if s, ok := filteredSign(m); ok {
		return s
	}
	e := make([][]*big.Rat, 3)
	for i, p := range rows {
		e[i] = []*big.Rat{ratSub(p.X, a.X), ratSub(p.Y, a.Y), ratSub(p.Z, a.Z)}
	}
	return exactSign(e)
}

// InSphere returns +1 when e lies strictly inside the sphere through a, b, c
// and d, -1 outside and 0 on the sphere or for a flat tetrahedron. The result
// does not depend on the orientation of a, b, c, d.
func InSphere(a, b, c, d, e Vector3) int {
	o := Orient3D(a, b, c, d)
	if o == 0 {
		return 0
	}
	rows := []Vector3{a, b, c, d}
	m := make([][]float64, 4)
	for i, p := range rows {
		dx, dy, dz := p.X-e.X, p.Y-e.Y, p.Z-e.Z
		m[i] = []float64{dx, dy, dz, dx*dx + dy*dy + dz*dz}
	}
	// The lifted determinant is positive for an inside point when a, b, c, d
	// have negative Orient3D, hence the sign flip.
	if s, ok := filteredSign(m); ok {
		return -s * o
	}
	r := make([][]*big.Rat, 4)
	for i, p := range rows {
		dx, dy, dz := ratSub(p.X, e.X), ratSub(p.Y, e.Y), ratSub(p.Z, e.Z)
		r[i] = []*big.Rat{dx, dy, dz, ratLift(dx, dy, dz)}
	}
	return -exactSign(r) * o
}

// filteredSign evaluates the determinant in floating point. ok is false when
// the value is too close to zero to trust its sign.
func filteredSign(m [][]float64) (sign int, ok bool) {
	det, perm := detFloat(m)
	bound := filterBound * perm
	switch {
	case det > bound:
		return 1, true
	case det < -bound:
		return -1, true
	case perm == 0:
		return 0, true
	}
	return 0, false
}

// detFloat returns the determinant and the permanent of |m| by cofactor
// expansion along the first row
func detFloat(m [][]float64) (det, perm float64) {
	n := len(m)
	if n == 1 {
		v := m[0][0]
		if v < 0 {
			return v, -v
		}
		return v, v
	}
	sign := 1.0
	for col := 0; col < n; col++ {
		d, p := detFloat(minorFloat(m, col))
		v := m[0][col]
		det += sign * v * d
		if v < 0 {
			v = -v
		}
		perm += v * p
		sign = -sign
	}
	return det, perm
}

func minorFloat(m [][]float64, col int) [][]float64 {
	out := make([][]float64, len(m)-1)
	for i := 1; i < len(m); i++ {
		row := make([]float64, 0, len(m)-1)
		row = append(row, m[i][:col]...)
		row = append(row, m[i][col+1:]...)
		out[i-1] = row
	}
	return out
}

func exactSign(m [][]*big.Rat) int {
	return detRat(m).Sign()
}

func detRat(m [][]*big.Rat) *big.Rat {
	n := len(m)
	if n == 1 {
		return new(big.Rat).Set(m[0][0])
	}
	det := new(big.Rat)
	term := new(big.Rat)
	for col := 0; col < n; col++ {
		minor := make([][]*big.Rat, n-1)
		for i := 1; i < n; i++ {
			row := make([]*big.Rat, 0, n-1)
			row = append(row, m[i][:col]...)
			row = append(row, m[i][col+1:]...)
			minor[i-1] = row
		}
		term.Mul(m[0][col], detRat(minor))
		if col%2 == 0 {
			det.Add(det, term)
		} else {
			det.Sub(det, term)
		}
	}
	return det
}

func ratSub(a, b float64) *big.Rat {
	x := new(big.Rat).SetFloat64(a)
	y := new(big.Rat).SetFloat64(b)
	return x.Sub(x, y)
}

func ratLift(coords ...*big.Rat) *big.Rat {
	sum := new(big.Rat)
	sq := new(big.Rat)
	for _, c := range coords {
		sq.Mul(c, c)
		sum.Add(sum, sq)
	}
	return sum
}
