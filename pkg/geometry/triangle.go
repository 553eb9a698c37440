package geometry

import (
	"math"
	"sort"
)

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// CalculateNormal computes the unit normal from the vertex winding
func (t Triangle) CalculateNormal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Length() / 2.0
}

// EdgeLengths returns the lengths of V1-V2, V2-V3 and V3-V1
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// LongestEdge returns the length of the longest edge
func (t Triangle) LongestEdge() float64 {
	l := t.EdgeLengths()
	return math.Max(l[0], math.Max(l[1], l[2]))
}

// SliverRatio measures how far the triangle is from collapsing onto its longest
// edge: (l0+l1-l2)/l2 with the edge lengths sorted ascending. Zero means the
// three vertices are collinear; an equilateral triangle gives 1.
func (t Triangle) SliverRatio() float64 {
	l := t.EdgeLengths()
	s := l[:]
	sort.Float64s(s)
	if s[2] == 0 {
		return 0
	}
	return (s[0] + s[1] - s[2]) / s[2]
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Angles returns the interior angles in degrees at V1, V2 and V3
func (t Triangle) Angles() [3]float64 {
	deg := 180 / math.Pi
	return [3]float64{
		t.V2.Sub(t.V1).AngleTo(t.V3.Sub(t.V1)) * deg,
		t.V3.Sub(t.V2).AngleTo(t.V1.Sub(t.V2)) * deg,
		t.V1.Sub(t.V3).AngleTo(t.V2.Sub(t.V3)) * deg,
	}
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// Flipped returns the triangle with reversed winding and negated normal
func (t Triangle) Flipped() Triangle {
	return Triangle{Normal: t.Normal.Mul(-1), V1: t.V1, V2: t.V3, V3: t.V2}
}
