package stl

import (
	"github.com/philipparndt/gotrim/pkg/geometry"
)

// Model is the triangle soup of one STL file. Triangles do not share
// vertices; Vertices welds them by exact position.
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle appends a triangle
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Vertices returns the distinct vertex positions in first-use order
func (m *Model) Vertices() []geometry.Vector3 {
	seen := make(map[geometry.Vector3]bool, len(m.Triangles))
	var out []geometry.Vector3
	for _, t := range m.Triangles {
		for _, v := range [3]geometry.Vector3{t.V1, t.V2, t.V3} {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// BoundingBox returns the box around every vertex; empty for an empty model
func (m *Model) BoundingBox() geometry.BoundingBox {
	return geometry.BoundingBoxOf(m.Vertices())
}

// SurfaceArea returns the summed triangle area
func (m *Model) SurfaceArea() float64 {
	total := 0.0
	for _, t := range m.Triangles {
		total += t.Area()
	}
	return total
}
