package trim

import (
	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/ledger"
	"github.com/philipparndt/gotrim/pkg/stl"
	"github.com/philipparndt/gotrim/pkg/tetmesh"
)

// Mesh is the emitted surface. Indices holds three 1-based references into
// Points per triangle; SourceIndex maps every output point back to its index
// in the tetrahedralization.
type Mesh struct {
	Points      []geometry.Vector3
	Indices     []int
	SourceIndex []int
}

// Emit renumbers the points used by the live fixed faces densely in
// first-use order. With orient set, triangles whose normal points away from
// the least-squares normal of the used points are flipped.
func Emit(mesh *tetmesh.Tetrahedralization, l *ledger.Ledger, orient bool) *Mesh {
	out := &Mesh{}
	remap := make(map[int]int)
	for _, id := range l.FixedFaces() {
		f, _ := l.Face(id)
		for _, v := range f.V {
			idx, ok := remap[v]
			if !ok {
				out.Points = append(out.Points, mesh.Points[v])
				out.SourceIndex = append(out.SourceIndex, v)
				idx = len(out.Points)
				remap[v] = idx
			}
			out.Indices = append(out.Indices, idx)
		}
	}
	if orient {
		out.Orient()
	}
	return out
}

// Orient flips every triangle whose normal disagrees with the least-squares
// plane normal of the mesh points. It returns the number of flipped
// triangles.
func (m *Mesh) Orient() int {
	plane, _, ok := geometry.FitPlaneLeastSquares(m.Points)
	if !ok {
		return 0
	}
	flipped := 0
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tri := m.Triangle(i / 3)
		if tri.CalculateNormal().Dot(plane.Normal) < 0 {
			m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
			flipped++
		}
	}
	return flipped
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Face returns the 0-based point positions of triangle i
func (m *Mesh) Face(i int) [3]int {
	return [3]int{m.Indices[3*i] - 1, m.Indices[3*i+1] - 1, m.Indices[3*i+2] - 1}
}

// SourceFaces returns every triangle as indices into the tetrahedralization
func (m *Mesh) SourceFaces() [][3]int {
	faces := make([][3]int, m.TriangleCount())
	for i := range faces {
		f := m.Face(i)
		faces[i] = [3]int{m.SourceIndex[f[0]], m.SourceIndex[f[1]], m.SourceIndex[f[2]]}
	}
	return faces
}

// Triangle returns triangle i with its normal computed from the winding
func (m *Mesh) Triangle(i int) geometry.Triangle {
	f := m.Face(i)
	tri := geometry.Triangle{V1: m.Points[f[0]], V2: m.Points[f[1]], V3: m.Points[f[2]]}
	tri.Normal = tri.CalculateNormal()
	return tri
}

// ToModel converts the mesh into an STL model
func (m *Mesh) ToModel(name string) *stl.Model {
	model := stl.NewModel(name)
	for i := 0; i < m.TriangleCount(); i++ {
		model.AddTriangle(m.Triangle(i))
	}
	return model
}
