package trim

import (
	"sort"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/tetmesh"
)

// gridTriangles splits each cell of a 3x3 point grid (index y*3+x) along
// its lower-left to upper-right diagonal
var gridTriangles = [][3]int{
	{0, 1, 4}, {0, 4, 3},
	{1, 2, 5}, {1, 5, 4},
	{3, 4, 7}, {3, 7, 6},
	{4, 5, 8}, {4, 8, 7},
}

// gridMesh cones the grid triangles to one synthetic point above the grid.
// xs sets the three column coordinates.
func gridMesh(xs [3]float64) *tetmesh.Tetrahedralization {
	var points []geometry.Vector3
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			points = append(points, geometry.NewVector3(xs[x], float64(y), 0))
		}
	}
	points = append(points, geometry.NewVector3(xs[1], 1, 5))

	tets := make([][4]int, len(gridTriangles))
	for i, tri := range gridTriangles {
		tets[i] = [4]int{tri[0], tri[1], tri[2], 9}
	}
	return tetmesh.New(points, 9, tets)
}

func unitGrid() *tetmesh.Tetrahedralization {
	return gridMesh([3]float64{0, 1, 2})
}

// sliverMesh is a regular triangle next to a nearly flat one across (0, 1)
func sliverMesh() *tetmesh.Tetrahedralization {
	points := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(2, 0, 0),
		geometry.NewVector3(1, 1, 0),
		geometry.NewVector3(1, -0.01, 0),
		geometry.NewVector3(1, 0, 5),
	}
	return tetmesh.New(points, 4, [][4]int{
		{0, 1, 2, 4},
		{1, 0, 3, 4},
	})
}

// fanMesh is four tetrahedra around the edge (0, 1), all points real
func fanMesh() *tetmesh.Tetrahedralization {
	points := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(1, 0, 0.5),
		geometry.NewVector3(0, 1, 0.5),
		geometry.NewVector3(-1, 0, 0.5),
		geometry.NewVector3(0, -1, 0.5),
	}
	return tetmesh.New(points, 6, [][4]int{
		{0, 1, 2, 3},
		{0, 1, 3, 4},
		{0, 1, 4, 5},
		{0, 1, 5, 2},
	})
}

// faceSet returns the emitted triangles as sorted source index triples
func faceSet(m *Mesh) [][3]int {
	out := make([][3]int, m.TriangleCount())
	for i := range out {
		f := m.Face(i)
		tri := [3]int{m.SourceIndex[f[0]], m.SourceIndex[f[1]], m.SourceIndex[f[2]]}
		sort.Ints(tri[:])
		out[i] = tri
	}
	sortTriples(out)
	return out
}

func sortTriples(list [][3]int) {
	sort.Slice(list, func(i, j int) bool {
		for k := 0; k < 3; k++ {
			if list[i][k] != list[j][k] {
				return list[i][k] < list[j][k]
			}
		}
		return false
	})
}

func sortedTriples(list [][3]int) [][3]int {
	out := make([][3]int, len(list))
	for i, tri := range list {
		sort.Ints(tri[:])
		out[i] = tri
	}
	sortTriples(out)
	return out
}
