package tetmesh

import (
	"errors"
	"testing"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ringMesh is four tetrahedra fanned around the edge (0, 1)
func ringMesh(ignoreAfter int) *Tetrahedralization {
	points := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(1, 0, 0.5),
		geometry.NewVector3(0, 1, 0.5),
		geometry.NewVector3(-1, 0, 0.5),
		geometry.NewVector3(0, -1, 0.5),
	}
	return New(points, ignoreAfter, [][4]int{
		{0, 1, 2, 3},
		{0, 1, 3, 4},
		{0, 1, 4, 5},
		{0, 1, 5, 2},
	})
}

func TestBuildAdjacencyRing(t *testing.T) {
	m := ringMesh(6)
	require.NoError(t, m.Validate())

	// Face (0,1,3) of tetrahedron 0 is opposite local vertex 2.
	assert.Equal(t, 1, m.Tetrahedra[0].Adj[2])
	// Face (0,1,2) of tetrahedron 0 is opposite local vertex 3.
	assert.Equal(t, 3, m.Tetrahedra[0].Adj[3])
	// Faces without the edge lie on the hull.
	assert.Equal(t, None, m.Tetrahedra[0].Adj[0])
	assert.True(t, m.Tetrahedra[0].IsHull())
}

func TestBuildPointIndex(t *testing.T) {
	m := ringMesh(6)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 2}, m.PointTet)
}

func TestTetrahedronFace(t *testing.T) {
	tet := NewTetrahedron(10, 11, 12, 13)
	assert.Equal(t, [3]int{11, 12, 13}, tet.Face(0))
	assert.Equal(t, [3]int{10, 11, 12}, tet.Face(3))
	assert.Equal(t, 2, tet.LocalIndex(12))
	assert.Equal(t, -1, tet.LocalIndex(99))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Tetrahedralization)
	}{
		{"vertex out of range", func(m *Tetrahedralization) { m.Tetrahedra[0].V[0] = 42 }},
		{"repeated vertex", func(m *Tetrahedralization) { m.Tetrahedra[0].V[1] = 0 }},
		{"adjacency out of range", func(m *Tetrahedralization) { m.Tetrahedra[0].Adj[0] = 7 }},
		{"adjacency without shared face", func(m *Tetrahedralization) { m.Tetrahedra[0].Adj[3] = 2 }},
		{"non reciprocal adjacency", func(m *Tetrahedralization) { m.Tetrahedra[3].Adj[2] = None }},
		{"ignore index out of range", func(m *Tetrahedralization) { m.IgnorePtsAfterNum = 7 }},
		{"point index mismatch", func(m *Tetrahedralization) { m.PointTet[4] = 3 }},
		{"point index size", func(m *Tetrahedralization) { m.PointTet = m.PointTet[:2] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ringMesh(6)
			tt.mutate(m)
			err := m.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTetrahedralization))
		})
	}
}

func TestRealPointCount(t *testing.T) {
	m := ringMesh(4)
	assert.Equal(t, 4, m.RealPointCount())
	assert.True(t, m.IsSynthetic(4))
	assert.False(t, m.IsSynthetic(3))
}
