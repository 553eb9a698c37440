package tetmesh

import (
	"testing"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func points(cands []Candidate) []int {
	out := make([]int, len(cands))
	for i, c := range cands {
		out[i] = c.Point
	}
	return out
}

func TestFindPointsAroundEdgeClosedRing(t *testing.T) {
	x := NewIndex(ringMesh(6))

	cands, ok := x.FindPointsAroundEdge(0, 0, 1)
	require.True(t, ok)
	assert.Equal(t, []int{2, 3, 5, 4}, points(cands))

	for _, c := range cands {
		face := x.Mesh().Tetrahedra[c.Tet].Face(c.Face)
		assert.ElementsMatch(t, []int{0, 1, c.Point}, face[:], "candidate %d", c.Point)
	}
}

func TestFindPointsAroundEdgeStartsAnywhere(t *testing.T) {
	x := NewIndex(ringMesh(6))

	for host := range x.Mesh().Tetrahedra {
		cands, ok := x.FindPointsAroundEdge(host, 1, 0)
		require.True(t, ok)
		assert.ElementsMatch(t, []int{2, 3, 4, 5}, points(cands))
	}
}

func TestFindPointsAroundEdgeOpenFan(t *testing.T) {
	pts := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 1, 0),
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, -1),
	}
	x := NewIndex(New(pts, 5, [][4]int{{0, 1, 2, 3}, {0, 1, 2, 4}}))

	cands, ok := x.FindPointsAroundEdge(0, 0, 1)
	require.True(t, ok)
	assert.Equal(t, []int{2, 3, 4}, points(cands))
}

func TestFindPointsAroundEdgeFiltersSynthetic(t *testing.T) {
	x := NewIndex(ringMesh(4))

	cands, ok := x.FindPointsAroundEdge(0, 0, 1)
	require.True(t, ok)
	assert.ElementsMatch(t, []int{2, 3}, points(cands))
}

func TestFindPointsAroundEdgeStallsOnCorruptAdjacency(t *testing.T) {
	m := ringMesh(6)
	// Point the ring back at itself so the rotation never returns to its start.
	m.Tetrahedra[1].Adj[m.Tetrahedra[1].LocalIndex(4)] = 1
	x := NewIndex(m)
	x.MaxEdgeValence = 8

	cands, ok := x.FindPointsAroundEdge(0, 0, 1)
	assert.False(t, ok)
	assert.Empty(t, cands)
	assert.Equal(t, 1, x.Stalls())
}

func TestFindPointsAroundEdgeStallsOnOneSidedLink(t *testing.T) {
	m := ringMesh(6)
	// Tetrahedron 2 still points at 1 across face (0,1,4), but 1 no longer
	// points back.
	m.Tetrahedra[1].Adj[m.Tetrahedra[1].LocalIndex(3)] = None
	x := NewIndex(m)

	cands, ok := x.FindPointsAroundEdge(0, 0, 1)
	assert.False(t, ok)
	assert.Empty(t, cands)
	assert.Equal(t, 1, x.Stalls())
}

func TestFindPointsAroundEdgeWrongHost(t *testing.T) {
	x := NewIndex(ringMesh(6))

	_, ok := x.FindPointsAroundEdge(0, 2, 4)
	assert.False(t, ok)
	_, ok = x.FindPointsAroundEdge(99, 0, 1)
	assert.False(t, ok)
}

func TestCollectLinkedPoints(t *testing.T) {
	x := NewIndex(ringMesh(6))

	linked := x.CollectLinkedPoints(0, 2)
	assert.Equal(t, []int{0, 1, 3, 5}, points(linked))

	linked = x.CollectLinkedPoints(0, 0)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, points(linked))
	for _, c := range linked {
		face := x.Mesh().Tetrahedra[c.Tet].Face(c.Face)
		assert.Contains(t, face[:], 0)
		assert.Contains(t, face[:], c.Point)
	}

	assert.Nil(t, x.CollectLinkedPoints(1, 2))
}

func TestFindTetWithEdge(t *testing.T) {
	x := NewIndex(ringMesh(6))

	ti := x.FindTetWithEdge(4, 5)
	require.NotEqual(t, None, ti)
	assert.True(t, x.Mesh().Tetrahedra[ti].Contains(4))
	assert.True(t, x.Mesh().Tetrahedra[ti].Contains(5))
	assert.Equal(t, None, x.FindTetWithEdge(2, 4))
}
