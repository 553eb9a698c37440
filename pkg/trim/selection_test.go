package trim

import (
	"testing"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/tetmesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStrategies = []Strategy{
	CircumcenterDistanceStrategy{},
	AngleClusterStrategy{},
	RetriangulationStrategy{},
	BestCircumcenterStrategy{},
}

func pointQuery(points []geometry.Vector3, a, b, apex int) Query {
	return Query{
		A:                 a,
		B:                 b,
		Apex:              apex,
		Normal:            geometry.NewVector3(0, 0, 1),
		Points:            points,
		IgnorePtsAfterNum: len(points),
		MaxFoldAngle:      89,
	}
}

func cands(points ...int) []tetmesh.Candidate {
	out := make([]tetmesh.Candidate, len(points))
	for i, p := range points {
		out[i] = tetmesh.Candidate{Point: p, Tet: i, Face: 3}
	}
	return out
}

func TestSingleCandidateFastPath(t *testing.T) {
	points := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0.5, 1, 0),
	}
	for _, s := range allStrategies {
		t.Run(s.Name(), func(t *testing.T) {
			c, ok := SelectCandidate(s, pointQuery(points, 0, 1, NoPoint), cands(2))
			require.True(t, ok)
			assert.Equal(t, tetmesh.Candidate{Point: 2, Tet: 0, Face: 3}, c)
		})
	}
}

func TestCollinearCandidateRejected(t *testing.T) {
	points := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(2, 0, 0),
	}
	assert.True(t, geometry.Circumcenter3D(points[0], points[1], points[2], geometry.Vector3{}).Degenerate)

	for _, s := range allStrategies {
		t.Run(s.Name(), func(t *testing.T) {
			_, ok := SelectCandidate(s, pointQuery(points, 0, 1, NoPoint), cands(2))
			assert.False(t, ok)
		})
	}
}

// delaunayPoints puts an apex above the edge (0,1) and two candidates below
// it; 3 is the Delaunay neighbor, the circle through 0, 1, 4 holds 3
func delaunayPoints() []geometry.Vector3 {
	return []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0.5, 1, 0),
		geometry.NewVector3(0.5, -0.3, 0),
		geometry.NewVector3(0.5, -2, 0),
	}
}

func TestStrategiesPreferDelaunayNeighbor(t *testing.T) {
	points := delaunayPoints()
	for _, s := range allStrategies {
		t.Run(s.Name(), func(t *testing.T) {
			ranked := s.Rank(pointQuery(points, 0, 1, 2), cands(4, 3, 2))
			require.Len(t, ranked, 2)
			assert.Equal(t, 3, ranked[0].Point)
			assert.Equal(t, 4, ranked[1].Point)
		})
	}
}

func TestFoldedCandidatesRejected(t *testing.T) {
	points := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0.5, 1, 0),
		// Same side as the apex: folded flat back onto the previous face.
		geometry.NewVector3(0.5, 0.5, 0),
		// Almost straight up: just past a right angle.
		geometry.NewVector3(0.5, 0.1, 1),
		// Bent down by about 27 degrees.
		geometry.NewVector3(0.5, -1, 0.5),
	}
	ranked := CircumcenterDistanceStrategy{}.Rank(pointQuery(points, 0, 1, 2), cands(3, 4, 5))
	require.Len(t, ranked, 1)
	assert.Equal(t, 5, ranked[0].Point)

	q := pointQuery(points, 0, 1, 2)
	q.MaxFoldAngle = 180
	ranked = CircumcenterDistanceStrategy{}.Rank(q, cands(3, 4, 5))
	assert.Len(t, ranked, 3)
}

func TestAdmissibility(t *testing.T) {
	points := delaunayPoints()

	t.Run("synthetic", func(t *testing.T) {
		q := pointQuery(points, 0, 1, 2)
		q.IgnorePtsAfterNum = 4
		ranked := CircumcenterDistanceStrategy{}.Rank(q, cands(3, 4))
		require.Len(t, ranked, 1)
		assert.Equal(t, 3, ranked[0].Point)
	})

	t.Run("edge length", func(t *testing.T) {
		q := pointQuery(points, 0, 1, 2)
		q.MaxEdgeLength = 1.5
		ranked := CircumcenterDistanceStrategy{}.Rank(q, cands(3, 4))
		require.Len(t, ranked, 1)
		assert.Equal(t, 3, ranked[0].Point)
	})

	t.Run("endpoints and duplicates", func(t *testing.T) {
		ranked := CircumcenterDistanceStrategy{}.Rank(pointQuery(points, 0, 1, 2), cands(0, 1, 3, 3))
		require.Len(t, ranked, 1)
		assert.Equal(t, 3, ranked[0].Point)
	})

	t.Run("degenerate edge", func(t *testing.T) {
		assert.Empty(t, CircumcenterDistanceStrategy{}.Rank(pointQuery(points, 1, 1, 2), cands(3)))
	})
}

func TestSeedScoreUsesMidpoint(t *testing.T) {
	// Without an apex the circumcenter closest to the edge midpoint wins:
	// the right triangle over (0,1) has its circumcenter exactly there.
	points := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(2, 0, 0),
		geometry.NewVector3(1, 1, 0),
		geometry.NewVector3(1, 3, 0),
	}
	ranked := CircumcenterDistanceStrategy{}.Rank(pointQuery(points, 0, 1, NoPoint), cands(3, 2))
	require.Len(t, ranked, 2)
	assert.Equal(t, 2, ranked[0].Point)
}

func TestBestCircumcenterVisibility(t *testing.T) {
	// 3 has the smaller circle but lies on the apex side of the edge.
	points := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0.5, 2, 0.1),
		geometry.NewVector3(0.5, 0.5, 0.8),
		geometry.NewVector3(0.5, -3, 0),
	}
	q := pointQuery(points, 0, 1, 2)
	q.MaxFoldAngle = 180
	ranked := BestCircumcenterStrategy{}.Rank(q, cands(3, 4))
	require.Len(t, ranked, 2)
	assert.Equal(t, 4, ranked[0].Point)
}

func TestAngleClusterPrefersFlatCluster(t *testing.T) {
	// 3 continues the face flat but far away; 4 is close but bent by about
	// 45 degrees. Plain circumcenter distance takes 4, clustering takes 3.
	points := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0.5, 1, 0),
		geometry.NewVector3(0.5, -3, 0),
		geometry.NewVector3(0.5, -0.6, -0.6),
	}
	q := pointQuery(points, 0, 1, 2)

	ranked := AngleClusterStrategy{Tolerance: 10}.Rank(q, cands(3, 4))
	require.Len(t, ranked, 2)
	assert.Equal(t, 3, ranked[0].Point)

	ranked = CircumcenterDistanceStrategy{}.Rank(q, cands(3, 4))
	require.Len(t, ranked, 2)
	assert.Equal(t, 4, ranked[0].Point)
}

func TestNewStrategy(t *testing.T) {
	for kind, name := range strategyNames {
		s, err := NewStrategy(kind)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}
	_, err := NewStrategy(StrategyKind(42))
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
