package trim

import "github.com/philipparndt/gotrim/pkg/tetmesh"

// CircumcenterDistanceStrategy picks the candidate whose circumcenter over the
// edge lies closest to the circumcenter of the previous face. In a flat
// Delaunay neighborhood this is the Delaunay neighbor across the edge.
type CircumcenterDistanceStrategy struct{}

func (CircumcenterDistanceStrategy) Name() string {
	return CircumcenterDistance.String()
}

func (CircumcenterDistanceStrategy) Rank(q Query, cands []tetmesh.Candidate) []tetmesh.Candidate {
	return rankWith(q, cands, circumcenterScore)
}
