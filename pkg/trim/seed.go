package trim

import (
	"sort"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/tetmesh"
)

// seedExtreme starts a new front at the most extreme real point no face
// uses yet: the first face is built over the edge to its nearest linked
// neighbor, in the plane fitted through the neighborhood. It returns false
// when every point has been tried.
func (t *trimmer) seedExtreme() bool {
	for t.seedCursor < len(t.seedOrder) {
		p := t.seedOrder[t.seedCursor]
		t.seedCursor++
		if t.ledger.UsesPoint(p) {
			continue
		}
		host := t.index.PointTetrahedron(p)
		if host == tetmesh.None {
			continue
		}
		linked := t.index.CollectLinkedPoints(host, p)
		if len(linked) == 0 {
			continue
		}

		origin := t.mesh.Points[p]
		sort.SliceStable(linked, func(i, j int) bool {
			di := origin.DistanceSquared(t.mesh.Points[linked[i].Point])
			dj := origin.DistanceSquared(t.mesh.Points[linked[j].Point])
			if di != dj {
				return di < dj
			}
			return linked[i].Point < linked[j].Point
		})

		pts := make([]geometry.Vector3, 0, len(linked)+1)
		pts = append(pts, origin)
		for _, c := range linked {
			pts = append(pts, t.mesh.Points[c.Point])
		}
		var normal geometry.Vector3
		if plane, _, ok := geometry.FitPlaneLeastSquares(pts); ok {
			normal = plane.Normal
		}

		for _, nb := range linked {
			if t.trySeedEdge(p, nb, normal) {
				return true
			}
		}
	}
	return false
}

// trySeedEdge commits the best face over the seed edge (p, nb.Point)
func (t *trimmer) trySeedEdge(p int, nb tetmesh.Candidate, normal geometry.Vector3) bool {
	q := nb.Point
	cands, ok := t.index.FindPointsAroundEdge(nb.Tet, p, q)
	if !ok {
		return false
	}
	for _, c := range t.strategy.Rank(t.query(p, q, NoPoint, normal), cands) {
		if _, ok := t.ledger.AddFixFaceWithEdges(p, q, c.Point, c.Tet, c.Face); !ok {
			t.diag.ManifoldConflicts++
			continue
		}
		t.diag.Seeds++
		t.diag.FacesCommitted++
		t.log.Printf("trim: seed %d face (%d,%d,%d)", t.diag.Seeds, p, q, c.Point)
		t.queueFace([3]int{p, q, c.Point})
		return true
	}
	return false
}
