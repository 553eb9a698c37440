package trim

import (
	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/tetmesh"
)

// RetriangulationStrategy triangulates the edge neighborhood in the reference
// plane: a candidate d is preferred when the circle through a, b and d holds
// none of the other candidates. Ties and the remaining candidates fall back
// to circumcenter distance.
type RetriangulationStrategy struct{}

func (RetriangulationStrategy) Name() string {
	return Retriangulation.String()
}

func (RetriangulationStrategy) Rank(q Query, cands []tetmesh.Candidate) []tetmesh.Candidate {
	if q.A == q.B || len(cands) == 0 {
		return nil
	}
	f := newFrame(q)
	list := admit(f, cands)
	if len(list) <= 1 {
		return candidates(list)
	}
	if !f.hasPlane() {
		// Fall back to the plane of the edge and the first candidate.
		n, ok := geometry.PlaneNormalFromThreePoints(f.a, f.b, list[0].pos)
		if ok {
			f.plane = geometry.Plane{Origin: f.a, Normal: n}
			f.u, f.v = f.plane.Basis(f.b.Sub(f.a))
		}
	}

	a2, b2 := f.project(f.a), f.project(f.b)
	proj := make([]geometry.Vector2, len(list))
	for i, s := range list {
		proj[i] = f.project(s.pos)
	}

	var empty, rest []scored
	for i, s := range list {
		s.score = circumcenterScore(f, s)
		ok := geometry.Orient2D(a2, b2, proj[i]) != 0
		for j := range list {
			if !ok {
				break
			}
			if j != i && geometry.InCircle(a2, b2, proj[i], proj[j]) > 0 {
				ok = false
			}
		}
		if ok {
			empty = append(empty, s)
		} else {
			rest = append(rest, s)
		}
	}
	byScore(empty)
	byScore(rest)
	return append(candidates(empty), candidates(rest)...)
}
