package trim

import (
	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/tetmesh"
)

// BestCircumcenterStrategy prefers the smallest circumradius of (a, b, d)
// among the candidates visible from the edge, that is projected onto the
// other side of the edge than the apex. Hidden candidates rank last.
type BestCircumcenterStrategy struct{}

func (BestCircumcenterStrategy) Name() string {
	return BestCircumcenter.String()
}

func (BestCircumcenterStrategy) Rank(q Query, cands []tetmesh.Candidate) []tetmesh.Candidate {
	if q.A == q.B || len(cands) == 0 {
		return nil
	}
	f := newFrame(q)
	list := admit(f, cands)
	if len(list) <= 1 {
		return candidates(list)
	}

	var visible, hidden []scored
	var a2, b2 geometry.Vector2
	apexSide := 0
	if f.hasApex {
		a2, b2 = f.project(f.a), f.project(f.b)
		apexSide = geometry.Orient2D(a2, b2, f.project(f.apex))
	}
	for _, s := range list {
		s.score = s.own.RadiusSquared
		if apexSide != 0 {
			side := geometry.Orient2D(a2, b2, f.project(s.pos))
			if side == 0 || side == apexSide {
				hidden = append(hidden, s)
				continue
			}
		}
		visible = append(visible, s)
	}
	byScore(visible)
	byScore(hidden)
	return append(candidates(visible), candidates(hidden)...)
}
