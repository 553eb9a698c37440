package trim

import (
	"math"
	"sort"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/tetmesh"
)

// NoPoint marks a query without a previous face
const NoPoint = -1

var zeroVector geometry.Vector3

// Query is one face selection request: find the point d closing a new face
// over edge (A, B) on the side away from Apex.
type Query struct {
	A, B int
	// Apex closed the previous face over the edge, NoPoint for a seed edge
	Apex int
	// Normal is the reference plane normal used when there is no apex
	Normal geometry.Vector3

	Points            []geometry.Vector3
	IgnorePtsAfterNum int
	MaxEdgeLength     float64
	// MaxFoldAngle in degrees
	MaxFoldAngle float64
}

// Strategy ranks the candidates of a query, best first. An empty result
// means no candidate is acceptable.
type Strategy interface {
	Name() string
	Rank(q Query, cands []tetmesh.Candidate) []tetmesh.Candidate
}

// NewStrategy returns the strategy implementation for kind
func NewStrategy(kind StrategyKind) (Strategy, error) {
	switch kind {
	case CircumcenterDistance:
		return CircumcenterDistanceStrategy{}, nil
	case AngleCluster:
		return AngleClusterStrategy{Tolerance: DefaultClusterTolerance}, nil
	case Retriangulation:
		return RetriangulationStrategy{}, nil
	case BestCircumcenter:
		return BestCircumcenterStrategy{}, nil
	}
	return nil, ErrUnknownStrategy
}

// SelectCandidate returns the best candidate of s, if any
func SelectCandidate(s Strategy, q Query, cands []tetmesh.Candidate) (tetmesh.Candidate, bool) {
	ranked := s.Rank(q, cands)
	if len(ranked) == 0 {
		return tetmesh.Candidate{}, false
	}
	return ranked[0], true
}

// frame is the geometry shared by every candidate of a query
type frame struct {
	q    Query
	a, b geometry.Vector3
	axis geometry.Vector3

	// plane is the reference plane through a; plane.Normal is zero when no
	// reference plane exists and each candidate uses its own plane
	plane geometry.Plane
	u, v  geometry.Vector3

	hasApex bool
	apex    geometry.Vector3
	apexDir geometry.Vector3
	apexCC  geometry.Circumcircle
}

func newFrame(q Query) frame {
	f := frame{q: q, a: q.Points[q.A], b: q.Points[q.B]}
	f.axis = f.b.Sub(f.a).Normalize()

	normal := q.Normal
	if q.Apex != NoPoint {
		c := q.Points[q.Apex]
		if n, ok := geometry.PlaneNormalFromThreePoints(f.a, f.b, c); ok {
			f.hasApex = true
			f.apex = c
			f.apexDir = c.Sub(f.a).RejectFrom(f.axis)
			f.apexCC = geometry.Circumcenter3D(f.a, f.b, c, n)
			normal = n
		}
	}
	if normal.Length() > 0 {
		f.plane = geometry.Plane{Origin: f.a, Normal: normal.Normalize()}
		f.u, f.v = f.plane.Basis(f.b.Sub(f.a))
	}
	return f
}

func (f frame) hasPlane() bool {
	return f.plane.Normal.Length() > 0
}

// fold returns, in degrees, how far the face (a, b, d) turns away from
// continuing the previous face flat. Without an apex it is the elevation of
// d over the reference plane.
func (f frame) fold(d geometry.Vector3) float64 {
	w := d.Sub(f.a).RejectFrom(f.axis)
	if f.hasApex {
		return 180 - f.apexDir.AngleTo(w)*180/math.Pi
	}
	if !f.hasPlane() || w.Length() == 0 {
		return 0
	}
	return math.Abs(90 - f.plane.Normal.AngleTo(w)*180/math.Pi)
}

func (f frame) project(p geometry.Vector3) geometry.Vector2 {
	return f.plane.To2D(p, f.u, f.v)
}

// scored is an admissible candidate with the measures strategies rank by
type scored struct {
	cand tetmesh.Candidate
	pos  geometry.Vector3
	// cc is the circumcircle of (a, b, d) in the reference plane, or in the
	// candidate's own plane when there is none
	cc    geometry.Circumcircle
	own   geometry.Circumcircle
	fold  float64
	score float64
}

// admit drops the apex, the edge endpoints, synthetic and duplicate points,
// candidates out of edge-length range, degenerate triangles and candidates
// folded back beyond the limit
func admit(f frame, cands []tetmesh.Candidate) []scored {
	q := f.q
	out := make([]scored, 0, len(cands))
	seen := make(map[int]bool, len(cands))
	for _, c := range cands {
		p := c.Point
		if p == q.A || p == q.B || p == q.Apex || p < 0 || p >= len(q.Points) || p >= q.IgnorePtsAfterNum || seen[p] {
			continue
		}
		d := q.Points[p]
		if q.MaxEdgeLength > 0 && (d.Distance(f.a) > q.MaxEdgeLength || d.Distance(f.b) > q.MaxEdgeLength) {
			continue
		}
		own := geometry.Circumcenter3D(f.a, f.b, d, geometry.Vector3{})
		if own.Degenerate {
			continue
		}
		cc := own
		if f.hasPlane() {
			cc = geometry.Circumcenter3D(f.a, f.b, d, f.plane.Normal)
			if cc.Degenerate {
				continue
			}
		}
		fold := f.fold(d)
		if f.hasApex && fold > q.MaxFoldAngle {
			continue
		}
		seen[p] = true
		out = append(out, scored{cand: c, pos: d, cc: cc, own: own, fold: fold})
	}
	return out
}

// circumcenterScore is the distance between the circumcenter of the previous
// face and the one of (a, b, d), both in the previous face's plane, weighted
// by the fold. Seed edges measure from the edge midpoint instead.
func circumcenterScore(f frame, s scored) float64 {
	if f.hasApex && !f.apexCC.Degenerate {
		return s.cc.Center.Distance(f.apexCC.Center) * (1 + s.fold*math.Pi/180)
	}
	mid := f.a.Midpoint(f.b)
	if f.hasPlane() {
		mid = f.plane.ProjectPoint(mid)
	}
	return s.cc.Center.Distance(mid)
}

// byScore orders by ascending score, then point index
func byScore(list []scored) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score < list[j].score
		}
		return list[i].cand.Point < list[j].cand.Point
	})
}

func candidates(list []scored) []tetmesh.Candidate {
	out := make([]tetmesh.Candidate, len(list))
	for i, s := range list {
		out[i] = s.cand
	}
	return out
}

// rankWith admits the candidates and orders them by score. A single
// admissible candidate is returned without scoring.
func rankWith(q Query, cands []tetmesh.Candidate, score func(frame, scored) float64) []tetmesh.Candidate {
	if q.A == q.B || len(cands) == 0 {
		return nil
	}
	f := newFrame(q)
	list := admit(f, cands)
	if len(list) <= 1 {
		return candidates(list)
	}
	for i := range list {
		list[i].score = score(f, list[i])
	}
	byScore(list)
	return candidates(list)
}
