package trim

import (
	"sort"

	"github.com/philipparndt/gotrim/pkg/tetmesh"
)

// DefaultClusterTolerance is the fold spread in degrees of one angle cluster
const DefaultClusterTolerance = 15.0

// AngleClusterStrategy groups candidates by fold angle and prefers the
// flattest cluster, ranking inside a cluster by circumcenter distance. It
// copes better than plain circumcenter distance with noisy, dense shells
// where several layers of points sit across one edge.
type AngleClusterStrategy struct {
	Tolerance float64
}

func (AngleClusterStrategy) Name() string {
	return AngleCluster.String()
}

func (s AngleClusterStrategy) Rank(q Query, cands []tetmesh.Candidate) []tetmesh.Candidate {
	if q.A == q.B || len(cands) == 0 {
		return nil
	}
	f := newFrame(q)
	list := admit(f, cands)
	if len(list) <= 1 {
		return candidates(list)
	}

	tol := s.Tolerance
	if tol <= 0 {
		tol = DefaultClusterTolerance
	}

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].fold != list[j].fold {
			return list[i].fold < list[j].fold
		}
		return list[i].cand.Point < list[j].cand.Point
	})

	// Walk the sorted folds and start a new cluster at every gap wider than
	// the tolerance.
	cluster := make([]int, len(list))
	for i := 1; i < len(list); i++ {
		cluster[i] = cluster[i-1]
		if list[i].fold-list[i-1].fold > tol {
			cluster[i]++
		}
	}
	for i := range list {
		list[i].score = circumcenterScore(f, list[i])
	}

	order := make([]int, len(list))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := list[order[i]], list[order[j]]
		if cluster[order[i]] != cluster[order[j]] {
			return cluster[order[i]] < cluster[order[j]]
		}
		if a.score != b.score {
			return a.score < b.score
		}
		return a.cand.Point < b.cand.Point
	})

	out := make([]tetmesh.Candidate, len(order))
	for i, idx := range order {
		out[i] = list[idx].cand
	}
	return out
}
