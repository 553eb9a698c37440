package trim

import (
	"github.com/philipparndt/gotrim/pkg/ledger"
	"github.com/philipparndt/gotrim/pkg/tetmesh"
)

// frontEdge is an open edge of the surface. The fixed face (B, A, Apex)
// winds A->B; the face closing the edge must wind B->A.
type frontEdge struct {
	A, B int
	Apex int
}

// run is a chain of front edges where each edge starts at the end of the
// previous one
type run struct {
	edges  []frontEdge
	closed bool
}

func (r run) vertices() map[int]bool {
	out := make(map[int]bool, len(r.edges)+1)
	for _, e := range r.edges {
		out[e.A] = true
		out[e.B] = true
	}
	return out
}

// chainRuns links the queued edges of a pass into runs, keeping queue order
// for the edge that starts each run
func chainRuns(edges []frontEdge) []run {
	byStart := make(map[int][]int)
	byEnd := make(map[int][]int)
	for i, e := range edges {
		byStart[e.A] = append(byStart[e.A], i)
		byEnd[e.B] = append(byEnd[e.B], i)
	}
	used := make([]bool, len(edges))
	take := func(m map[int][]int, key int) int {
		for _, i := range m[key] {
			if !used[i] {
				used[i] = true
				return i
			}
		}
		return -1
	}

	var runs []run
	for i := range edges {
		if used[i] {
			continue
		}
		used[i] = true
		chain := []frontEdge{edges[i]}
		for chain[len(chain)-1].B != chain[0].A {
			j := take(byStart, chain[len(chain)-1].B)
			if j < 0 {
				break
			}
			chain = append(chain, edges[j])
		}
		for chain[len(chain)-1].B != chain[0].A {
			j := take(byEnd, chain[0].A)
			if j < 0 {
				break
			}
			chain = append([]frontEdge{edges[j]}, chain...)
		}
		runs = append(runs, run{edges: chain, closed: chain[len(chain)-1].B == chain[0].A})
	}
	return runs
}

type outcome int

const (
	// advanced: a new face was committed over the edge
	advanced outcome = iota
	// covered: the edge already has two faces, or its face is gone
	covered
	// exhausted: no admissible candidate or the walk stalled
	exhausted
	// conflicted: every candidate would break the manifold invariant
	conflicted
)

// step is the result of closing one front edge
type step struct {
	outcome outcome
	point   int
}

// advance closes front edge e with the best admissible face
func (t *trimmer) advance(e frontEdge) step {
	l := t.ledger
	if rec, ok := l.Edge(e.A, e.B); ok {
		if rec.Count >= 2 {
			l.SetEdgeState(e.A, e.B, ledger.Done)
			return step{outcome: covered, point: NoPoint}
		}
		if rec.State == ledger.Rejected {
			return step{outcome: exhausted, point: NoPoint}
		}
	}

	// The face behind the edge was removed after the edge was queued; a
	// live face on the edge, if any, has a front edge of its own.
	if _, ok := l.FixedFaceOnEdge(e.A, e.B, e.Apex); !ok {
		return step{outcome: covered, point: NoPoint}
	}

	cands, ok := t.index.FindPointsAroundEdge(t.hostTet(e.A, e.B), e.A, e.B)
	if !ok {
		t.log.Printf("trim: walk around edge %v stalled", ledger.MakeEdgeKey(e.A, e.B))
		return step{outcome: exhausted, point: NoPoint}
	}

	ranked := t.strategy.Rank(t.query(e.A, e.B, e.Apex, zeroVector), cands)
	if len(ranked) == 0 {
		return step{outcome: exhausted, point: NoPoint}
	}
	for _, c := range ranked {
		if l.IsFaceMarked(c.Tet, c.Face) {
			continue
		}
		if _, ok := l.AddFixFaceWithEdges(e.B, e.A, c.Point, c.Tet, c.Face); !ok {
			t.diag.ManifoldConflicts++
			continue
		}
		t.diag.FacesCommitted++
		return step{outcome: advanced, point: c.Point}
	}
	return step{outcome: conflicted, point: NoPoint}
}

// successors returns the two new front edges of the face committed over e
func successors(e frontEdge, s step) [2]frontEdge {
	return [2]frontEdge{
		{A: e.A, B: s.point, Apex: e.B},
		{A: s.point, B: e.B, Apex: e.A},
	}
}

// pinched reports whether the face committed over e touched the front at a
// point without closing against it, which makes the front loop onto itself
func (t *trimmer) pinched(e frontEdge, s step, front map[int]bool) bool {
	if !front[s.point] {
		return false
	}
	return t.ledger.GetEdgeCount(e.A, s.point) < 2 && t.ledger.GetEdgeCount(s.point, e.B) < 2
}

// enqueue schedules an open edge for the next pass
func (t *trimmer) enqueue(e frontEdge) {
	if t.ledger.GetEdgeCount(e.A, e.B) != 1 {
		return
	}
	if rec, _ := t.ledger.Edge(e.A, e.B); rec.State == ledger.Rejected {
		return
	}
	k := ledger.MakeEdgeKey(e.A, e.B)
	if t.queued[k] {
		return
	}
	t.queued[k] = true
	t.ledger.SetEdgeState(e.A, e.B, ledger.Queued)
	t.next = append(t.next, e)
}

// reject leaves the edge open for good
func (t *trimmer) reject(e frontEdge) {
	rec, _ := t.ledger.Edge(e.A, e.B)
	if rec.State == ledger.Rejected || rec.Count >= 2 {
		return
	}
	t.ledger.SetEdgeState(e.A, e.B, ledger.Rejected)
	t.diag.Rejected++
}

// retry requeues the edge until its retry budget is spent
func (t *trimmer) retry(e frontEdge) {
	if t.ledger.GetEdgeCount(e.A, e.B) >= 2 {
		return
	}
	if t.ledger.BumpRetries(e.A, e.B) > t.cfg.MaxEdgeRetries {
		t.reject(e)
		return
	}
	if t.ledger.GetEdgeCount(e.A, e.B) == 0 {
		// Rolled back together with its face; nothing left to close.
		return
	}
	t.enqueue(e)
}

// settle applies a forward step
func (t *trimmer) settle(e frontEdge, s step) {
	switch s.outcome {
	case advanced:
		for _, n := range successors(e, s) {
			t.enqueue(n)
		}
	case exhausted:
		t.reject(e)
	case conflicted:
		t.retry(e)
	}
}

// scanRun closes the edges of r front to back. When the front pinches, the
// rest of the run is closed back to front by backwardScan.
func (t *trimmer) scanRun(r run) {
	front := r.vertices()
	n := len(r.edges)
	for i := 0; i < n; i++ {
		e := r.edges[i]
		s := t.advance(e)
		t.settle(e, s)
		if s.outcome != advanced {
			continue
		}
		pinch := t.pinched(e, s, front)
		front[s.point] = true
		if pinch && i < n-1 {
			t.diag.LoopEvents++
			t.backwardScan(r, i, front)
			return
		}
	}
}

// backwardScan closes r.edges[stop+1:] from the far end inside a ledger
// transaction. Meeting the forward position commits the scan. A stall, a
// manifold conflict, a second pinch or the step cap discards every face of
// the scan and requeues the segment against its retry budget.
func (t *trimmer) backwardScan(r run, stop int, front map[int]bool) {
	t.diag.BackwardScans++
	tx, err := t.ledger.Begin()
	if err != nil {
		for _, e := range r.edges[stop+1:] {
			t.retry(e)
		}
		return
	}

	type settled struct {
		e frontEdge
		s step
	}
	var done []settled
	ok := true
	steps := 0
	for j := len(r.edges) - 1; j > stop; j-- {
		if t.cfg.MaxBackwardSteps > 0 && steps >= t.cfg.MaxBackwardSteps {
			ok = false
			break
		}
		steps++
		e := r.edges[j]
		s := t.advance(e)
		if s.outcome == conflicted {
			ok = false
			break
		}
		done = append(done, settled{e, s})
		if s.outcome != advanced {
			continue
		}
		pinch := t.pinched(e, s, front)
		front[s.point] = true
		if pinch {
			t.diag.LoopEvents++
			ok = false
			break
		}
	}

	if ok {
		tx.Commit()
		for _, d := range done {
			t.settle(d.e, d.s)
		}
		return
	}

	rolled := len(tx.Added())
	tx.Rollback()
	t.diag.FacesCommitted -= rolled
	t.diag.BackwardRollbacks++
	t.log.Printf("trim: backward scan over %d edges rolled back %d faces", len(r.edges)-stop-1, rolled)
	for _, e := range r.edges[stop+1:] {
		t.retry(e)
	}
}

// seedCallerFaces commits the caller's faces and queues their edges
func (t *trimmer) seedCallerFaces(faces [][3]int) {
	for _, f := range faces {
		tet, local := t.locateFace(f)
		if _, ok := t.ledger.AddFixFaceWithEdges(f[0], f[1], f[2], tet, local); !ok {
			t.diag.ManifoldConflicts++
			t.log.Printf("trim: seed face %v refused", f)
			continue
		}
		t.diag.Seeds++
		t.diag.FacesCommitted++
		t.queueFace(f)
	}
}

// queueFace queues the three edges of a new face (a, b, c) winding a->b->c
func (t *trimmer) queueFace(f [3]int) {
	for i := 0; i < 3; i++ {
		t.enqueue(frontEdge{A: f[i], B: f[(i+1)%3], Apex: f[(i+2)%3]})
	}
}

// hostTet returns a tetrahedron containing edge (a, b): the one that owns the
// edge in the ledger, or the first found around a
func (t *trimmer) hostTet(a, b int) int {
	if rec, ok := t.ledger.Edge(a, b); ok && rec.OwnerTet != tetmesh.None {
		return rec.OwnerTet
	}
	return t.index.FindTetWithEdge(a, b)
}

// locateFace finds the tetrahedron face matching f, or None
func (t *trimmer) locateFace(f [3]int) (tet, local int) {
	host := t.index.FindTetWithEdge(f[0], f[1])
	if host == tetmesh.None {
		return tetmesh.None, 0
	}
	cands, ok := t.index.FindPointsAroundEdge(host, f[0], f[1])
	if !ok {
		return tetmesh.None, 0
	}
	for _, c := range cands {
		if c.Point == f[2] {
			return c.Tet, c.Face
		}
	}
	return tetmesh.None, 0
}
