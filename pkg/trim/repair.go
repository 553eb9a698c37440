package trim

import "github.com/philipparndt/gotrim/pkg/ledger"

// repairNonManifold removes faces from every edge used three or more times
// until two remain. The face removed first is the one whose other two edges
// are most often boundary edges, newest first on ties.
func (t *trimmer) repairNonManifold() {
	l := t.ledger
	for _, k := range l.NonManifoldEdges() {
		t.log.Printf("trim: edge %v used %d times", k, l.GetEdgeCount(k.Lo, k.Hi))
		for l.GetEdgeCount(k.Lo, k.Hi) > 2 {
			faces := l.FacesOnEdge(k.Lo, k.Hi)
			if len(faces) <= 2 {
				break
			}
			l.RemoveFaceWithEdges(t.repairVictim(k, faces))
			t.diag.NonManifoldRepaired++
		}
	}
}

func (t *trimmer) repairVictim(k ledger.EdgeKey, faces []ledger.FaceID) ledger.FaceID {
	victim := ledger.NoFace
	best := -1
	for _, id := range faces {
		f, _ := t.ledger.Face(id)
		loose := 0
		for i := 0; i < 3; i++ {
			a, b := f.Edge(i)
			if ledger.MakeEdgeKey(a, b) == k {
				continue
			}
			if t.ledger.OtherFace(id, a, b) == ledger.NoFace {
				loose++
			}
		}
		if loose > best || (loose == best && id > victim) {
			best = loose
			victim = id
		}
	}
	return victim
}
