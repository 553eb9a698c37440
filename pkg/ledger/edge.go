// Package ledger records every trimming decision: how many selected faces use
// each edge, which faces are fixed into the output surface and which
// tetrahedron faces they came from.
package ledger

import (
	"fmt"
	"sort"
)

// EdgeKey is an undirected edge with Lo <= Hi, so (a,b) and (b,a) share an entry
type EdgeKey struct {
	Lo, Hi int
}

// MakeEdgeKey canonicalizes the edge (a, b)
func MakeEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{Lo: a, Hi: b}
}

func (k EdgeKey) String() string {
	return fmt.Sprintf("(%d,%d)", k.Lo, k.Hi)
}

// EdgeState is the advancing-front state of an edge
type EdgeState int

const (
	Unvisited EdgeState = iota
	Queued
	Resolved
	Done
	Rejected
)

func (s EdgeState) String() string {
	switch s {
	case Unvisited:
		return "unvisited"
	case Queued:
		return "queued"
	case Resolved:
		return "resolved"
	case Done:
		return "done"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("EdgeState(%d)", int(s))
}

// EdgeRecord is the ledger entry of one edge. Entries are never deleted; a
// count can drop back to zero.
type EdgeRecord struct {
	Count    int
	OwnerTet int
	State    EdgeState
	Retries  int
}

// IncrementEdge adds one face use to (a, b) and returns the new count. An
// edge used twice is marked Done.
func (l *Ledger) IncrementEdge(a, b, ownerTet int) int {
	r := l.record(a, b)
	r.Count++
	if ownerTet >= 0 {
		r.OwnerTet = ownerTet
	}
	if r.Count >= 2 {
		r.State = Done
	}
	return r.Count
}

// DecrementEdge removes one face use from (a, b) and returns the new count.
// A Done edge that drops below two uses becomes Resolved again.
func (l *Ledger) DecrementEdge(a, b int) int {
	r, ok := l.edges[MakeEdgeKey(a, b)]
	if !ok || r.Count == 0 {
		return 0
	}
	r.Count--
	if r.Count < 2 && r.State == Done {
		r.State = Resolved
	}
	return r.Count
}

// GetEdgeCount returns how many fixed faces use (a, b), 0 when unknown
func (l *Ledger) GetEdgeCount(a, b int) int {
	if r, ok := l.edges[MakeEdgeKey(a, b)]; ok {
		return r.Count
	}
	return 0
}

// Edge returns a copy of the record of (a, b)
func (l *Ledger) Edge(a, b int) (EdgeRecord, bool) {
	r, ok := l.edges[MakeEdgeKey(a, b)]
	if !ok {
		return EdgeRecord{OwnerTet: -1}, false
	}
	return *r, true
}

// SetEdgeState records the front state of (a, b), creating the entry if needed
func (l *Ledger) SetEdgeState(a, b int, s EdgeState) {
	l.record(a, b).State = s
}

// BumpRetries increments and returns the retry counter of (a, b)
func (l *Ledger) BumpRetries(a, b int) int {
	r := l.record(a, b)
	r.Retries++
	return r.Retries
}

func (l *Ledger) record(a, b int) *EdgeRecord {
	k := MakeEdgeKey(a, b)
	r, ok := l.edges[k]
	if !ok {
		r = &EdgeRecord{OwnerTet: -1}
		l.edges[k] = r
	}
	return r
}

// EdgesWithCount returns, in key order, every edge whose count satisfies keep
func (l *Ledger) EdgesWithCount(keep func(count int) bool) []EdgeKey {
	var out []EdgeKey
	for k, r := range l.edges {
		if keep(r.Count) {
			out = append(out, k)
		}
	}
	sortKeys(out)
	return out
}

// OpenEdgesInState returns, in key order, every edge in state s used by exactly
// one face
func (l *Ledger) OpenEdgesInState(s EdgeState) []EdgeKey {
	var out []EdgeKey
	for k, r := range l.edges {
		if r.State == s && r.Count == 1 {
			out = append(out, k)
		}
	}
	sortKeys(out)
	return out
}

// NonManifoldEdges returns the edges used by three or more faces
func (l *Ledger) NonManifoldEdges() []EdgeKey {
	return l.EdgesWithCount(func(c int) bool { return c >= 3 })
}

// BoundaryEdges returns the edges used by exactly one face
func (l *Ledger) BoundaryEdges() []EdgeKey {
	return l.EdgesWithCount(func(c int) bool { return c == 1 })
}

func sortKeys(keys []EdgeKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Lo != keys[j].Lo {
			return keys[i].Lo < keys[j].Lo
		}
		return keys[i].Hi < keys[j].Hi
	})
}
