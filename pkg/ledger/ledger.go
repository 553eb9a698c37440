package ledger

import "sort"

// FaceID identifies a fixed face; ids are never reused
type FaceID int

// NoFace is the absent face
const NoFace FaceID = -1

// FixedFace is a face selected for the output surface. Adj[i] is the fixed
// face on the other side of edge (V[i], V[(i+1)%3]).
type FixedFace struct {
	V       [3]int
	Adj     [3]FaceID
	Tet     int
	TetFace int
	Removed bool
}

// Edge returns the endpoints of local edge i
func (f FixedFace) Edge(i int) (int, int) {
	return f.V[i], f.V[(i+1)%3]
}

// EdgeIndex returns the local edge of the face matching (a, b) in either
// direction, or -1
func (f FixedFace) EdgeIndex(a, b int) int {
	k := MakeEdgeKey(a, b)
	for i := 0; i < 3; i++ {
		if MakeEdgeKey(f.Edge(i)) == k {
			return i
		}
	}
	return -1
}

// Apex returns the vertex of the face not on edge (a, b), or -1
func (f FixedFace) Apex(a, b int) int {
	for _, v := range f.V {
		if v != a && v != b {
			return v
		}
	}
	return -1
}

type faceKey [3]int

func makeFaceKey(a, b, c int) faceKey {
	k := faceKey{a, b, c}
	sort.Ints(k[:])
	return k
}

type tetFace struct {
	tet, face int
}

// Ledger is the single source of truth for used edges and fixed faces. It is
// not safe for concurrent use.
type Ledger struct {
	// CheckManifold makes AddFixFaceWithEdges refuse faces that would push
	// an edge past two uses
	CheckManifold bool

	edges     map[EdgeKey]*EdgeRecord
	faces     []FixedFace
	faceIndex map[faceKey]FaceID
	edgeFaces map[EdgeKey][]FaceID
	marked    map[tetFace]bool
	pointUses map[int]int
	active    int
	tx        *Transaction
}

// New creates an empty ledger with manifold checking on
func New() *Ledger {
	return &Ledger{
		CheckManifold: true,
		edges:         make(map[EdgeKey]*EdgeRecord),
		faceIndex:     make(map[faceKey]FaceID),
		edgeFaces:     make(map[EdgeKey][]FaceID),
		marked:        make(map[tetFace]bool),
		pointUses:     make(map[int]int),
	}
}

// MarkFace flags face of tetrahedron tet as selected
func (l *Ledger) MarkFace(tet, face int) {
	l.marked[tetFace{tet, face}] = true
}

// IsFaceMarked reports whether face of tetrahedron tet is selected
func (l *Ledger) IsFaceMarked(tet, face int) bool {
	return l.marked[tetFace{tet, face}]
}

// ClearFace removes the selection flag of face of tetrahedron tet
func (l *Ledger) ClearFace(tet, face int) {
	delete(l.marked, tetFace{tet, face})
}

// AddFixedFace appends the face (a, b, c) to the output and links it with the
// fixed faces already sharing its edges. Edge counts are not touched.
func (l *Ledger) AddFixedFace(a, b, c, tet, face int) FaceID {
	id := FaceID(len(l.faces))
	f := FixedFace{
		V:       [3]int{a, b, c},
		Adj:     [3]FaceID{NoFace, NoFace, NoFace},
		Tet:     tet,
		TetFace: face,
	}
	for i := 0; i < 3; i++ {
		k := MakeEdgeKey(f.Edge(i))
		for _, other := range l.edgeFaces[k] {
			of := &l.faces[other]
			if f.Adj[i] == NoFace {
				f.Adj[i] = other
			}
			if j := of.EdgeIndex(k.Lo, k.Hi); j >= 0 && of.Adj[j] == NoFace {
				of.Adj[j] = id
			}
		}
		l.edgeFaces[k] = append(l.edgeFaces[k], id)
	}
	l.faces = append(l.faces, f)
	l.faceIndex[makeFaceKey(a, b, c)] = id
	for _, v := range f.V {
		l.pointUses[v]++
	}
	if tet >= 0 {
		l.MarkFace(tet, face)
	}
	l.active++
	if l.tx != nil {
		l.tx.added = append(l.tx.added, id)
	}
	return id
}

// RemoveFixedFace unlinks a fixed face from its neighbors and the output.
// Edge counts are not touched.
func (l *Ledger) RemoveFixedFace(id FaceID) {
	if !l.validFace(id) {
		return
	}
	f := &l.faces[id]
	for i := 0; i < 3; i++ {
		k := MakeEdgeKey(f.Edge(i))
		remaining := l.edgeFaces[k][:0]
		for _, other := range l.edgeFaces[k] {
			if other != id {
				remaining = append(remaining, other)
			}
		}
		l.edgeFaces[k] = remaining
		for _, other := range remaining {
			of := &l.faces[other]
			j := of.EdgeIndex(k.Lo, k.Hi)
			if j >= 0 && (of.Adj[j] == id || of.Adj[j] == NoFace) {
				of.Adj[j] = firstOther(remaining, other)
			}
		}
		f.Adj[i] = NoFace
	}
	f.Removed = true
	delete(l.faceIndex, makeFaceKey(f.V[0], f.V[1], f.V[2]))
	for _, v := range f.V {
		l.pointUses[v]--
	}
	if f.Tet >= 0 {
		l.ClearFace(f.Tet, f.TetFace)
	}
	l.active--
}

func firstOther(ids []FaceID, self FaceID) FaceID {
	for _, id := range ids {
		if id != self {
			return id
		}
	}
	return NoFace
}

// AddFixFaceWithEdges commits the face (a, b, c) together with its three edge
// uses. With CheckManifold on, the face is refused when an edge would exceed
// two uses. Duplicate and degenerate faces are always refused. A refused face
// leaves the ledger untouched.
func (l *Ledger) AddFixFaceWithEdges(a, b, c, tet, face int) (FaceID, bool) {
	if a == b || b == c || a == c || l.FaceExists(a, b, c) {
		return NoFace, false
	}
	verts := [3]int{a, b, c}
	if l.CheckManifold {
		for i := 0; i < 3; i++ {
			if l.GetEdgeCount(verts[i], verts[(i+1)%3]) >= 2 {
				return NoFace, false
			}
		}
	}
	for i := 0; i < 3; i++ {
		l.IncrementEdge(verts[i], verts[(i+1)%3], tet)
	}
	return l.AddFixedFace(a, b, c, tet, face), true
}

// RemoveFaceWithEdges removes a fixed face and its three edge uses
func (l *Ledger) RemoveFaceWithEdges(id FaceID) {
	if !l.validFace(id) {
		return
	}
	f := l.faces[id]
	l.RemoveFixedFace(id)
	for i := 0; i < 3; i++ {
		l.DecrementEdge(f.Edge(i))
	}
}

// FaceExists reports whether (a, b, c) in any winding is a fixed face
func (l *Ledger) FaceExists(a, b, c int) bool {
	_, ok := l.faceIndex[makeFaceKey(a, b, c)]
	return ok
}

// Face returns a fixed face by id
func (l *Ledger) Face(id FaceID) (FixedFace, bool) {
	if id < 0 || int(id) >= len(l.faces) {
		return FixedFace{}, false
	}
	return l.faces[id], true
}

// FacesOnEdge returns the live fixed faces using (a, b)
func (l *Ledger) FacesOnEdge(a, b int) []FaceID {
	ids := l.edgeFaces[MakeEdgeKey(a, b)]
	out := make([]FaceID, len(ids))
	copy(out, ids)
	return out
}

// OtherFace returns the fixed face across edge (a, b) from face id
func (l *Ledger) OtherFace(id FaceID, a, b int) FaceID {
	if !l.validFace(id) {
		return NoFace
	}
	f := l.faces[id]
	i := f.EdgeIndex(a, b)
	if i < 0 {
		return NoFace
	}
	return f.Adj[i]
}

// FixedFaceOnEdge returns a live fixed face on (a, b) whose apex is p
func (l *Ledger) FixedFaceOnEdge(a, b, p int) (FaceID, bool) {
	if !l.FaceExists(a, b, p) {
		return NoFace, false
	}
	return l.faceIndex[makeFaceKey(a, b, p)], true
}

// FixedFaces returns the ids of all live faces in creation order
func (l *Ledger) FixedFaces() []FaceID {
	out := make([]FaceID, 0, l.active)
	for i, f := range l.faces {
		if !f.Removed {
			out = append(out, FaceID(i))
		}
	}
	return out
}

// FaceCount returns the number of live fixed faces
func (l *Ledger) FaceCount() int {
	return l.active
}

// UsesPoint reports whether any live fixed face has p as a vertex
func (l *Ledger) UsesPoint(p int) bool {
	return l.pointUses[p] > 0
}

func (l *Ledger) validFace(id FaceID) bool {
	return id >= 0 && int(id) < len(l.faces) && !l.faces[id].Removed
}
