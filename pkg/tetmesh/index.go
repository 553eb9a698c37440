package tetmesh

import "sort"

const (
	// DefaultMaxEdgeValence caps the rotation around an edge
	DefaultMaxEdgeValence = 64
	// DefaultMaxPointValence caps the tetrahedra visited around a point
	DefaultMaxPointValence = 1024
)

// Candidate is a point reachable across an edge. The face of Tet opposite its
// local vertex Face contains the queried edge and Point.
type Candidate struct {
	Point int
	Tet   int
	Face  int
}

// Index answers topology queries over a tetrahedralization without mutating it
type Index struct {
	mesh            *Tetrahedralization
	MaxEdgeValence  int
	MaxPointValence int
	stalls          int
}

// NewIndex creates a topology index with the default walk caps
func NewIndex(mesh *Tetrahedralization) *Index {
	return &Index{
		mesh:            mesh,
		MaxEdgeValence:  DefaultMaxEdgeValence,
		MaxPointValence: DefaultMaxPointValence,
	}
}

// Mesh returns the indexed tetrahedralization
func (x *Index) Mesh() *Tetrahedralization {
	return x.mesh
}

// Stalls returns how many walks hit their step cap or corrupted adjacency
func (x *Index) Stalls() int {
	return x.stalls
}

// PointTetrahedron returns one tetrahedron incident to p, or None
func (x *Index) PointTetrahedron(p int) int {
	if p < 0 || p >= len(x.mesh.PointTet) {
		return None
	}
	return x.mesh.PointTet[p]
}

// FindPointsAroundEdge rotates through the tetrahedra sharing edge (a, b),
// starting at host, and returns every real point p such that (a, b, p) is a
// face of one of them. The rotation reverses once when it reaches the hull.
// ok is false when the walk stalls; no candidates are returned then.
func (x *Index) FindPointsAroundEdge(host, a, b int) (cands []Candidate, ok bool) {
	tets := x.mesh.Tetrahedra
	if host < 0 || host >= len(tets) || !tets[host].Contains(a) || !tets[host].Contains(b) || a == b {
		x.stalls++
		return nil, false
	}

	seen := make(map[int]bool)
	add := func(ti int) {
		t := tets[ti]
		for _, l := range edgeOpposites(t, a, b) {
			p := t.V[l]
			if seen[p] || x.mesh.IsSynthetic(p) {
				continue
			}
			seen[p] = true
			// The face holding (a, b, p) is the one opposite the other
			// non-edge vertex.
			cands = append(cands, Candidate{Point: p, Tet: ti, Face: otherOpposite(t, a, b, l)})
		}
	}

	first := edgeOpposites(tets[host], a, b)
	add(host)
	closed, ok := x.rotate(host, a, b, first[0], add)
	if !ok {
		x.stalls++
		return nil, false
	}
	if !closed {
		if _, ok := x.rotate(host, a, b, first[1], add); !ok {
			x.stalls++
			return nil, false
		}
	}
	return cands, true
}

// rotate walks around edge (a, b) leaving start through the face that
// contains the vertex at local index keep. closed reports a full turn back
// to start.
func (x *Index) rotate(start, a, b, keep int, visit func(int)) (closed, ok bool) {
	tets := x.mesh.Tetrahedra
	cur := start
	pivot := tets[start].V[keep]
	exit := otherOpposite(tets[start], a, b, keep)
	visited := map[int]bool{start: true}
	for step := 0; step < x.MaxEdgeValence; step++ {
		next := tets[cur].Adj[exit]
		if next == None {
			return false, true
		}
		if next < 0 || next >= len(tets) || next == cur {
			return false, false
		}
		if !linksTo(tets[next], cur) {
			return false, false
		}
		if next == start {
			return true, true
		}
		if visited[next] {
			return false, false
		}
		t := tets[next]
		if !t.Contains(a) || !t.Contains(b) || !t.Contains(pivot) {
			return false, false
		}
		visited[next] = true
		visit(next)
		// Leave through the face holding the vertex that is new in this
		// tetrahedron.
		opp := edgeOpposites(t, a, b)
		fresh := opp[0]
		if t.V[fresh] == pivot {
			fresh = opp[1]
		}
		exit = t.LocalIndex(pivot)
		pivot = t.V[fresh]
		cur = next
	}
	return false, false
}

// linksTo reports whether t has ti as a face neighbor
func linksTo(t Tetrahedron, ti int) bool {
	for _, n := range t.Adj {
		if n == ti {
			return true
		}
	}
	return false
}

// edgeOpposites returns the two local indices of t that are not a or b
func edgeOpposites(t Tetrahedron, a, b int) [2]int {
	var out [2]int
	n := 0
	for i, v := range t.V {
		if v != a && v != b && n < 2 {
			out[n] = i
			n++
		}
	}
	return out
}

// otherOpposite returns the non-edge local index of t that is not l
func otherOpposite(t Tetrahedron, a, b, l int) int {
	opp := edgeOpposites(t, a, b)
	if opp[0] == l {
		return opp[1]
	}
	return opp[0]
}

// CollectLinkedPoints returns every real point sharing an edge with point in
// the tetrahedra around it, starting the walk at tet. Results are ordered by
// point index.
func (x *Index) CollectLinkedPoints(tet, point int) []Candidate {
	tets := x.mesh.Tetrahedra
	if tet < 0 || tet >= len(tets) || !tets[tet].Contains(point) {
		return nil
	}

	visited := map[int]bool{tet: true}
	queue := []int{tet}
	found := make(map[int]Candidate)
	for len(queue) > 0 && len(visited) <= x.MaxPointValence {
		ti := queue[0]
		queue = queue[1:]
		t := tets[ti]
		lp := t.LocalIndex(point)
		for l, v := range t.V {
			if l == lp {
				continue
			}
			if _, ok := found[v]; !ok && !x.mesh.IsSynthetic(v) {
				found[v] = Candidate{Point: v, Tet: ti, Face: otherOpposite(t, point, v, -1)}
			}
			// Faces opposite the other vertices all contain point.
			n := t.Adj[l]
			if n != None && n >= 0 && n < len(tets) && !visited[n] && tets[n].Contains(point) {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	if len(visited) > x.MaxPointValence {
		x.stalls++
	}

	out := make([]Candidate, 0, len(found))
	for _, c := range found {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Point < out[j].Point })
	return out
}

// FindTetWithEdge returns a tetrahedron containing both a and b, or None
func (x *Index) FindTetWithEdge(a, b int) int {
	start := x.PointTetrahedron(a)
	if start == None {
		return None
	}
	tets := x.mesh.Tetrahedra
	visited := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 && len(visited) <= x.MaxPointValence {
		ti := queue[0]
		queue = queue[1:]
		t := tets[ti]
		if t.Contains(b) {
			return ti
		}
		la := t.LocalIndex(a)
		for l, n := range t.Adj {
			if l == la || n == None || visited[n] || !tets[n].Contains(a) {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}
	return None
}
