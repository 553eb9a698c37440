// Package tetmesh holds the tetrahedralization consumed by the trimming engine
// and the read-only topology queries the engine runs against it.
package tetmesh

import (
	"errors"
	"fmt"
	"sort"

	"github.com/philipparndt/gotrim/pkg/geometry"
)

// None marks a missing adjacency link or an absent tetrahedron
const None = -1

// ErrInvalidTetrahedralization is wrapped by every Validate failure
var ErrInvalidTetrahedralization = errors.New("invalid tetrahedralization")

// faceVertices lists, for the face opposite local vertex i, the three local
// vertices of that face
var faceVertices = [4][3]int{
	{1, 2, 3},
	{0, 2, 3},
	{0, 1, 3},
	{0, 1, 2},
}

// Tetrahedron is four point indices plus the tetrahedron across each face.
// Adj[i] is the neighbor sharing the face opposite V[i], None on the hull.
type Tetrahedron struct {
	V   [4]int
	Adj [4]int
}

// NewTetrahedron creates a tetrahedron with no adjacency
func NewTetrahedron(a, b, c, d int) Tetrahedron {
	return Tetrahedron{
		V:   [4]int{a, b, c, d},
		Adj: [4]int{None, None, None, None},
	}
}

// LocalIndex returns the position of point p in the tetrahedron, or -1
func (t Tetrahedron) LocalIndex(p int) int {
	for i, v := range t.V {
		if v == p {
			return i
		}
	}
	return -1
}

// Contains reports whether p is a vertex of the tetrahedron
func (t Tetrahedron) Contains(p int) bool {
	return t.LocalIndex(p) >= 0
}

// Face returns the three points of the face opposite local vertex i
func (t Tetrahedron) Face(i int) [3]int {
	fv := faceVertices[i]
	return [3]int{t.V[fv[0]], t.V[fv[1]], t.V[fv[2]]}
}

// IsHull reports whether at least one face has no neighbor
func (t Tetrahedron) IsHull() bool {
	for _, a := range t.Adj {
		if a == None {
			return true
		}
	}
	return false
}

// Tetrahedralization is the immutable input of a trimming run. Points with an
// index >= IgnorePtsAfterNum are synthetic bounding points: they close the
// tetrahedralization and never appear in output.
type Tetrahedralization struct {
	Points            []geometry.Vector3
	IgnorePtsAfterNum int
	Tetrahedra        []Tetrahedron
	// PointTet holds one incident tetrahedron per point (None when unused)
	PointTet []int
}

// New builds a tetrahedralization from point-only tetrahedra, computing
// adjacency and the point index
func New(points []geometry.Vector3, ignorePtsAfterNum int, tets [][4]int) *Tetrahedralization {
	tetrahedra := make([]Tetrahedron, len(tets))
	for i, v := range tets {
		tetrahedra[i] = NewTetrahedron(v[0], v[1], v[2], v[3])
	}
	BuildAdjacency(tetrahedra)
	return &Tetrahedralization{
		Points:            points,
		IgnorePtsAfterNum: ignorePtsAfterNum,
		Tetrahedra:        tetrahedra,
		PointTet:          BuildPointIndex(len(points), tetrahedra),
	}
}

// IsSynthetic reports whether p is a bounding point
func (m *Tetrahedralization) IsSynthetic(p int) bool {
	return p >= m.IgnorePtsAfterNum
}

// RealPointCount returns the number of non-synthetic points
func (m *Tetrahedralization) RealPointCount() int {
	if m.IgnorePtsAfterNum > len(m.Points) {
		return len(m.Points)
	}
	return m.IgnorePtsAfterNum
}

// Validate checks index ranges, reciprocal adjacency and the point index
func (m *Tetrahedralization) Validate() error {
	n := len(m.Points)
	if m.IgnorePtsAfterNum < 0 || m.IgnorePtsAfterNum > n {
		return fmt.Errorf("%w: ignorePtsAfterNum %d outside [0,%d]", ErrInvalidTetrahedralization, m.IgnorePtsAfterNum, n)
	}
	if len(m.PointTet) != n {
		return fmt.Errorf("%w: point index has %d entries for %d points", ErrInvalidTetrahedralization, len(m.PointTet), n)
	}
	for ti, t := range m.Tetrahedra {
		for i, v := range t.V {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: tetrahedron %d vertex %d out of range: %d", ErrInvalidTetrahedralization, ti, i, v)
			}
			for j := i + 1; j < 4; j++ {
				if t.V[j] == v {
					return fmt.Errorf("%w: tetrahedron %d repeats point %d", ErrInvalidTetrahedralization, ti, v)
				}
			}
		}
		for i, a := range t.Adj {
			if a == None {
				continue
			}
			if a < 0 || a >= len(m.Tetrahedra) {
				return fmt.Errorf("%w: tetrahedron %d adjacency %d out of range: %d", ErrInvalidTetrahedralization, ti, i, a)
			}
			if !sameFace(t.Face(i), m.Tetrahedra[a]) {
				return fmt.Errorf("%w: tetrahedra %d and %d do not share face %d", ErrInvalidTetrahedralization, ti, a, i)
			}
			back := false
			for _, b := range m.Tetrahedra[a].Adj {
				if b == ti {
					back = true
					break
				}
			}
			if !back {
				return fmt.Errorf("%w: adjacency %d -> %d is not reciprocal", ErrInvalidTetrahedralization, ti, a)
			}
		}
	}
	for p, ti := range m.PointTet {
		if ti == None {
			continue
		}
		if ti < 0 || ti >= len(m.Tetrahedra) || !m.Tetrahedra[ti].Contains(p) {
			return fmt.Errorf("%w: point %d is not a vertex of its indexed tetrahedron %d", ErrInvalidTetrahedralization, p, ti)
		}
	}
	return nil
}

func sameFace(face [3]int, t Tetrahedron) bool {
	for _, p := range face {
		if !t.Contains(p) {
			return false
		}
	}
	return true
}

type faceKey [3]int

func makeFaceKey(f [3]int) faceKey {
	k := faceKey(f)
	sort.Ints(k[:])
	return k
}

type faceRef struct {
	tet, local int
}

// BuildAdjacency fills Adj of every tetrahedron by matching sorted face keys.
// Faces seen by more than two tetrahedra are left unlinked beyond the first
// pair.
func BuildAdjacency(tets []Tetrahedron) {
	open := make(map[faceKey]faceRef, len(tets)*2)
	for ti := range tets {
		for i := 0; i < 4; i++ {
			tets[ti].Adj[i] = None
		}
	}
	for ti := range tets {
		for i := 0; i < 4; i++ {
			key := makeFaceKey(tets[ti].Face(i))
			if other, ok := open[key]; ok {
				tets[ti].Adj[i] = other.tet
				tets[other.tet].Adj[other.local] = ti
				delete(open, key)
				continue
			}
			open[key] = faceRef{tet: ti, local: i}
		}
	}
}

// BuildPointIndex returns the lowest-numbered tetrahedron incident to each point
func BuildPointIndex(numPoints int, tets []Tetrahedron) []int {
	index := make([]int, numPoints)
	for i := range index {
		index[i] = None
	}
	for ti, t := range tets {
		for _, v := range t.V {
			if v >= 0 && v < numPoints && index[v] == None {
				index[v] = ti
			}
		}
	}
	return index
}
