// Package delaunay builds the 3D Delaunay tetrahedralization of a point cloud
// by Bowyer-Watson insertion into a bounding super-tetrahedron. The four
// super-tetrahedron corners are kept as synthetic points after the real ones,
// which is the layout the trimming engine expects. Coplanar clouds are
// triangulated in their plane and coned to one synthetic apex instead.
package delaunay

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/tetmesh"
)

var (
	// ErrTooFewPoints is returned for fewer than four distinct points
	ErrTooFewPoints = errors.New("at least four distinct points are required")
	// ErrDegenerateInput is returned when all points lie on one line
	ErrDegenerateInput = errors.New("points are collinear")
)

// superScale is the size of the super-tetrahedron relative to the bounding
// box diagonal
const superScale = 20.0

// Result is a tetrahedralization together with the mapping back to the input
type Result struct {
	*tetmesh.Tetrahedralization
	// Original holds, for every real point, its index in the input slice
	Original []int
	// Duplicates counts the input points dropped as exact duplicates
	Duplicates int
}

type tet struct {
	v    [4]int
	adj  [4]int
	dead bool
}

type builder struct {
	pts  []geometry.Vector3
	tets []tet
	last int
}

// Tetrahedralize removes duplicate points, inserts the rest one at a time in
// input order and returns the tetrahedralization including every tetrahedron
// touching the super-tetrahedron corners.
func Tetrahedralize(points []geometry.Vector3) (*Result, error) {
	kept, original := RemoveDuplicates(points)
	if len(kept) < 4 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(kept))
	}
	n := len(kept)
	dim, bi, ci := span(kept)
	switch dim {
	case 2:
		return &Result{
			Tetrahedralization: tetrahedralizePlanar(kept, bi, ci),
			Original:           original,
			Duplicates:         len(points) - n,
		}, nil
	case 3:
	default:
		return nil, ErrDegenerateInput
	}

	b := &builder{pts: append(append([]geometry.Vector3{}, kept...), superCorners(kept)...)}
	b.tets = []tet{{v: [4]int{n, n + 1, n + 2, n + 3}, adj: [4]int{tetmesh.None, tetmesh.None, tetmesh.None, tetmesh.None}}}
	b.orient(0)

	for p := 0; p < n; p++ {
		if err := b.insert(p); err != nil {
			return nil, err
		}
	}

	var out [][4]int
	for _, t := range b.tets {
		if !t.dead {
			out = append(out, t.v)
		}
	}
	return &Result{
		Tetrahedralization: tetmesh.New(b.pts, n, out),
		Original:           original,
		Duplicates:         len(points) - n,
	}, nil
}

// RemoveDuplicates drops exact repeats, keeping the first occurrence in input
// order. original maps every kept point to its input index.
func RemoveDuplicates(points []geometry.Vector3) (kept []geometry.Vector3, original []int) {
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := points[order[i]], points[order[j]]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	dup := make([]bool, len(points))
	for i := 1; i < len(order); i++ {
		if points[order[i]] == points[order[i-1]] {
			dup[order[i]] = true
		}
	}
	for i, p := range points {
		if !dup[i] {
			kept = append(kept, p)
			original = append(original, i)
		}
	}
	return kept, original
}

// span returns the dimension of the affine hull of the points (3 for a
// volume, 2 for a plane, less for a line or a single point) together with two
// points b and c that span a plane with pts[0]
func span(pts []geometry.Vector3) (dim, b, c int) {
	a := pts[0]
	b = -1
	for i := 1; i < len(pts); i++ {
		if pts[i] != a {
			b = i
			break
		}
	}
	if b < 0 {
		return 0, -1, -1
	}
	c = -1
	for i := b + 1; i < len(pts); i++ {
		if _, ok := geometry.PlaneNormalFromThreePoints(a, pts[b], pts[i]); ok {
			c = i
			break
		}
	}
	if c < 0 {
		return 1, b, -1
	}
	for i := c + 1; i < len(pts); i++ {
		if geometry.Orient3D(a, pts[b], pts[c], pts[i]) != 0 {
			return 3, b, c
		}
	}
	return 2, b, c
}

// superCorners returns a regular tetrahedron around the bounding box
func superCorners(pts []geometry.Vector3) []geometry.Vector3 {
	box := geometry.BoundingBoxOf(pts)
	c := box.Center()
	s := superScale * math.Max(box.Diagonal(), 1)
	return []geometry.Vector3{
		c.Add(geometry.NewVector3(s, s, s)),
		c.Add(geometry.NewVector3(s, -s, -s)),
		c.Add(geometry.NewVector3(-s, s, -s)),
		c.Add(geometry.NewVector3(-s, -s, s)),
	}
}

// orient swaps two vertices of tetrahedron i if needed so that Orient3D of
// its vertices is positive
func (b *builder) orient(i int) {
	t := &b.tets[i]
	p := b.pts
	if geometry.Orient3D(p[t.v[0]], p[t.v[1]], p[t.v[2]], p[t.v[3]]) < 0 {
		t.v[0], t.v[1] = t.v[1], t.v[0]
		t.adj[0], t.adj[1] = t.adj[1], t.adj[0]
	}
}

// locate walks from the last created tetrahedron towards p and returns the
// tetrahedron containing it
func (b *builder) locate(p int) int {
	cur := b.last
	for steps := 0; steps < len(b.tets); steps++ {
		t := b.tets[cur]
		moved := false
		for i := 0; i < 4; i++ {
			if t.adj[i] != tetmesh.None && b.sideOf(t, i, p) < 0 {
				cur = t.adj[i]
				moved = true
				break
			}
		}
		if !moved {
			return cur
		}
	}
	// The walk cycled on a degenerate configuration; fall back to a scan.
	for i, t := range b.tets {
		if t.dead {
			continue
		}
		inside := true
		for f := 0; f < 4 && inside; f++ {
			inside = b.sideOf(t, f, p) >= 0
		}
		if inside {
			return i
		}
	}
	return -1
}

// sideOf is the orientation of t with vertex f replaced by p: negative when p
// lies beyond the face opposite f
func (b *builder) sideOf(t tet, f, p int) int {
	v := t.v
	v[f] = p
	return geometry.Orient3D(b.pts[v[0]], b.pts[v[1]], b.pts[v[2]], b.pts[v[3]])
}

func (b *builder) inSphere(t tet, p int) bool {
	q := b.pts
	return geometry.InSphere(q[t.v[0]], q[t.v[1]], q[t.v[2]], q[t.v[3]], q[p]) > 0
}

type boundaryFace struct {
	tet   int
	local int
	outer int
}

// insert carves out every tetrahedron whose circumsphere holds p and fills
// the cavity with tetrahedra joining p to the cavity boundary
func (b *builder) insert(p int) error {
	start := b.locate(p)
	if start < 0 {
		return fmt.Errorf("point %d outside the super-tetrahedron", p)
	}

	mark := map[int]bool{start: true}
	cavity := []int{start}
	var boundary []boundaryFace
	for i := 0; i < len(cavity); i++ {
		ti := cavity[i]
		t := b.tets[ti]
		for f := 0; f < 4; f++ {
			n := t.adj[f]
			if n != tetmesh.None && mark[n] {
				continue
			}
			if n != tetmesh.None && b.inSphere(b.tets[n], p) {
				mark[n] = true
				cavity = append(cavity, n)
				continue
			}
			boundary = append(boundary, boundaryFace{tet: ti, local: f, outer: n})
		}
	}

	type edgeKey [2]int
	open := make(map[edgeKey][2]int)
	created := make([]int, 0, len(boundary))
	for _, bf := range boundary {
		old := b.tets[bf.tet]
		nt := tet{v: old.v, adj: [4]int{tetmesh.None, tetmesh.None, tetmesh.None, tetmesh.None}}
		// p lies on the same side of the face as the vertex it replaces,
		// so the orientation stays positive.
		nt.v[bf.local] = p
		nt.adj[bf.local] = bf.outer
		idx := len(b.tets)
		b.tets = append(b.tets, nt)
		created = append(created, idx)

		if bf.outer != tetmesh.None {
			o := &b.tets[bf.outer]
			for k := 0; k < 4; k++ {
				if o.adj[k] == bf.tet {
					o.adj[k] = idx
				}
			}
		}

		// The three faces through p pair up with the neighbors sharing
		// the boundary edge opposite them.
		for f := 0; f < 4; f++ {
			if f == bf.local {
				continue
			}
			var e []int
			for k := 0; k < 4; k++ {
				if k != f && k != bf.local {
					e = append(e, nt.v[k])
				}
			}
			key := edgeKey{e[0], e[1]}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if other, ok := open[key]; ok {
				b.tets[idx].adj[f] = other[0]
				b.tets[other[0]].adj[other[1]] = idx
				delete(open, key)
				continue
			}
			open[key] = [2]int{idx, f}
		}
	}
	if len(open) != 0 {
		return fmt.Errorf("cavity of point %d is not closed", p)
	}

	for _, ti := range cavity {
		b.tets[ti].dead = true
	}
	b.last = created[len(created)-1]
	return nil
}
