package delaunay

import (
	"math"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/tetmesh"
)

// planarScale is the size of the 2D super-triangle relative to the extent of
// the points in the plane
const planarScale = 1000.0

type triangle2D struct {
	v    [3]int
	dead bool
}

// tetrahedralizePlanar triangulates coplanar points in their plane and cones
// every triangle to a single synthetic apex above the plane. b and c are
// indices of two points that are not collinear with pts[0].
func tetrahedralizePlanar(pts []geometry.Vector3, b, c int) *tetmesh.Tetrahedralization {
	n := len(pts)
	normal, _ := geometry.PlaneNormalFromThreePoints(pts[0], pts[b], pts[c])
	plane := geometry.Plane{Origin: pts[0], Normal: normal}
	u, v := plane.Basis(pts[b].Sub(pts[0]))

	q := make([]geometry.Vector2, n, n+3)
	for i, p := range pts {
		q[i] = plane.To2D(p, u, v)
	}

	var out [][4]int
	for _, t := range triangulate2D(q) {
		out = append(out, [4]int{t[0], t[1], t[2], n})
	}

	var centroid geometry.Vector3
	for _, p := range pts {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float64(n))
	apex := centroid.Add(normal.Mul(math.Max(geometry.BoundingBoxOf(pts).Diagonal(), 1)))
	all := append(append([]geometry.Vector3{}, pts...), apex)
	return tetmesh.New(all, n, out)
}

// triangulate2D returns the counterclockwise Delaunay triangles of q by
// Bowyer-Watson insertion into a super-triangle whose corners are dropped
// afterwards
func triangulate2D(q []geometry.Vector2) [][3]int {
	n := len(q)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range q {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	s := planarScale * math.Max(math.Max(maxX-minX, maxY-minY), 1)
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	q = append(q,
		geometry.Vector2{X: cx - 2*s, Y: cy - s},
		geometry.Vector2{X: cx + 2*s, Y: cy - s},
		geometry.Vector2{X: cx, Y: cy + 2*s},
	)

	tris := []triangle2D{{v: [3]int{n, n + 1, n + 2}}}
	for p := 0; p < n; p++ {
		count := make(map[[2]int]int)
		var edges [][2]int
		for i := range tris {
			t := &tris[i]
			if t.dead || geometry.InCircle(q[t.v[0]], q[t.v[1]], q[t.v[2]], q[p]) <= 0 {
				continue
			}
			t.dead = true
			for k := 0; k < 3; k++ {
				e := [2]int{t.v[k], t.v[(k+1)%3]}
				key := e
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				if count[key] == 0 {
					edges = append(edges, e)
				}
				count[key]++
			}
		}

		live := tris[:0]
		for _, t := range tris {
			if !t.dead {
				live = append(live, t)
			}
		}
		tris = live
		// Edges seen once bound the cavity and keep the winding of the
		// removed triangle, so joining them to p stays counterclockwise.
		for _, e := range edges {
			key := e
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if count[key] == 1 {
				tris = append(tris, triangle2D{v: [3]int{e[0], e[1], p}})
			}
		}
	}

	var out [][3]int
	for _, t := range tris {
		if t.v[0] < n && t.v[1] < n && t.v[2] < n {
			out = append(out, t.v)
		}
	}
	return out
}
