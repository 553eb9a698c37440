package analysis

import (
	"fmt"
	"sort"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/stl"
)

// TrimReport summarizes the topology of a triangle surface
type TrimReport struct {
	Triangles           int
	Edges               int
	BoundaryEdges       int
	NonManifoldEdges    int
	InconsistentEdges   int
	DegenerateFaces     int
	DuplicateFaces      int
	SyntheticReferences int
	ExtraFaces          int
	MissingFaces        int
}

// Manifold reports whether every edge is used by at most two faces and no
// face is degenerate or repeated
func (r TrimReport) Manifold() bool {
	return r.NonManifoldEdges == 0 && r.DegenerateFaces == 0 && r.DuplicateFaces == 0
}

// Clean reports a manifold, consistently wound surface without synthetic
// points that matches its reference
func (r TrimReport) Clean() bool {
	return r.Manifold() && r.InconsistentEdges == 0 && r.SyntheticReferences == 0 &&
		r.ExtraFaces == 0 && r.MissingFaces == 0
}

func (r TrimReport) String() string {
	return fmt.Sprintf("%d triangles, %d edges (%d boundary, %d non-manifold, %d inconsistent)",
		r.Triangles, r.Edges, r.BoundaryEdges, r.NonManifoldEdges, r.InconsistentEdges)
}

type edgeUse struct {
	count   int
	forward int
}

// CheckTrim verifies a trimmed surface. Points at or after ignorePtsAfterNum
// count as synthetic; pass 0 or less to skip that check. A nil reference
// skips the face comparison. Faces are compared without regard to winding.
func CheckTrim(faces [][3]int, ignorePtsAfterNum int, reference [][3]int) TrimReport {
	report := TrimReport{Triangles: len(faces)}
	edges := make(map[[2]int]*edgeUse)
	seen := make(map[[3]int]bool)

	for _, f := range faces {
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			report.DegenerateFaces++
			continue
		}
		key := sortedFace(f)
		if seen[key] {
			report.DuplicateFaces++
		}
		seen[key] = true

		for _, v := range f {
			if ignorePtsAfterNum > 0 && v >= ignorePtsAfterNum {
				report.SyntheticReferences++
			}
		}
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			k := [2]int{a, b}
			if a > b {
				k = [2]int{b, a}
			}
			use := edges[k]
			if use == nil {
				use = &edgeUse{}
				edges[k] = use
			}
			use.count++
			if a < b {
				use.forward++
			}
		}
	}

	report.Edges = len(edges)
	for _, use := range edges {
		switch {
		case use.count == 1:
			report.BoundaryEdges++
		case use.count > 2:
			report.NonManifoldEdges++
		case use.forward != 1:
			report.InconsistentEdges++
		}
	}

	if reference != nil {
		want := make(map[[3]int]bool, len(reference))
		for _, f := range reference {
			want[sortedFace(f)] = true
		}
		for f := range seen {
			if !want[f] {
				report.ExtraFaces++
			}
		}
		for f := range want {
			if !seen[f] {
				report.MissingFaces++
			}
		}
	}
	return report
}

func sortedFace(f [3]int) [3]int {
	sort.Ints(f[:])
	return f
}

// IndexModels welds the vertices of the models by exact position into one
// shared point list and returns the faces of each model against it
func IndexModels(models ...*stl.Model) ([]geometry.Vector3, [][][3]int) {
	index := make(map[geometry.Vector3]int)
	var points []geometry.Vector3
	lookup := func(v geometry.Vector3) int {
		if i, ok := index[v]; ok {
			return i
		}
		index[v] = len(points)
		points = append(points, v)
		return index[v]
	}

	faces := make([][][3]int, len(models))
	for m, model := range models {
		for _, tri := range model.Triangles {
			faces[m] = append(faces[m], [3]int{lookup(tri.V1), lookup(tri.V2), lookup(tri.V3)})
		}
	}
	return points, faces
}

// FindBoundaryEdges returns the edges used by exactly one triangle of the
// model, with vertices welded by exact position
func FindBoundaryEdges(model *stl.Model) []EdgeInfo {
	points, faces := IndexModels(model)
	uses := make(map[[2]int]int)
	for _, f := range faces[0] {
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			uses[[2]int{a, b}]++
		}
	}

	var edges []EdgeInfo
	for id, f := range faces[0] {
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			k := [2]int{a, b}
			if a > b {
				k = [2]int{b, a}
			}
			if uses[k] == 1 {
				edges = append(edges, EdgeInfo{
					Start:      points[a],
					End:        points[b],
					Length:     points[a].Distance(points[b]),
					TriangleID: id,
				})
			}
		}
	}
	return edges
}
