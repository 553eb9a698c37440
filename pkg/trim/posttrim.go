package trim

import (
	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/ledger"
)

// postTrim removes faces longer than MaxEdgeLength and, in sliver mode,
// faces whose shape ratio is below SliverRatio. It repeats until a pass
// removes nothing or MaxPostTrimIterations is reached.
func (t *trimmer) postTrim() {
	if t.cfg.MaxEdgeLength <= 0 && !t.cfg.UseSliverTrim {
		return
	}
	for iter := 0; iter < t.cfg.MaxPostTrimIterations; iter++ {
		t.diag.PostTrimIterations++
		var doomed []ledger.FaceID
		for _, id := range t.ledger.FixedFaces() {
			f, _ := t.ledger.Face(id)
			if t.rejectShape(t.triangle(f)) {
				doomed = append(doomed, id)
			}
		}
		if len(doomed) == 0 {
			return
		}
		for _, id := range doomed {
			t.ledger.RemoveFaceWithEdges(id)
		}
		t.diag.PostTrimRemoved += len(doomed)
	}
	t.log.Printf("trim: post-trim stopped after %d iterations", t.cfg.MaxPostTrimIterations)
}

func (t *trimmer) triangle(f ledger.FixedFace) geometry.Triangle {
	p := t.mesh.Points
	tri := geometry.Triangle{V1: p[f.V[0]], V2: p[f.V[1]], V3: p[f.V[2]]}
	tri.Normal = tri.CalculateNormal()
	return tri
}

// rejectShape reports whether post-trim removes a face of this shape
func (t *trimmer) rejectShape(tri geometry.Triangle) bool {
	if t.cfg.MaxEdgeLength > 0 && tri.LongestEdge() > t.cfg.MaxEdgeLength {
		return true
	}
	return t.cfg.UseSliverTrim && tri.SliverRatio() < t.cfg.SliverRatio
}
