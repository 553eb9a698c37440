package analysis

import (
	"testing"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/stl"
)

func TestCheckTrim(t *testing.T) {
	square := [][3]int{{0, 1, 2}, {0, 2, 3}}

	tests := []struct {
		name      string
		faces     [][3]int
		ignore    int
		reference [][3]int
		want      TrimReport
		clean     bool
	}{
		{
			name:  "square",
			faces: square,
			want:  TrimReport{Triangles: 2, Edges: 5, BoundaryEdges: 4},
			clean: true,
		},
		{
			name:  "flipped neighbor",
			faces: [][3]int{{0, 1, 2}, {0, 3, 2}},
			want:  TrimReport{Triangles: 2, Edges: 5, BoundaryEdges: 4, InconsistentEdges: 1},
		},
		{
			name:  "fin",
			faces: [][3]int{{0, 1, 2}, {1, 0, 3}, {0, 1, 4}},
			want:  TrimReport{Triangles: 3, Edges: 7, BoundaryEdges: 6, NonManifoldEdges: 1},
		},
		{
			name:   "synthetic point",
			faces:  [][3]int{{0, 1, 9}},
			ignore: 9,
			want:   TrimReport{Triangles: 1, Edges: 3, BoundaryEdges: 3, SyntheticReferences: 1},
		},
		{
			name:  "degenerate and duplicate",
			faces: [][3]int{{0, 1, 1}, {0, 1, 2}, {2, 1, 0}},
			want:  TrimReport{Triangles: 3, Edges: 3, DegenerateFaces: 1, DuplicateFaces: 1},
		},
		{
			name:      "against reference",
			faces:     [][3]int{{2, 1, 0}, {0, 3, 4}},
			reference: square,
			want:      TrimReport{Triangles: 2, Edges: 6, BoundaryEdges: 6, ExtraFaces: 1, MissingFaces: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckTrim(tt.faces, tt.ignore, tt.reference)
			if got != tt.want {
				t.Errorf("CheckTrim() = %+v, want %+v", got, tt.want)
			}
			if got.Clean() != tt.clean {
				t.Errorf("Clean() = %v, want %v", got.Clean(), tt.clean)
			}
		})
	}
}

func TestIndexModels(t *testing.T) {
	a := geometry.NewVector3(0, 0, 0)
	b := geometry.NewVector3(1, 0, 0)
	c := geometry.NewVector3(0, 1, 0)
	d := geometry.NewVector3(1, 1, 0)

	first := stl.NewModel("first")
	first.AddTriangle(geometry.Triangle{V1: a, V2: b, V3: c})
	second := stl.NewModel("second")
	second.AddTriangle(geometry.Triangle{V1: b, V2: d, V3: c})

	points, faces := IndexModels(first, second)
	if len(points) != 4 {
		t.Fatalf("len(points) = %d, want 4", len(points))
	}
	if faces[0][0] != [3]int{0, 1, 2} || faces[1][0] != [3]int{1, 3, 2} {
		t.Errorf("faces = %v", faces)
	}

	report := CheckTrim(append(faces[0], faces[1]...), 0, nil)
	if report.BoundaryEdges != 4 || report.InconsistentEdges != 0 {
		t.Errorf("CheckTrim() = %+v", report)
	}
}

func TestFindBoundaryEdges(t *testing.T) {
	a := geometry.NewVector3(0, 0, 0)
	b := geometry.NewVector3(2, 0, 0)
	c := geometry.NewVector3(2, 2, 0)
	d := geometry.NewVector3(0, 2, 0)

	model := stl.NewModel("square")
	model.AddTriangle(geometry.Triangle{V1: a, V2: b, V3: c})
	model.AddTriangle(geometry.Triangle{V1: a, V2: c, V3: d})

	edges := FindBoundaryEdges(model)
	if len(edges) != 4 {
		t.Fatalf("len(edges) = %d, want 4", len(edges))
	}
	for _, e := range edges {
		if e.Length != 2 {
			t.Errorf("boundary edge %v-%v has length %v", e.Start, e.End, e.Length)
		}
	}
}
