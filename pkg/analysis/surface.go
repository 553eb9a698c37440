package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/stl"
)

// EdgeInfo is one undirected edge of a surface and the first triangle using it
type EdgeInfo struct {
	Start      geometry.Vector3
	End        geometry.Vector3
	Length     float64
	TriangleID int
}

// Limits are the trim thresholds a surface is measured against. Zero
// disables a limit.
type Limits struct {
	MaxEdgeLength float64
	SliverRatio   float64
}

// SurfaceStats summarizes a reconstructed surface
type SurfaceStats struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	VertexCount   int

	// Edges are welded by position; each shared edge appears once
	Edges            []EdgeInfo
	MinEdgeLength    float64
	MaxEdgeLength    float64
	AvgEdgeLength    float64
	MedianEdgeLength float64

	// MinAngle is the smallest triangle angle in degrees
	MinAngle float64
	// LongEdges counts edges longer than Limits.MaxEdgeLength
	LongEdges int
	// Slivers counts triangles whose shape ratio is below Limits.SliverRatio
	Slivers int
}

type positionEdge [2]geometry.Vector3

func makePositionEdge(a, b geometry.Vector3) positionEdge {
	if b.X < a.X || (b.X == a.X && (b.Y < a.Y || (b.Y == a.Y && b.Z < a.Z))) {
		a, b = b, a
	}
	return positionEdge{a, b}
}

// MeasureSurface computes the statistics of model against limits
func MeasureSurface(model *stl.Model, limits Limits) *SurfaceStats {
	s := &SurfaceStats{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
		VertexCount:   len(model.Vertices()),
		MinAngle:      180,
	}
	if s.TriangleCount == 0 {
		s.MinAngle = 0
		return s
	}
	s.Dimensions = s.BoundingBox.Size()

	seen := make(map[positionEdge]bool)
	for i, tri := range model.Triangles {
		for _, a := range tri.Angles() {
			s.MinAngle = math.Min(s.MinAngle, a)
		}
		if limits.SliverRatio > 0 && tri.SliverRatio() < limits.SliverRatio {
			s.Slivers++
		}
		for _, e := range [3][2]geometry.Vector3{{tri.V1, tri.V2}, {tri.V2, tri.V3}, {tri.V3, tri.V1}} {
			k := makePositionEdge(e[0], e[1])
			if seen[k] {
				continue
			}
			seen[k] = true
			s.Edges = append(s.Edges, EdgeInfo{
				Start:      e[0],
				End:        e[1],
				Length:     e[0].Distance(e[1]),
				TriangleID: i,
			})
		}
	}

	lengths := make([]float64, len(s.Edges))
	total := 0.0
	for i, e := range s.Edges {
		lengths[i] = e.Length
		total += e.Length
		if limits.MaxEdgeLength > 0 && e.Length > limits.MaxEdgeLength {
			s.LongEdges++
		}
	}
	sort.Float64s(lengths)
	s.MinEdgeLength = lengths[0]
	s.MaxEdgeLength = lengths[len(lengths)-1]
	s.AvgEdgeLength = total / float64(len(lengths))
	if n := len(lengths); n%2 == 1 {
		s.MedianEdgeLength = lengths[n/2]
	} else {
		s.MedianEdgeLength = (lengths[n/2-1] + lengths[n/2]) / 2
	}
	return s
}

// EdgesInRange returns the edges with minLength <= length <= maxLength
func (s *SurfaceStats) EdgesInRange(minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, e := range s.Edges {
		if e.Length >= minLength && e.Length <= maxLength {
			edges = append(edges, e)
		}
	}
	return edges
}

// LongestEdges returns up to count edges, longest first
func (s *SurfaceStats) LongestEdges(count int) []EdgeInfo {
	return s.sortedEdges(count, func(a, b float64) bool { return a > b })
}

// ShortestEdges returns up to count edges, shortest first
func (s *SurfaceStats) ShortestEdges(count int) []EdgeInfo {
	return s.sortedEdges(count, func(a, b float64) bool { return a < b })
}

func (s *SurfaceStats) sortedEdges(count int, less func(a, b float64) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(s.Edges))
	copy(edges, s.Edges)
	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i].Length, edges[j].Length)
	})
	if count < len(edges) {
		edges = edges[:count]
	}
	return edges
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
