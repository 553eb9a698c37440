package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gotrim/pkg/analysis"
	"github.com/philipparndt/gotrim/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	triCount    int
	triLargest  bool
	triSmallest bool
	triSlivers  float64
)

type triangleInfo struct {
	Index    int
	Area     float64
	Shape    float64
	LongEdge float64
	Vertices string
}

var trianglesCmd = &cobra.Command{
	Use:   "triangles [file]",
	Short: "Analyze triangles in an STL surface",
	Long: `Display triangle area, longest edge and shape ratio. The shape ratio is
(a+b-c)/c for the longest edge c; --slivers lists the triangles below a ratio,
which are the ones a sliver trim with that ratio removes.`,
	Args: cobra.ExactArgs(1),
	RunE: runTriangles,
}

func init() {
	rootCmd.AddCommand(trianglesCmd)

	trianglesCmd.Flags().IntVarP(&triCount, "count", "n", 10, "Number of triangles to display")
	trianglesCmd.Flags().BoolVarP(&triLargest, "largest", "l", false, "Show largest triangles by area")
	trianglesCmd.Flags().BoolVarP(&triSmallest, "smallest", "s", false, "Show smallest triangles by area")
	trianglesCmd.Flags().Float64Var(&triSlivers, "slivers", 0, "Show triangles whose shape ratio is below this value")
	trianglesCmd.MarkFlagsMutuallyExclusive("largest", "smallest", "slivers")
}

func runTriangles(cmd *cobra.Command, args []string) error {
	filename := args[0]

	model, err := stl.Parse(filename)
	if err != nil {
		return fmt.Errorf("error parsing STL file: %w", err)
	}
	if model.TriangleCount() == 0 {
		fmt.Println("No triangles in model.")
		return nil
	}

	triangles := make([]triangleInfo, 0, len(model.Triangles))
	totalArea := 0.0
	minArea := math.MaxFloat64
	maxArea := 0.0
	slivers := 0

	for i, tri := range model.Triangles {
		area := tri.Area()
		info := triangleInfo{
			Index:    i,
			Area:     area,
			Shape:    tri.SliverRatio(),
			LongEdge: tri.LongestEdge(),
			Vertices: fmt.Sprintf("%s, %s, %s",
				analysis.FormatVector(tri.V1),
				analysis.FormatVector(tri.V2),
				analysis.FormatVector(tri.V3)),
		}
		if triSlivers > 0 && info.Shape < triSlivers {
			slivers++
		}
		triangles = append(triangles, info)

		totalArea += area
		minArea = math.Min(minArea, area)
		maxArea = math.Max(maxArea, area)
	}

	var title string
	switch {
	case triLargest:
		sort.Slice(triangles, func(i, j int) bool {
			return triangles[i].Area > triangles[j].Area
		})
		title = fmt.Sprintf("Top %d Largest Triangles", triCount)
	case triSmallest:
		sort.Slice(triangles, func(i, j int) bool {
			return triangles[i].Area < triangles[j].Area
		})
		title = fmt.Sprintf("Top %d Smallest Triangles", triCount)
	case triSlivers > 0:
		kept := triangles[:0]
		for _, t := range triangles {
			if t.Shape < triSlivers {
				kept = append(kept, t)
			}
		}
		triangles = kept
		sort.Slice(triangles, func(i, j int) bool {
			return triangles[i].Shape < triangles[j].Shape
		})
		title = fmt.Sprintf("Slivers below shape ratio %g (found %d)", triSlivers, slivers)
	default:
		title = fmt.Sprintf("First %d Triangles", triCount)
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total triangles: %d\n", model.TriangleCount())
	fmt.Printf("Total surface area: %.6f square units\n", totalArea)
	fmt.Printf("Min triangle area: %.6f square units\n", minArea)
	fmt.Printf("Max triangle area: %.6f square units\n", maxArea)
	fmt.Printf("Avg triangle area: %.6f square units\n\n", totalArea/float64(model.TriangleCount()))

	for i := 0; i < triCount && i < len(triangles); i++ {
		tri := triangles[i]
		fmt.Printf("Triangle #%d:\n", tri.Index)
		fmt.Printf("  Area: %.6f square units\n", tri.Area)
		fmt.Printf("  Longest edge: %.6f units\n", tri.LongEdge)
		fmt.Printf("  Shape ratio: %.6f\n", tri.Shape)
		fmt.Printf("  Vertices: %s\n\n", tri.Vertices)
	}
	return nil
}
