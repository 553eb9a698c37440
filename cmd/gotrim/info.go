package main

import (
	"fmt"

	"github.com/philipparndt/gotrim/pkg/analysis"
	"github.com/philipparndt/gotrim/pkg/stl"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about an STL surface",
	Long: `Show dimensions, triangle count, surface area, edge statistics and the surface
topology. Edge lengths and triangle shapes are measured against the trim limits
of the configuration file.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	model, err := stl.Parse(filename)
	if err != nil {
		return fmt.Errorf("error parsing STL file: %w", err)
	}

	limits := limitsOf(cfg.Trim)
	stats := analysis.MeasureSurface(model, limits)
	_, faces := analysis.IndexModels(model)
	report := analysis.CheckTrim(faces[0], 0, nil)

	fmt.Println("STL File Information")
	fmt.Println("====================")
	if model.Name != "" {
		fmt.Printf("Name: %s\n", model.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %d\n", stats.TriangleCount)
	fmt.Printf("  Vertices: %d\n", stats.VertexCount)
	fmt.Printf("  Edges: %d\n", len(stats.Edges))
	fmt.Printf("  Surface Area: %.6f square units\n\n", stats.SurfaceArea)

	fmt.Println("Topology:")
	fmt.Printf("  Boundary edges: %d\n", report.BoundaryEdges)
	fmt.Printf("  Non-manifold edges: %d\n", report.NonManifoldEdges)
	fmt.Printf("  Inconsistently wound edges: %d\n", report.InconsistentEdges)
	switch {
	case !report.Manifold():
		fmt.Printf("  %s\n\n", bad("Not a 2-manifold"))
	case report.BoundaryEdges == 0:
		fmt.Printf("  %s\n\n", good("Closed 2-manifold"))
	default:
		fmt.Printf("  %s\n\n", warn("Open 2-manifold"))
	}

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(stats.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(stats.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(stats.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", stats.Dimensions.X)
	fmt.Printf("  Depth (Y): %.6f units\n", stats.Dimensions.Y)
	fmt.Printf("  Height (Z): %.6f units\n", stats.Dimensions.Z)
	fmt.Printf("  Diagonal: %.6f units\n\n", stats.BoundingBox.Diagonal())

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", stats.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", stats.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n", stats.AvgEdgeLength)
	fmt.Printf("  Median: %.6f units\n\n", stats.MedianEdgeLength)

	fmt.Println("Trim Limits:")
	fmt.Printf("  Smallest angle: %.3f degrees\n", stats.MinAngle)
	if limits.MaxEdgeLength > 0 {
		fmt.Printf("  Edges over %g: %s\n", limits.MaxEdgeLength, countValue(stats.LongEdges))
	} else {
		fmt.Println("  Edge length: unlimited")
	}
	fmt.Printf("  Slivers below %g: %s\n", limits.SliverRatio, countValue(stats.Slivers))
	return nil
}

// countValue colors a defect count
func countValue(n int) string {
	if n > 0 {
		return warn(n)
	}
	return good(n)
}
