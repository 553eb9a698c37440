package main

import (
	"fmt"
	"math"

	"github.com/philipparndt/gotrim/pkg/analysis"
	"github.com/philipparndt/gotrim/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	edgesCount     int
	edgesLongest   bool
	edgesShortest  bool
	edgesBoundary  bool
	edgesOverLimit bool
	edgesMinLength float64
	edgesMaxLength float64
)

var edgesCmd = &cobra.Command{
	Use:   "edges [file]",
	Short: "Analyze and measure edges in an STL surface",
	Long: `List the longest, shortest or open (boundary) edges of a surface, the edges
over the configured max edge length, or the edges within a length range. Long
edges left after trimming usually span gaps in the point cloud; boundary edges
mark holes.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 10, "Number of edges to display")
	edgesCmd.Flags().BoolVarP(&edgesLongest, "longest", "l", false, "Show longest edges")
	edgesCmd.Flags().BoolVarP(&edgesShortest, "shortest", "s", false, "Show shortest edges")
	edgesCmd.Flags().BoolVarP(&edgesBoundary, "boundary", "b", false, "Show edges used by a single triangle")
	edgesCmd.Flags().Float64Var(&edgesMinLength, "min", 0.0, "Minimum edge length filter")
	edgesCmd.Flags().Float64Var(&edgesMaxLength, "max", 0.0, "Maximum edge length filter")
	edgesCmd.Flags().BoolVar(&edgesOverLimit, "over-limit", false, "Show edges longer than the configured max edge length")
	edgesCmd.MarkFlagsMutuallyExclusive("longest", "shortest", "boundary", "over-limit")
}

func runEdges(cmd *cobra.Command, args []string) error {
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
	result := analysis.MeasureSurface(model, limits)

	var edges []analysis.EdgeInfo
	var title string

	switch {
	case edgesLongest:
		edges = result.LongestEdges(edgesCount)
		title = fmt.Sprintf("Top %d Longest Edges", len(edges))
	case edgesShortest:
		edges = result.ShortestEdges(edgesCount)
		title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
	case edgesBoundary:
		edges = analysis.FindBoundaryEdges(model)
		title = fmt.Sprintf("Boundary Edges (found %d)", len(edges))
		if len(edges) > edgesCount {
			edges = edges[:edgesCount]
		}
	case edgesOverLimit:
		if limits.MaxEdgeLength <= 0 {
			return fmt.Errorf("no max edge length configured")
		}
		edges = result.EdgesInRange(math.Nextafter(limits.MaxEdgeLength, math.Inf(1)), math.Inf(1))
		title = fmt.Sprintf("Edges over %g units (found %d)", limits.MaxEdgeLength, len(edges))
		if len(edges) > edgesCount {
			edges = edges[:edgesCount]
		}
	case edgesMaxLength > 0:
		edges = result.EdgesInRange(edgesMinLength, edgesMaxLength)
		title = fmt.Sprintf("Edges between %.6f and %.6f units (found %d)", edgesMinLength, edgesMaxLength, len(edges))
		if len(edges) > edgesCount {
			edges = edges[:edgesCount]
		}
	default:
		edges = result.Edges
		title = fmt.Sprintf("All Edges (showing first %d of %d)", edgesCount, len(edges))
		if len(edges) > edgesCount {
			edges = edges[:edgesCount]
		}
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total edges in model: %d\n", len(result.Edges))
	fmt.Printf("Min edge length: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("Max edge length: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("Avg edge length: %.6f units\n\n", result.AvgEdgeLength)

	if len(edges) == 0 {
		fmt.Println("No edges found matching the criteria.")
		return nil
	}

	fmt.Printf("%-6s %-9s %-35s %-35s %-15s\n", "Index", "Triangle", "Start", "End", "Length")
	fmt.Println("---------------------------------------------------------------------------------------------------------------------")
	for i, edge := range edges {
		fmt.Printf("%-6d %-9d %-35s %-35s %-15.6f\n",
			i+1,
			edge.TriangleID,
			analysis.FormatVector(edge.Start),
			analysis.FormatVector(edge.End),
			edge.Length)
	}
	return nil
}
