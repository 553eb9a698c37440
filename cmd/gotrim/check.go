package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/gotrim/pkg/analysis"
	"github.com/philipparndt/gotrim/pkg/stl"
	"github.com/spf13/cobra"
)

var checkReference string

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check that an STL surface is a consistently wound 2-manifold",
	Long: `Count boundary, non-manifold and inconsistently wound edges of an STL
surface. With --reference the faces are also compared against another STL file;
vertices are matched by exact position.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkReference, "reference", "r", "", "Reference STL to compare faces against")
}

func runCheck(cmd *cobra.Command, args []string) error {
	filename := args[0]

	model, err := stl.Parse(filename)
	if err != nil {
		return fmt.Errorf("error parsing STL file: %w", err)
	}
	models := []*stl.Model{model}
	if checkReference != "" {
		ref, err := stl.Parse(checkReference)
		if err != nil {
			return fmt.Errorf("error parsing reference: %w", err)
		}
		models = append(models, ref)
	}

	_, faces := analysis.IndexModels(models...)
	var reference [][3]int
	if len(models) > 1 {
		reference = append([][3]int{}, faces[1]...)
	}
	report := analysis.CheckTrim(faces[0], 0, reference)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Trim Check")
	fmt.Fprintln(out, "==========")
	fmt.Fprintf(out, "File: %s\n", filename)
	printReport(out, report)

	if !report.Clean() {
		return fmt.Errorf("%s failed the trim check", filename)
	}
	return nil
}

func printReport(w io.Writer, r analysis.TrimReport) {
	count := func(label string, n int) {
		value := good(n)
		if n > 0 {
			value = bad(n)
		}
		fmt.Fprintf(w, "  %s: %s\n", label, value)
	}

	fmt.Fprintf(w, "  Triangles: %d\n", r.Triangles)
	fmt.Fprintf(w, "  Edges: %d (%d boundary)\n", r.Edges, r.BoundaryEdges)
	count("Non-manifold edges", r.NonManifoldEdges)
	count("Inconsistently wound edges", r.InconsistentEdges)
	count("Degenerate faces", r.DegenerateFaces)
	count("Duplicate faces", r.DuplicateFaces)
	count("Synthetic point references", r.SyntheticReferences)
	count("Extra faces", r.ExtraFaces)
	count("Missing faces", r.MissingFaces)

	if r.Clean() {
		fmt.Fprintln(w, good("  Surface is clean"))
	} else {
		fmt.Fprintln(w, bad("  Surface has defects"))
	}
}
