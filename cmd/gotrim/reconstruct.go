package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/philipparndt/gotrim/internal/config"
	"github.com/philipparndt/gotrim/pkg/analysis"
	"github.com/philipparndt/gotrim/pkg/delaunay"
	"github.com/philipparndt/gotrim/pkg/stl"
	"github.com/philipparndt/gotrim/pkg/trim"
	"github.com/philipparndt/gotrim/pkg/viewer"
	"github.com/philipparndt/gotrim/pkg/watcher"
	"github.com/spf13/cobra"
)

var (
	reconstructOutput  string
	reconstructBinary  bool
	reconstructCheck   bool
	reconstructWatch   bool
	reconstructPreview string
)

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct [points]",
	Short: "Reconstruct a triangle surface from a point cloud",
	Long: `Tetrahedralize the points of an XYZ, STL or OpenSCAD file and trim the
tetrahedralization to a manifold surface written as STL.

Trim settings come from the configuration file; flags given on the command
line override it.`,
	Args: cobra.ExactArgs(1),
	RunE: runReconstruct,
}

func init() {
	rootCmd.AddCommand(reconstructCmd)

	reconstructCmd.Flags().StringVarP(&reconstructOutput, "output", "o", "", "Output STL file (default: <input>.trim.stl)")
	reconstructCmd.Flags().BoolVarP(&reconstructBinary, "binary", "b", false, "Write binary STL")
	reconstructCmd.Flags().BoolVar(&reconstructCheck, "check", false, "Run the trim checker on the result")
	reconstructCmd.Flags().StringVar(&reconstructPreview, "preview", "", "Render the result to a PNG file")
	reconstructCmd.Flags().BoolVarP(&reconstructWatch, "watch", "w", false, "Reconstruct again whenever the input changes")
	config.RegisterFlags(reconstructCmd.Flags())
}

func runReconstruct(cmd *cobra.Command, args []string) error {
	input := args[0]
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("binary") {
		cfg.Output.Binary = reconstructBinary
	}
	if cmd.Flags().Changed("check") {
		cfg.Output.Check = reconstructCheck
	}
	if cmd.Flags().Changed("preview") {
		cfg.Output.Preview = reconstructPreview
	}

	output := reconstructOutput
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".trim.stl"
	}

	logger := newLogger()
	r, err := reconstruct(cmd.Context(), input, output, cfg, logger)
	if err != nil {
		return err
	}
	printReconstruction(cmd.OutOrStdout(), output, r)

	if !reconstructWatch {
		return nil
	}
	return watchReconstruct(cmd, input, output, cfg, logger)
}

type reconstruction struct {
	Points     int
	Duplicates int
	Result     *trim.Result
	Stats      *analysis.SurfaceStats
	Report     *analysis.TrimReport
}

// reconstruct runs the whole pipeline from input file to output STL
func reconstruct(ctx context.Context, input, output string, cfg config.File, logger *log.Logger) (*reconstruction, error) {
	points, err := loadPoints(ctx, input)
	if err != nil {
		return nil, err
	}

	tets, err := delaunay.Tetrahedralize(points)
	if err != nil {
		return nil, fmt.Errorf("failed to tetrahedralize %s: %w", input, err)
	}
	logger.Printf("delaunay: %d points, %d tetrahedra, %d duplicates dropped",
		len(points), len(tets.Tetrahedra), tets.Duplicates)

	engine, err := trim.New(tets.Tetrahedralization, cfg.Trim, trim.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	res, err := engine.Trim()
	if err != nil {
		return nil, err
	}

	format := stl.ASCII
	if cfg.Output.Binary {
		format = stl.Binary
	}
	model := res.Mesh.ToModel(cfg.Output.Name)
	if err := stl.WriteFile(output, model, format); err != nil {
		return nil, err
	}

	r := &reconstruction{
		Points:     len(points),
		Duplicates: tets.Duplicates,
		Result:     res,
		Stats:      analysis.MeasureSurface(model, limitsOf(cfg.Trim)),
	}
	if cfg.Output.Preview != "" {
		if err := viewer.WritePNG(cfg.Output.Preview, model, viewer.DefaultOptions()); err != nil {
			return nil, err
		}
		logger.Printf("preview: %s", cfg.Output.Preview)
	}
	if cfg.Output.Check {
		report := analysis.CheckTrim(res.Mesh.SourceFaces(), tets.IgnorePtsAfterNum, nil)
		r.Report = &report
	}
	return r, nil
}

func printReconstruction(w io.Writer, output string, r *reconstruction) {
	d := r.Result.Diagnostics
	fmt.Fprintf(w, "Wrote %s\n", output)
	fmt.Fprintf(w, "  Points: %d (%d duplicates dropped)\n", r.Points, r.Duplicates)
	fmt.Fprintf(w, "  Triangles: %d\n", r.Result.Mesh.TriangleCount())
	fmt.Fprintf(w, "  Seeds: %d, passes: %d, runs: %d\n", d.Seeds, d.Passes, d.Runs)
	fmt.Fprintf(w, "  Boundary edges: %d\n", d.BoundaryEdges)
	if st := r.Stats; st != nil && st.TriangleCount > 0 {
		fmt.Fprintf(w, "  Edge length: %.6f to %.6f (median %.6f)\n", st.MinEdgeLength, st.MaxEdgeLength, st.MedianEdgeLength)
		fmt.Fprintf(w, "  Smallest angle: %.3f degrees, slivers: %d\n", st.MinAngle, st.Slivers)
	}

	if d.Rejected > 0 {
		fmt.Fprintf(w, "  %s %d front edges could not be closed\n", warn("Warning:"), d.Rejected)
	}
	if d.NonManifoldRepaired > 0 {
		fmt.Fprintf(w, "  %s %d faces removed to repair non-manifold edges\n", warn("Warning:"), d.NonManifoldRepaired)
	}
	if d.LoopStalls > 0 {
		fmt.Fprintf(w, "  %s %d edge walks stalled\n", warn("Warning:"), d.LoopStalls)
	}
	if d.BackwardRollbacks > 0 {
		fmt.Fprintf(w, "  %s %d backward scans rolled back\n", warn("Warning:"), d.BackwardRollbacks)
	}

	if r.Report != nil {
		printReport(w, *r.Report)
	}
}

// watchReconstruct reruns the pipeline on every input change until
// interrupted
func watchReconstruct(cmd *cobra.Command, input, output string, cfg config.File, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	files, err := inputFiles(input)
	if err != nil {
		return err
	}
	fw, err := watcher.NewFileWatcher(300*time.Millisecond, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	var mu sync.Mutex
	out := cmd.OutOrStdout()
	rerun := func(path string) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Fprintf(out, "\n%s changed, reconstructing\n", filepath.Base(path))
		r, err := reconstruct(ctx, input, output, cfg, logger)
		if err != nil {
			fmt.Fprintf(out, "%s %v\n", bad("Error:"), err)
			return
		}
		printReconstruction(out, output, r)
	}
	if err := fw.Watch(files, rerun); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nWatching %d file(s), press Ctrl+C to stop\n", len(files))
	fw.Run(ctx)
	return nil
}
