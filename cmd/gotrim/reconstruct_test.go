package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gotrim/internal/config"
	"github.com/philipparndt/gotrim/pkg/analysis"
	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/pointcloud"
	"github.com/philipparndt/gotrim/pkg/stl"
	"github.com/philipparndt/gotrim/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fibonacciSphere(n int) []geometry.Vector3 {
	golden := math.Pi * (3 - math.Sqrt(5))
	pts := make([]geometry.Vector3, n)
	for i := range pts {
		y := 1 - 2*(float64(i)+0.5)/float64(n)
		ring := math.Sqrt(1 - y*y)
		phi := golden * float64(i)
		pts[i] = geometry.NewVector3(ring*math.Cos(phi), y, ring*math.Sin(phi))
	}
	jitter(pts, 0.005, 7)
	return pts
}

func TestReconstructXYZ(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sphere.xyz")
	output := filepath.Join(dir, "sphere.stl")
	require.NoError(t, pointcloud.WriteFile(input, fibonacciSphere(80)))

	cfg := config.Default()
	cfg.Trim.MaxEdgeLength = 0.8
	cfg.Output.Binary = true
	cfg.Output.Check = true

	r, err := reconstruct(context.Background(), input, output, cfg, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	assert.Equal(t, 80, r.Points)
	require.NotNil(t, r.Report)
	assert.True(t, r.Report.Manifold())
	assert.Zero(t, r.Report.SyntheticReferences)

	model, err := stl.Parse(output)
	require.NoError(t, err)
	assert.Equal(t, r.Result.Mesh.TriangleCount(), model.TriangleCount())
	assert.Equal(t, "gotrim", model.Name)

	var buf bytes.Buffer
	printReconstruction(&buf, output, r)
	assert.Contains(t, buf.String(), "Wrote "+output)
	assert.Contains(t, buf.String(), "Non-manifold edges")
}

func TestReconstructFlatGrid(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "flat.xyz")
	var grid []geometry.Vector3
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			grid = append(grid, geometry.NewVector3(float64(x), float64(y), 0))
		}
	}
	require.NoError(t, pointcloud.WriteFile(input, grid))

	cfg := config.Default()
	cfg.Output.Check = true
	r, err := reconstruct(context.Background(), input, filepath.Join(dir, "flat.stl"), cfg, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	assert.Equal(t, 8, r.Result.Mesh.TriangleCount())
	require.NotNil(t, r.Report)
	assert.True(t, r.Report.Manifold())
	assert.Equal(t, 8, r.Report.BoundaryEdges)
	assert.Zero(t, r.Report.SyntheticReferences)
	assert.InDelta(t, 4, r.Stats.SurfaceArea, 1e-9)
}

func TestReconstructWritesPreview(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sphere.xyz")
	require.NoError(t, pointcloud.WriteFile(input, fibonacciSphere(60)))

	cfg := config.Default()
	cfg.Trim.MaxEdgeLength = 0.9
	cfg.Output.Preview = filepath.Join(dir, "sphere.png")
	_, err := reconstruct(context.Background(), input, filepath.Join(dir, "sphere.stl"), cfg, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	f, err := os.Open(cfg.Output.Preview)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	opts := viewer.DefaultOptions()
	assert.Equal(t, image.Rect(0, 0, opts.Width, opts.Height), img.Bounds())
}

func TestReconstructRejectsCollinearInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "line.xyz")
	line := []geometry.Vector3{{X: 0}, {X: 1}, {X: 2}, {X: 3}, {X: 4}}
	require.NoError(t, pointcloud.WriteFile(input, line))

	_, err := reconstruct(context.Background(), input, filepath.Join(dir, "out.stl"), config.Default(), log.New(io.Discard, "", 0))
	assert.Error(t, err)
}

func TestLoadPointsFromSTL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.stl")
	model := stl.NewModel("tri")
	model.AddTriangle(geometry.Triangle{
		V1: geometry.NewVector3(0, 0, 0),
		V2: geometry.NewVector3(1, 0, 0),
		V3: geometry.NewVector3(0, 1, 0),
	})
	require.NoError(t, stl.WriteFile(path, model, stl.ASCII))

	points, err := loadPoints(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, points, 3)

	files, err := inputFiles(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, analysis.TrimReport{Triangles: 2, Edges: 5, BoundaryEdges: 4})
	assert.Contains(t, buf.String(), "Edges: 5 (4 boundary)")
	assert.Contains(t, buf.String(), "Surface is clean")
}
