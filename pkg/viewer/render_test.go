package viewer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitCube() *stl.Model {
	v := func(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }
	quads := [][4]geometry.Vector3{
		{v(0, 0, 0), v(0, 1, 0), v(1, 1, 0), v(1, 0, 0)},
		{v(0, 0, 1), v(1, 0, 1), v(1, 1, 1), v(0, 1, 1)},
		{v(0, 0, 0), v(1, 0, 0), v(1, 0, 1), v(0, 0, 1)},
		{v(0, 1, 0), v(0, 1, 1), v(1, 1, 1), v(1, 1, 0)},
		{v(0, 0, 0), v(0, 0, 1), v(0, 1, 1), v(0, 1, 0)},
		{v(1, 0, 0), v(1, 1, 0), v(1, 1, 1), v(1, 0, 1)},
	}

	model := stl.NewModel("cube")
	for _, q := range quads {
		for _, tri := range [2][3]geometry.Vector3{{q[0], q[1], q[2]}, {q[0], q[2], q[3]}} {
			t := geometry.NewTriangle(geometry.Vector3{}, tri[0], tri[1], tri[2])
			t.Normal = t.CalculateNormal()
			model.AddTriangle(t)
		}
	}
	return model
}

func countColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func wideOptions() Options {
	opts := DefaultOptions()
	opts.Width = 160
	opts.Height = 40
	return opts
}

func TestRenderClosedSurface(t *testing.T) {
	opts := wideOptions()
	img := Render(unitCube(), opts)

	require.Equal(t, image.Rect(0, 0, 160, 40), img.Bounds())
	assert.NotEqual(t, opts.Background, img.RGBAAt(80, 20), "the cube covers the view center")
	assert.Equal(t, opts.Background, img.RGBAAt(0, 20), "the cube does not reach the left border")
	assert.Zero(t, countColor(img, opts.Boundary), "a closed surface has no boundary edges")
}

func TestRenderOpenSurfaceMarksBoundary(t *testing.T) {
	opts := wideOptions()
	model := stl.NewModel("tri")
	model.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0)))

	assert.Len(t, boundaryEdges(model), 3)
	img := Render(model, opts)
	assert.Positive(t, countColor(img, opts.Boundary))
}

func TestRenderEmptyModel(t *testing.T) {
	opts := wideOptions()
	img := Render(stl.NewModel("empty"), opts)
	assert.Equal(t, 160*40, countColor(img, opts.Background))
}

func TestBoundaryEdgesWeldByPosition(t *testing.T) {
	cube := unitCube()
	assert.Empty(t, boundaryEdges(cube))

	cube.Triangles = cube.Triangles[1:]
	assert.Len(t, boundaryEdges(cube), 3)
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.png")
	require.NoError(t, WritePNG(path, unitCube(), wideOptions()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 160, 40), img.Bounds())
}

func TestCameraOrbitClampsElevation(t *testing.T) {
	c := NewCamera(unitCube().BoundingBox())
	c.Orbit(3, 0)
	assert.Less(t, c.RotationX, 1.5708)
	assert.InDelta(t, c.Distance, c.Position.Distance(c.Target), 1e-12)

	x, y, _ := c.Project(c.Target, 100, 50)
	assert.InDelta(t, 50, x, 1e-9)
	assert.InDelta(t, 25, y, 1e-9)
}
