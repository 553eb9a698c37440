// Package viewer renders trimmed surfaces to still images without a display.
// It is used for quick visual checks of a reconstruction, where open
// boundary edges are drawn on top of the shaded surface.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/stl"
)

// Options controls the image size, view angles and colors
type Options struct {
	Width     int
	Height    int
	Elevation float64 // Radians
	Azimuth   float64 // Radians

	Background color.RGBA
	Surface    color.RGBA
	Boundary   color.RGBA
}

// DefaultOptions returns a 800x600 three-quarter view
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     600,
		Elevation:  0.5,
		Azimuth:    0.6,
		Background: color.RGBA{30, 30, 35, 255},
		Surface:    color.RGBA{180, 190, 210, 255},
		Boundary:   color.RGBA{230, 60, 50, 255},
	}
}

// Render draws the model with flat two-sided shading and highlights edges
// used by only one triangle
func Render(model *stl.Model, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = opts.Background.R
		img.Pix[i+1] = opts.Background.G
		img.Pix[i+2] = opts.Background.B
		img.Pix[i+3] = opts.Background.A
	}
	if model.TriangleCount() == 0 || opts.Width <= 0 || opts.Height <= 0 {
		return img
	}

	camera := NewCamera(model.BoundingBox())
	camera.Orbit(opts.Elevation, opts.Azimuth)
	view := camera.Forward()

	w, h := float64(opts.Width), float64(opts.Height)
	zbuffer := make([]float64, opts.Width*opts.Height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	project := func(v geometry.Vector3) screenPoint {
		x, y, z := camera.Project(v, w, h)
		return screenPoint{X: x, Y: y, Z: z}
	}

	for _, tri := range model.Triangles {
		// Winding is not trusted here, so both sides get the same light
		light := math.Abs(tri.CalculateNormal().Dot(view))
		fillTriangle(img, zbuffer, project(tri.V1), project(tri.V2), project(tri.V3), shade(opts.Surface, light))
	}

	for _, e := range boundaryEdges(model) {
		a, b := project(e[0]), project(e[1])
		drawLine(img, int(math.Round(a.X)), int(math.Round(a.Y)), int(math.Round(b.X)), int(math.Round(b.Y)), opts.Boundary)
	}
	return img
}

// WritePNG renders the model into a PNG file
func WritePNG(path string, model *stl.Model, opts Options) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, Render(model, opts)); err != nil {
		return fmt.Errorf("failed to encode preview %s: %w", path, err)
	}
	return file.Close()
}

// shade scales a color by ambient plus diffuse light
func shade(c color.RGBA, light float64) color.RGBA {
	f := 0.25 + 0.75*light
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// boundaryEdges returns the edges, welded by position, that only one
// triangle uses
func boundaryEdges(model *stl.Model) [][2]geometry.Vector3 {
	count := make(map[[2]geometry.Vector3]int)
	var order [][2]geometry.Vector3
	for _, t := range model.Triangles {
		vs := [3]geometry.Vector3{t.V1, t.V2, t.V3}
		for i := 0; i < 3; i++ {
			k := edgeKey(vs[i], vs[(i+1)%3])
			if count[k] == 0 {
				order = append(order, k)
			}
			count[k]++
		}
	}

	var out [][2]geometry.Vector3
	for _, k := range order {
		if count[k] == 1 {
			out = append(out, k)
		}
	}
	return out
}

func edgeKey(a, b geometry.Vector3) [2]geometry.Vector3 {
	if less(b, a) {
		a, b = b, a
	}
	return [2]geometry.Vector3{a, b}
}

func less(a, b geometry.Vector3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}
