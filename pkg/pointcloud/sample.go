package pointcloud

import (
	"fmt"
	"strings"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/philipparndt/gotrim/pkg/geometry"
)

// Shape names a primitive solid that can be sampled
type Shape string

const (
	Sphere   Shape = "sphere"
	Box      Shape = "box"
	Cylinder Shape = "cylinder"
)

// DefaultCells is the marching cubes resolution along the longest axis
const DefaultCells = 32

// Solid builds a centered primitive with the given size. size is the
// radius for spheres and cylinders and the edge length for boxes; cylinders
// are as tall as they are wide.
func Solid(shape Shape, size float64) (sdf.SDF3, error) {
	if size <= 0 {
		return nil, fmt.Errorf("size must be positive, got %g", size)
	}
	switch Shape(strings.ToLower(string(shape))) {
	case Sphere:
		return sdf.Sphere3D(size)
	case Box:
		return sdf.Box3D(v3.Vec{X: size, Y: size, Z: size}, 0)
	case Cylinder:
		return sdf.Cylinder3D(2*size, size, 0)
	default:
		return nil, fmt.Errorf("unknown shape %q", shape)
	}
}

// SampleSolid returns the distinct vertices of the marching cubes surface of
// s. cells <= 0 selects DefaultCells.
func SampleSolid(s sdf.SDF3, cells int) ([]geometry.Vector3, error) {
	if cells <= 0 {
		cells = DefaultCells
	}
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))

	seen := make(map[geometry.Vector3]bool)
	var points []geometry.Vector3
	for _, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			p := geometry.NewVector3(v.X, v.Y, v.Z)
			if !seen[p] {
				seen[p] = true
				points = append(points, p)
			}
		}
	}
	if len(points) == 0 {
		return nil, ErrEmptyPointCloud
	}
	return points, nil
}
