package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/openscad"
	"github.com/philipparndt/gotrim/pkg/pointcloud"
	"github.com/philipparndt/gotrim/pkg/stl"
)

// loadPoints reads a point cloud by file extension: STL and OpenSCAD
// sources contribute their vertices, everything else is read as XYZ
func loadPoints(ctx context.Context, path string) ([]geometry.Vector3, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		model, err := stl.Parse(path)
		if err != nil {
			return nil, err
		}
		points := pointcloud.FromModel(model)
		if len(points) == 0 {
			return nil, fmt.Errorf("%s: %w", path, pointcloud.ErrEmptyPointCloud)
		}
		return points, nil
	case ".scad":
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		return openscad.NewRenderer(filepath.Dir(abs)).SamplePoints(ctx, abs)
	default:
		return pointcloud.ReadFile(path)
	}
}

// inputFiles lists the files whose change invalidates path
func inputFiles(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".scad") {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		return openscad.NewRenderer(filepath.Dir(abs)).ResolveDependencies(abs)
	}
	return []string{path}, nil
}
