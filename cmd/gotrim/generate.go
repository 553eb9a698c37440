package main

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/pointcloud"
	"github.com/spf13/cobra"
)

var (
	genShape  string
	genSize   float64
	genCells  int
	genNoise  float64
	genSeed   int64
	genOutput string
)

var generateCmd = &cobra.Command{
	Use:   "generate [source.scad]",
	Short: "Generate a sample point cloud",
	Long: `Sample the surface of a primitive solid, or of an OpenSCAD model when a
source file is given, and write the points as XYZ.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genShape, "shape", string(pointcloud.Sphere), "Primitive to sample (sphere, box, cylinder)")
	generateCmd.Flags().Float64Var(&genSize, "size", 1, "Radius, or edge length for boxes")
	generateCmd.Flags().IntVar(&genCells, "cells", pointcloud.DefaultCells, "Marching cubes resolution")
	generateCmd.Flags().Float64Var(&genNoise, "noise", 0.001, "Random displacement relative to the size")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 1, "Random seed for the displacement")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output XYZ file (default: <shape>.xyz)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	var points []geometry.Vector3
	name := genShape

	if len(args) == 1 {
		var err error
		points, err = loadPoints(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	} else {
		solid, err := pointcloud.Solid(pointcloud.Shape(genShape), genSize)
		if err != nil {
			return err
		}
		points, err = pointcloud.SampleSolid(solid, genCells)
		if err != nil {
			return err
		}
	}

	if genNoise > 0 {
		jitter(points, genNoise*genSize, genSeed)
	}

	output := genOutput
	if output == "" {
		output = name + ".xyz"
	}
	if err := pointcloud.WriteFile(output, points); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d points to %s\n", len(points), output)
	return nil
}

// jitter moves every point by up to amount in a random direction. Sampled
// surfaces are full of cospherical point sets that make the Delaunay
// tetrahedralization ambiguous.
func jitter(points []geometry.Vector3, amount float64, seed int64) {
	r := rand.New(rand.NewSource(seed))
	for i := range points {
		d := geometry.NewVector3(r.Float64()*2-1, r.Float64()*2-1, r.Float64()*2-1)
		points[i] = points[i].Add(d.Mul(amount))
	}
}
