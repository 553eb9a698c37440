// Package config loads trim settings from TOML files and command-line flags.
// Flags win over the file, but only when they were set explicitly.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/gotrim/pkg/trim"
	"github.com/spf13/pflag"
)

// ErrUnknownKey is returned for keys the configuration does not define
var ErrUnknownKey = errors.New("unknown configuration key")

// File is the layout of a configuration file
//
//	[trim]
//	max_edge_length = 0.5
//	face_selection_strategy = "angle-cluster"
//
//	[output]
//	binary = true
type File struct {
	Trim   trim.Configuration `toml:"trim"`
	Output Output             `toml:"output"`
}

// Output controls how reconstructed meshes are written
type Output struct {
	Binary bool   `toml:"binary"`
	Name   string `toml:"name"`
	// Check runs the trim checker on every reconstruction
	Check bool `toml:"check"`
	// Preview is a PNG path the result is rendered to; empty disables it
	Preview string `toml:"preview"`
}

// Default returns the configuration used without a file
func Default() File {
	return File{
		Trim:   trim.DefaultConfiguration(),
		Output: Output{Name: "gotrim"},
	}
}

// Load reads path on top of Default. An empty path returns Default.
func Load(path string) (File, error) {
	if path == "" {
		return Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML from reader on top of Default and validates the result
func Decode(reader io.Reader) (File, error) {
	cfg := Default()
	md, err := toml.NewDecoder(reader).Decode(&cfg)
	if err != nil {
		return File{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return File{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	if err := cfg.Trim.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

// Flag names shared by the commands that trim
const (
	FlagMaxEdgeLength = "max-edge-length"
	FlagSliverTrim    = "sliver-trim"
	FlagSliverRatio   = "sliver-ratio"
	FlagStrategy      = "strategy"
	FlagOrient        = "orient"
	FlagMaxFoldAngle  = "max-fold-angle"
	FlagMaxSeeds      = "max-seeds"
	FlagMaxPasses     = "max-passes"
	FlagCheckManifold = "check-manifold"
)

// RegisterFlags adds the trim flags to fs with the default values
func RegisterFlags(fs *pflag.FlagSet) {
	d := trim.DefaultConfiguration()
	fs.Float64P(FlagMaxEdgeLength, "L", d.MaxEdgeLength, "Longest allowed edge, 0 for no limit")
	fs.Bool(FlagSliverTrim, d.UseSliverTrim, "Remove sliver faces after trimming")
	fs.Float64(FlagSliverRatio, d.SliverRatio, "Shape ratio below which a face is a sliver")
	fs.StringP(FlagStrategy, "s", d.FaceSelectionStrategy.String(),
		"Face selection strategy (circumcenter-distance, angle-cluster, retriangulation, best-circumcenter)")
	fs.Bool(FlagOrient, d.OrientOutputNormals, "Orient output normals consistently")
	fs.Float64(FlagMaxFoldAngle, d.MaxFoldAngle, "Largest fold between neighboring faces in degrees")
	fs.Int(FlagMaxSeeds, d.MaxSeeds, "Maximum number of seed faces")
	fs.Int(FlagMaxPasses, d.MaxPasses, "Maximum advancing-front passes, 0 for automatic")
	fs.Bool(FlagCheckManifold, d.CheckManifoldEdges, "Refuse faces that would make an edge non-manifold")
}

// Apply copies every flag that was set on the command line onto cfg and
// validates the result
func Apply(fs *pflag.FlagSet, cfg *trim.Configuration) error {
	var errs []error
	float := func(name string, dst *float64) {
		if fs.Changed(name) {
			v, err := fs.GetFloat64(name)
			errs = append(errs, err)
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) {
		if fs.Changed(name) {
			v, err := fs.GetBool(name)
			errs = append(errs, err)
			*dst = v
		}
	}
	integer := func(name string, dst *int) {
		if fs.Changed(name) {
			v, err := fs.GetInt(name)
			errs = append(errs, err)
			*dst = v
		}
	}

	float(FlagMaxEdgeLength, &cfg.MaxEdgeLength)
	boolean(FlagSliverTrim, &cfg.UseSliverTrim)
	float(FlagSliverRatio, &cfg.SliverRatio)
	boolean(FlagOrient, &cfg.OrientOutputNormals)
	float(FlagMaxFoldAngle, &cfg.MaxFoldAngle)
	integer(FlagMaxSeeds, &cfg.MaxSeeds)
	integer(FlagMaxPasses, &cfg.MaxPasses)
	boolean(FlagCheckManifold, &cfg.CheckManifoldEdges)

	if fs.Changed(FlagStrategy) {
		name, err := fs.GetString(FlagStrategy)
		if err == nil {
			cfg.FaceSelectionStrategy, err = trim.ParseStrategyKind(name)
		}
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	return cfg.Validate()
}
