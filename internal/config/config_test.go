package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/gotrim/pkg/trim"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	input := `
[trim]
max_edge_length = 0.75
use_sliver_trim = true
face_selection_strategy = "AngleCluster"

[output]
binary = true
preview = "out.png"
`
	cfg, err := Decode(strings.NewReader(input))
	require.NoError(t, err)

	want := Default()
	want.Trim.MaxEdgeLength = 0.75
	want.Trim.UseSliverTrim = true
	want.Trim.FaceSelectionStrategy = trim.AngleCluster
	want.Output.Binary = true
	want.Output.Preview = "out.png"
	assert.Equal(t, want, cfg)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown key", "[trim]\nmax_edge = 1\n", ErrUnknownKey.Error()},
		{"unknown strategy", "[trim]\nface_selection_strategy = \"greedy\"\n", trim.ErrUnknownStrategy.Error()},
		{"invalid value", "[trim]\nmax_fold_angle = 200.0\n", trim.ErrInvalidConfiguration.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "gotrim.toml")
	require.NoError(t, os.WriteFile(path, []byte("[trim]\nmax_seeds = 3\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Trim.MaxSeeds)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestApplyOnlyChangedFlags(t *testing.T) {
	fs := pflag.NewFlagSet("reconstruct", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--strategy", "best-circumcenter", "-L", "2.5"}))

	cfg := trim.DefaultConfiguration()
	cfg.MaxSeeds = 3
	cfg.UseSliverTrim = true
	require.NoError(t, Apply(fs, &cfg))

	assert.Equal(t, trim.BestCircumcenter, cfg.FaceSelectionStrategy)
	assert.Equal(t, 2.5, cfg.MaxEdgeLength)
	// Values from a file survive when the flag was left alone.
	assert.Equal(t, 3, cfg.MaxSeeds)
	assert.True(t, cfg.UseSliverTrim)
}

func TestApplyRejectsInvalidFlags(t *testing.T) {
	fs := pflag.NewFlagSet("reconstruct", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--strategy", "nearest"}))

	cfg := trim.DefaultConfiguration()
	assert.True(t, errors.Is(Apply(fs, &cfg), trim.ErrUnknownStrategy))

	fs = pflag.NewFlagSet("reconstruct", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--max-seeds", "0"}))
	assert.True(t, errors.Is(Apply(fs, &cfg), trim.ErrInvalidConfiguration))
}
