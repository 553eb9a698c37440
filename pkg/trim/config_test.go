package trim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.025, cfg.SliverRatio)
	assert.Equal(t, 89.0, cfg.MaxFoldAngle)
	assert.True(t, cfg.CheckManifoldEdges)
	assert.Equal(t, CircumcenterDistance, cfg.FaceSelectionStrategy)
}

func TestConfigurationValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Configuration)
	}{
		{"negative edge length", func(c *Configuration) { c.MaxEdgeLength = -1 }},
		{"sliver ratio", func(c *Configuration) { c.UseSliverTrim = true; c.SliverRatio = 0 }},
		{"fold angle", func(c *Configuration) { c.MaxFoldAngle = 181 }},
		{"seeds", func(c *Configuration) { c.MaxSeeds = 0 }},
		{"passes", func(c *Configuration) { c.MaxPasses = -1 }},
		{"post-trim iterations", func(c *Configuration) { c.MaxPostTrimIterations = 0 }},
		{"edge valence", func(c *Configuration) { c.MaxEdgeValence = 2 }},
		{"strategy", func(c *Configuration) { c.FaceSelectionStrategy = StrategyKind(9) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfiguration()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration)
		})
	}

	// A sliver ratio outside its range does not matter when sliver trim is off.
	cfg := DefaultConfiguration()
	cfg.SliverRatio = 0
	assert.NoError(t, cfg.Validate())
}

func TestParseStrategyKind(t *testing.T) {
	tests := []struct {
		in   string
		want StrategyKind
	}{
		{"circumcenter-distance", CircumcenterDistance},
		{"CircumcenterDistance", CircumcenterDistance},
		{"angle_cluster", AngleCluster},
		{"RETRIANGULATION", Retriangulation},
		{"best-circumcenter", BestCircumcenter},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrategyKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStrategyKind("voronoi")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestStrategyKindText(t *testing.T) {
	text, err := AngleCluster.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "angle-cluster", string(text))

	var k StrategyKind
	require.NoError(t, k.UnmarshalText([]byte("best-circumcenter")))
	assert.Equal(t, BestCircumcenter, k)
	assert.ErrorIs(t, k.UnmarshalText([]byte("nope")), ErrUnknownStrategy)

	_, err = StrategyKind(7).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Equal(t, "StrategyKind(7)", StrategyKind(7).String())
}
