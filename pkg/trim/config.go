package trim

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfiguration is wrapped by every Configuration.Validate failure
	ErrInvalidConfiguration = errors.New("invalid trim configuration")
	// ErrUnknownStrategy is returned when a strategy name cannot be parsed
	ErrUnknownStrategy = errors.New("unknown face selection strategy")
)

// StrategyKind selects the face selection heuristic
type StrategyKind int

const (
	CircumcenterDistance StrategyKind = iota
	AngleCluster
	Retriangulation
	BestCircumcenter
)

var strategyNames = map[StrategyKind]string{
	CircumcenterDistance: "circumcenter-distance",
	AngleCluster:         "angle-cluster",
	Retriangulation:      "retriangulation",
	BestCircumcenter:     "best-circumcenter",
}

func (k StrategyKind) String() string {
	if name, ok := strategyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("StrategyKind(%d)", int(k))
}

// ParseStrategyKind accepts the kebab-case name ("angle-cluster") as well as
// the Go identifier ("AngleCluster"), case-insensitively
func ParseStrategyKind(s string) (StrategyKind, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for k, name := range strategyNames {
		if strings.ReplaceAll(name, "-", "") == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// MarshalText implements encoding.TextMarshaler
func (k StrategyKind) MarshalText() ([]byte, error) {
	if _, ok := strategyNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *StrategyKind) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategyKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Configuration holds every tunable of a trimming run. The zero value is not
// usable; start from DefaultConfiguration.
type Configuration struct {
	// MaxEdgeLength excludes candidates farther than this from either edge
	// endpoint and removes longer faces in post-trim. 0 disables the limit.
	MaxEdgeLength float64 `toml:"max_edge_length"`
	// UseSliverTrim removes faces whose shape ratio is below SliverRatio
	UseSliverTrim bool    `toml:"use_sliver_trim"`
	SliverRatio   float64 `toml:"sliver_ratio"`

	FaceSelectionStrategy StrategyKind `toml:"face_selection_strategy"`

	// CheckManifoldEdges refuses faces that would give an edge a third use.
	// Turning it off is only useful for debugging the repair pass.
	CheckManifoldEdges  bool `toml:"check_manifold_edges"`
	OrientOutputNormals bool `toml:"orient_output_normals"`

	// MaxFoldAngle is the largest dihedral change in degrees between the
	// previous face and a candidate face
	MaxFoldAngle float64 `toml:"max_fold_angle"`

	MaxSeeds int `toml:"max_seeds"`
	// MaxPasses caps the advancing-front passes; 0 derives a cap from the
	// point count
	MaxPasses      int `toml:"max_passes"`
	MaxEdgeRetries int `toml:"max_edge_retries"`
	// MaxBackwardSteps caps a backward scan; 0 lets it run to the forward
	// position
	MaxBackwardSteps      int `toml:"max_backward_steps"`
	MaxPostTrimIterations int `toml:"max_post_trim_iterations"`
	MaxEdgeValence        int `toml:"max_edge_valence"`
}

// DefaultConfiguration returns the configuration used when nothing is set
func DefaultConfiguration() Configuration {
	return Configuration{
		SliverRatio:           0.025,
		FaceSelectionStrategy: CircumcenterDistance,
		CheckManifoldEdges:    true,
		MaxFoldAngle:          89,
		MaxSeeds:              8,
		MaxEdgeRetries:        2,
		MaxPostTrimIterations: 16,
		MaxEdgeValence:        64,
	}
}

// Validate reports the first setting outside its range
func (c Configuration) Validate() error {
	switch {
	case c.MaxEdgeLength < 0:
		return fmt.Errorf("%w: max edge length %g is negative", ErrInvalidConfiguration, c.MaxEdgeLength)
	case c.UseSliverTrim && (c.SliverRatio <= 0 || c.SliverRatio >= 1):
		return fmt.Errorf("%w: sliver ratio %g outside (0,1)", ErrInvalidConfiguration, c.SliverRatio)
	case c.MaxFoldAngle <= 0 || c.MaxFoldAngle > 180:
		return fmt.Errorf("%w: max fold angle %g outside (0,180]", ErrInvalidConfiguration, c.MaxFoldAngle)
	case c.MaxSeeds < 1:
		return fmt.Errorf("%w: max seeds must be at least 1", ErrInvalidConfiguration)
	case c.MaxPasses < 0, c.MaxEdgeRetries < 0, c.MaxBackwardSteps < 0:
		return fmt.Errorf("%w: pass, retry and backward step caps must not be negative", ErrInvalidConfiguration)
	case c.MaxPostTrimIterations < 1:
		return fmt.Errorf("%w: max post-trim iterations must be at least 1", ErrInvalidConfiguration)
	case c.MaxEdgeValence < 3:
		return fmt.Errorf("%w: max edge valence %d below 3", ErrInvalidConfiguration, c.MaxEdgeValence)
	}
	if _, ok := strategyNames[c.FaceSelectionStrategy]; !ok {
		return fmt.Errorf("%w: %w %d", ErrInvalidConfiguration, ErrUnknownStrategy, int(c.FaceSelectionStrategy))
	}
	return nil
}
