// Package trim grows a 2-manifold triangle surface out of a Delaunay
// tetrahedralization with an advancing front.
//
// The engine starts from a seed face, keeps the open boundary of the surface
// as runs of directed edges and closes every edge with the face chosen by a
// Strategy. Every commitment goes through a ledger.Ledger, which refuses any
// face that would give an edge a third use. Local failures never abort a
// trim: they leave a gap in the surface and show up in Diagnostics.
package trim

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/ledger"
	"github.com/philipparndt/gotrim/pkg/tetmesh"
)

// ErrInvalidSeedFace is returned by Trim for caller seed faces that are not
// three distinct real points
var ErrInvalidSeedFace = errors.New("invalid seed face")

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger receiving progress and diagnostics. By default
// nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSeedFaces starts the front from the given faces instead of searching
// for seeds
func WithSeedFaces(faces ...[3]int) Option {
	return func(e *Engine) {
		e.seeds = append(e.seeds, faces...)
	}
}

// WithStrategy overrides the strategy chosen by the configuration
func WithStrategy(s Strategy) Option {
	return func(e *Engine) {
		if s != nil {
			e.strategy = s
		}
	}
}

// Engine trims one tetrahedralization. Trim can be called repeatedly; each
// call starts from an empty ledger.
type Engine struct {
	mesh     *tetmesh.Tetrahedralization
	cfg      Configuration
	strategy Strategy
	logger   *log.Logger
	seeds    [][3]int
}

// New validates the configuration and the tetrahedralization
func New(mesh *tetmesh.Tetrahedralization, cfg Configuration, opts ...Option) (*Engine, error) {
	if mesh == nil {
		return nil, fmt.Errorf("%w: nil tetrahedralization", tetmesh.ErrInvalidTetrahedralization)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("trim: %w", err)
	}
	strategy, err := NewStrategy(cfg.FaceSelectionStrategy)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		mesh:     mesh,
		cfg:      cfg,
		strategy: strategy,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Configuration returns the configuration of the engine
func (e *Engine) Configuration() Configuration {
	return e.cfg
}

// Strategy returns the face selection strategy in use
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Result is the outcome of one trim
type Result struct {
	Mesh        *Mesh
	Ledger      *ledger.Ledger
	Diagnostics Diagnostics
}

// Trim runs the advancing front, repairs non-manifold edges, applies the
// post-trim and emits the surface
func (e *Engine) Trim() (*Result, error) {
	for _, f := range e.seeds {
		if err := e.checkSeed(f); err != nil {
			return nil, err
		}
	}

	t := newTrimmer(e)
	if len(e.seeds) > 0 {
		t.seedCallerFaces(e.seeds)
		t.advanceFront()
	} else {
		for t.diag.Seeds < e.cfg.MaxSeeds && !t.exhaustedPasses() {
			if !t.seedExtreme() {
				break
			}
			t.advanceFront()
		}
	}

	t.repairNonManifold()
	t.postTrim()
	t.diag.LoopStalls = t.index.Stalls()
	t.diag.BoundaryEdges = len(t.ledger.BoundaryEdges())
	t.diag.ReopenedEdges = len(t.ledger.OpenEdgesInState(ledger.Resolved))

	mesh := Emit(e.mesh, t.ledger, e.cfg.OrientOutputNormals)
	e.logger.Printf("trim: %d triangles, %s", mesh.TriangleCount(), t.diag)
	return &Result{Mesh: mesh, Ledger: t.ledger, Diagnostics: t.diag}, nil
}

func (e *Engine) checkSeed(f [3]int) error {
	n := e.mesh.RealPointCount()
	for _, v := range f {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: %v references point %d outside [0,%d)", ErrInvalidSeedFace, f, v, n)
		}
	}
	if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
		return fmt.Errorf("%w: %v repeats a point", ErrInvalidSeedFace, f)
	}
	return nil
}

// trimmer is the mutable state of one Trim call
type trimmer struct {
	cfg      Configuration
	mesh     *tetmesh.Tetrahedralization
	index    *tetmesh.Index
	ledger   *ledger.Ledger
	strategy Strategy
	log      *log.Logger
	diag     Diagnostics

	maxPasses int
	next      []frontEdge
	queued    map[ledger.EdgeKey]bool

	seedOrder  []int
	seedCursor int
}

func newTrimmer(e *Engine) *trimmer {
	idx := tetmesh.NewIndex(e.mesh)
	idx.MaxEdgeValence = e.cfg.MaxEdgeValence

	l := ledger.New()
	l.CheckManifold = e.cfg.CheckManifoldEdges

	maxPasses := e.cfg.MaxPasses
	if maxPasses == 0 {
		maxPasses = 8*e.mesh.RealPointCount() + 64
	}

	return &trimmer{
		cfg:       e.cfg,
		mesh:      e.mesh,
		index:     idx,
		ledger:    l,
		strategy:  e.strategy,
		log:       e.logger,
		maxPasses: maxPasses,
		queued:    make(map[ledger.EdgeKey]bool),
		seedOrder: extremeOrder(e.mesh),
	}
}

func (t *trimmer) query(a, b, apex int, normal geometry.Vector3) Query {
	return Query{
		A:                 a,
		B:                 b,
		Apex:              apex,
		Normal:            normal,
		Points:            t.mesh.Points,
		IgnorePtsAfterNum: t.mesh.IgnorePtsAfterNum,
		MaxEdgeLength:     t.cfg.MaxEdgeLength,
		MaxFoldAngle:      t.cfg.MaxFoldAngle,
	}
}

func (t *trimmer) exhaustedPasses() bool {
	return t.diag.Passes >= t.maxPasses
}

// advanceFront runs passes until no edge is queued or the pass cap is hit
func (t *trimmer) advanceFront() {
	for len(t.next) > 0 {
		if t.exhaustedPasses() {
			t.log.Printf("trim: pass cap %d reached with %d queued edges", t.maxPasses, len(t.next))
			for _, e := range t.next {
				t.reject(e)
			}
			t.next = nil
			return
		}
		runs := chainRuns(t.next)
		t.next = nil
		t.queued = make(map[ledger.EdgeKey]bool)

		t.diag.Passes++
		t.diag.Runs += len(runs)
		for _, r := range runs {
			t.scanRun(r)
		}
	}
}

// extremeOrder sorts the real points by X, then Y, then Z
func extremeOrder(mesh *tetmesh.Tetrahedralization) []int {
	order := make([]int, mesh.RealPointCount())
	for i := range order {
		order[i] = i
	}
	pts := mesh.Points
	sort.SliceStable(order, func(i, j int) bool {
		a, b := pts[order[i]], pts[order[j]]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return order
}
