package trim

import "fmt"

// Diagnostics counts what happened during a trim. None of the counters is
// an error by itself; non-zero LoopStalls, NonManifoldRepaired or
// BackwardRollbacks point at regions worth inspecting. ReopenedEdges counts
// the boundary edges that were closed once and opened again by repair or
// post-trim.
type Diagnostics struct {
	Passes              int
	Runs                int
	Seeds               int
	FacesCommitted      int
	ManifoldConflicts   int
	LoopEvents          int
	BackwardScans       int
	BackwardRollbacks   int
	LoopStalls          int
	Rejected            int
	NonManifoldRepaired int
	PostTrimRemoved     int
	PostTrimIterations  int
	BoundaryEdges       int
	ReopenedEdges       int
}

func (d Diagnostics) String() string {
	return fmt.Sprintf("passes=%d runs=%d seeds=%d faces=%d conflicts=%d loops=%d backward=%d/%d stalls=%d rejected=%d repaired=%d posttrim=%d/%d boundary=%d reopened=%d",
		d.Passes, d.Runs, d.Seeds, d.FacesCommitted, d.ManifoldConflicts, d.LoopEvents,
		d.BackwardScans, d.BackwardRollbacks, d.LoopStalls, d.Rejected, d.NonManifoldRepaired,
		d.PostTrimRemoved, d.PostTrimIterations, d.BoundaryEdges, d.ReopenedEdges)
}
