// The memory allocation pass: drives every sub-graph on the worklist to an
// accepted allocation or explicit abandonment, splitting sub-graphs that
// cannot shrink into the budget.

package memplan

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/dlacc/dlacc/memplan/target"
)

// SubGraphPlan is the accepted placement for one sub-graph.
type SubGraphPlan struct {
	SubGraph *SubGraph
	Peak     uint64       // watermark of the placement, < budget
	Entries  []AllocEntry // one entry per placed value, in allocation order
}

// Plan is the result of one memory allocation run. Abandoned sub-graphs
// have no placement; downstream code generation skips their nodes, the run
// as a whole still succeeds (see Run).
type Plan struct {
	Accepted  []SubGraphPlan
	Abandoned []*SubGraph
	Stats     PlanStats
}

// MemoryAllocation lowers a graph's intermediate tensors onto the target's
// local memory, partitioning the graph into sequential sub-graphs whenever
// the natural graph cannot fit.
type MemoryAllocation struct {
	tgt target.Target
	cfg PlannerConfig
}

// NewMemoryAllocation creates the pass for the given backend. The config is
// normalized the same way NewPlannerConfig does it, so a zero-value
// PlannerConfig selects the default parameters.
func NewMemoryAllocation(tgt target.Target, cfg PlannerConfig) *MemoryAllocation {
	return &MemoryAllocation{tgt: tgt, cfg: NewPlannerConfig(cfg.ShrinkFactor, cfg.SplitThreshold)}
}

// Run plans memory for the whole graph. It seeds the worklist with one
// sub-graph covering the graph, then drives each worklist entry to a fixed
// point: accepted (fits budget), or split (both halves re-planned), or
// abandoned when a single node still exceeds the budget.
//
// A missing backend is a fatal precondition failure and aborts the run;
// per-sub-graph failures are logged and swallowed so the rest of the
// worklist keeps making progress.
func (ma *MemoryAllocation) Run(g *Graph) (*Plan, error) {
	if ma.tgt == nil {
		return nil, errors.New("no backend information that is needed for memory allocation")
	}
	localMemSize := ma.tgt.LocalMemSize()
	logrus.Debugf("planning %q against %s local memory budget of %d bytes",
		g.Name, ma.tgt.Name(), localMemSize)

	mgr := NewSplitManager(g, ma.cfg)
	plan := &Plan{}
	planner := NewPlanner(localMemSize, ma.cfg.SplitThreshold, &plan.Stats)

	wl := &Worklist{}
	for _, sg := range mgr.SubGraphs() {
		wl.Push(sg)
	}

	for wl.Len() > 0 {
		sg := wl.Pop()

		// Drive this sub-graph to a terminal state. Every split shrinks its
		// node set, so the inner loop ends at acceptance or at a single node.
		for {
			outcome, peak, entries := planner.Plan(sg)
			if outcome == PlanFitted {
				plan.Accepted = append(plan.Accepted, SubGraphPlan{SubGraph: sg, Peak: peak, Entries: entries})
				plan.Stats.AcceptedGroups++
				if peak > plan.Stats.PeakAccepted {
					plan.Stats.PeakAccepted = peak
				}
				break
			}

			// Split required: undo shrink decisions first so neither half
			// inherits sizes negotiated under the wrong partition.
			sg.ResetToOrigSize()
			split := mgr.SplitNewSubGraph(sg)
			if split == nil {
				logrus.Warnf("unable to allocate memory for group %s (peak %d bytes, budget %d bytes)",
					sg.ID(), peak, localMemSize)
				plan.Abandoned = append(plan.Abandoned, sg)
				plan.Stats.AbandonedGroups++
				break
			}
			plan.Stats.Splits++
			wl.Push(split)
			// The original sub-graph lost its later half; keep planning it
			// with a fresh shrink round.
		}
	}
	return plan, nil
}
