// The per-sub-graph planning loop: allocate, compare against the budget,
// shrink, and detect when shrinking has stopped paying off.

package memplan

import (
	"github.com/sirupsen/logrus"
)

// PlanOutcome is the terminal state of one planning attempt.
type PlanOutcome int

const (
	// PlanFitted means the allocation's peak fits the budget.
	PlanFitted PlanOutcome = iota
	// PlanSplitRequired means shrinking converged above the budget and the
	// sub-graph must be structurally split.
	PlanSplitRequired
)

// planTarget is what the planner needs from a sub-graph: current size
// requirements, fresh live intervals for the current schedule, and the
// shrink step. *SubGraph implements it; tests substitute synthetic targets.
type planTarget interface {
	GetMemUsage() ValueSizeMap
	LiveIntervals() []*LiveInterval
	ShrinkSize()
}

// Planner drives one sub-graph to a fitting allocation or a split signal.
type Planner struct {
	alloc     *Allocator
	budget    uint64
	threshold float64
	stats     *PlanStats
}

// NewPlanner creates a planner for the given hardware budget. An
// out-of-range threshold selects the default, so a zero-value config cannot
// force a split on the first over-budget iteration.
func NewPlanner(budget uint64, threshold float64, stats *PlanStats) *Planner {
	if stats == nil {
		stats = &PlanStats{}
	}
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultSplitThreshold
	}
	return &Planner{
		alloc:     &Allocator{},
		budget:    budget,
		threshold: threshold,
		stats:     stats,
	}
}

// Plan runs the shrink loop for one sub-graph. Each iteration rebuilds the
// size map and intervals, re-runs the allocator from scratch and compares
// the peak against the budget. Shrinking stops when a step reduces the peak
// by less than the threshold ratio allows (diminishing returns), which
// signals that a structural split is required instead.
//
// On PlanFitted the returned entries are a copy of the accepted placement
// and peak is its watermark; on PlanSplitRequired entries is nil and peak
// is the last (rejected) watermark. Shrink state mutated on the sub-graph
// is cumulative within this attempt; the caller resets it before a split.
func (p *Planner) Plan(sg planTarget) (PlanOutcome, uint64, []AllocEntry) {
	var prevMinSize uint64
	for {
		sizes := sg.GetMemUsage()
		intervals := sg.LiveIntervals()

		minSize := p.alloc.AllocateByLiveness(sizes, intervals)
		if minSize < p.budget {
			entries := append([]AllocEntry(nil), p.alloc.Entries()...)
			return PlanFitted, minSize, entries
		}

		// If the new allocation is not enough smaller than the previous one,
		// shrinking has converged without fitting; split instead.
		if prevMinSize != 0 && float64(minSize)/float64(prevMinSize) > p.threshold {
			return PlanSplitRequired, minSize, nil
		}
		prevMinSize = minSize

		logrus.Infof("allocate or shrink size: %.1f kb", float64(minSize)/1024.0)
		p.stats.ShrinkIterations++
		sg.ShrinkSize()
	}
}
