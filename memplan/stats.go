// Tracks run-wide planning statistics for final reporting.

package memplan

import "fmt"

// PlanStats aggregates statistics about one memory allocation run.
// Useful for judging how hard the planner had to work to fit a model.
type PlanStats struct {
	AcceptedGroups   int    // sub-graphs that received a fitting allocation
	AbandonedGroups  int    // sub-graphs left without a valid placement
	ShrinkIterations int    // total shrink steps across all sub-graphs
	Splits           int    // structural splits performed
	PeakAccepted     uint64 // largest accepted peak across sub-graphs (bytes)
}

// Print displays aggregated statistics at the end of a run.
func (s *PlanStats) Print() {
	fmt.Println("=== Memory Allocation Stats ===")
	fmt.Printf("Accepted groups      : %d\n", s.AcceptedGroups)
	fmt.Printf("Abandoned groups     : %d\n", s.AbandonedGroups)
	fmt.Printf("Shrink iterations    : %d\n", s.ShrinkIterations)
	fmt.Printf("Splits               : %d\n", s.Splits)
	fmt.Printf("Peak accepted        : %.2f kb\n", float64(s.PeakAccepted)/1024.0)
}
