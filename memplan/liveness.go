// Computes live intervals for the values used by a scheduled node sequence.
// The planner treats this as an external analysis: it only relies on the
// interval contract (closed ranges over schedule indices, reported in a
// deterministic order) and re-runs it after every structural change.

package memplan

// LivenessProvider reports, for the current schedule, the live interval of
// every value that needs a buffer while the schedule executes. The returned
// order is significant: the allocator places values in exactly this order.
type LivenessProvider interface {
	LiveIntervals(g *Graph, schedule []*Node) []*LiveInterval
}

// GraphLiveness is the default def-to-last-use liveness analysis.
//
// Interval rules:
//   - a value produced by schedule[i] starts at i;
//   - a value consumed by the schedule but produced outside it (live-in)
//     starts at 0;
//   - the end is the last consuming index within the schedule, extended to
//     the final index for values consumed outside the schedule or marked as
//     graph outputs (live-out).
//
// Intervals are emitted live-ins first (in first-use order), then produced
// values in schedule order, so the order is reproducible for identical
// input graphs.
type GraphLiveness struct{}

func (gl *GraphLiveness) LiveIntervals(g *Graph, schedule []*Node) []*LiveInterval {
	if len(schedule) == 0 {
		return nil
	}
	pos := make(map[*Node]int, len(schedule))
	for i, n := range schedule {
		pos[n] = i
	}
	lastIdx := len(schedule) - 1

	endOf := func(v *Value) int {
		end, defined := -1, false
		if p := g.Producer(v); p != nil {
			if i, ok := pos[p]; ok {
				end, defined = i, true
			}
		}
		for _, c := range g.Consumers(v) {
			if i, ok := pos[c]; ok {
				if i > end {
					end = i
				}
			} else {
				// consumed outside this schedule: live out
				return lastIdx
			}
		}
		if g.IsOutput(v) {
			return lastIdx
		}
		if !defined && end < 0 {
			return 0
		}
		return end
	}

	var intervals []*LiveInterval
	seen := make(map[*Value]bool)

	// Live-in values first, in first-use order.
	for _, n := range schedule {
		for _, v := range n.Inputs {
			if seen[v] {
				continue
			}
			if p := g.Producer(v); p != nil {
				if _, inside := pos[p]; inside {
					continue // produced by the schedule, handled below
				}
			}
			seen[v] = true
			intervals = append(intervals, &LiveInterval{Value: v, Start: 0, End: endOf(v)})
		}
	}

	// Produced values in schedule order.
	for i, n := range schedule {
		for _, v := range n.Outputs {
			if seen[v] {
				continue
			}
			seen[v] = true
			end := endOf(v)
			if end < i {
				end = i // dead output still occupies its buffer at the defining step
			}
			intervals = append(intervals, &LiveInterval{Value: v, Start: i, End: end})
		}
	}
	return intervals
}
