package memplan

import "fmt"

// LiveInterval is the schedule-index range [Start, End] during which a
// buffer holding Value must remain reserved. Endpoints are inclusive.
// Intervals are valid only for the schedule they were computed from and
// must be recomputed whenever the schedule changes (e.g. after a split).
type LiveInterval struct {
	Value *Value // graph-owned value this interval belongs to
	Start int    // first schedule index at which the buffer is live
	End   int    // last schedule index at which the buffer is live (inclusive)
}

// Intersects reports whether the two closed ranges overlap.
// Sharing a single endpoint counts as an intersection.
func (li *LiveInterval) Intersects(other *LiveInterval) bool {
	return li.Start <= other.End && other.Start <= li.End
}

func (li *LiveInterval) String() string {
	return fmt.Sprintf("%s[%d, %d]", li.Value.Name, li.Start, li.End)
}
