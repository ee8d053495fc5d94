// Implements the liveness-driven greedy address allocator. Given per-value
// byte requirements and live intervals in schedule order, it assigns each
// value a start address so that no two simultaneously-live values overlap,
// and reports the peak address watermark needed.

package memplan

import (
	"sort"
)

// ValueSizeMap maps a value to the byte size its buffer currently requires.
// Rebuilt fresh per planning iteration; sizes may shrink between iterations.
type ValueSizeMap map[*Value]uint64

// MemRegion is a contiguous address range [Start, Start+Size).
type MemRegion struct {
	Start uint64
	Size  uint64
}

// AllocEntry records a decided placement for one value. Entries are held by
// value in the allocator's slice and are discarded wholesale on every new
// allocation attempt; a re-run may change every placement.
type AllocEntry struct {
	Start    uint64
	Size     uint64
	Interval *LiveInterval
}

// End returns the exclusive end address of the placement.
func (e *AllocEntry) End() uint64 {
	return e.Start + e.Size
}

// hasConflict reports whether [startA, startA+sizeA) and
// [startB, startB+sizeB) overlap. Half-open ranges: touching ends are fine.
func hasConflict(startA, sizeA, startB, sizeB uint64) bool {
	endA := startA + sizeA
	endB := startB + sizeB
	return !(endA <= startB || endB <= startA)
}

// Allocator places values at byte addresses using liveness information.
// It never fails: every call produces a placement, and the caller decides
// whether the returned peak fits the hardware budget.
type Allocator struct {
	entries []AllocEntry
}

// Entries returns the placements from the most recent AllocateByLiveness
// call. The slice is the allocator's internal storage; callers keeping the
// result across attempts must copy it.
func (a *Allocator) Entries() []AllocEntry {
	return a.entries
}

// usedRegions collects the regions of already-placed entries whose live
// interval intersects li, sorted by ascending start address. The sort is
// stable so entries with equal starts keep their allocation order.
func (a *Allocator) usedRegions(li *LiveInterval) []MemRegion {
	var regions []MemRegion
	for i := range a.entries {
		if !a.entries[i].Interval.Intersects(li) {
			continue
		}
		regions = append(regions, MemRegion{Start: a.entries[i].Start, Size: a.entries[i].Size})
	}
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Start < regions[j].Start
	})
	return regions
}

// AllocateByLiveness places every value of sizes that has a live interval
// and returns the minimum memory size (peak watermark) the placement needs.
//
// Intervals are processed in the order the liveness provider produced them;
// that order determines the final layout and must not be re-sorted here.
// For each value the candidate address starts at 0 and advances past each
// conflicting region it overlaps, in ascending start order, stopping at the
// first region it clears. This is a first-fit scan over the sorted conflict
// list, not an exhaustive free-list search: a gap opened before a conflict
// the candidate has already jumped past is never revisited.
//
// The scan relies on intervals arriving in non-decreasing start order, which
// is the provider contract (live-ins at index 0 first, produced values in
// schedule order). Under that order any two placed entries intersecting the
// current interval also intersect each other, so their regions are pairwise
// disjoint and the early break cannot skip an overlapping region. Feeding
// intervals in arbitrary order voids the no-overlap guarantee.
func (a *Allocator) AllocateByLiveness(sizes ValueSizeMap, intervals []*LiveInterval) uint64 {
	a.entries = a.entries[:0]

	var minSize uint64
	for _, li := range intervals {
		required, ok := sizes[li.Value]
		if !ok {
			continue
		}

		var startAddr uint64
		conflicts := a.usedRegions(li)
		// conflicts is sorted by starting address in usedRegions.
		for _, reg := range conflicts {
			if !hasConflict(reg.Start, reg.Size, startAddr, required) {
				break
			}
			startAddr = reg.Start + reg.Size
		}

		a.entries = append(a.entries, AllocEntry{Start: startAddr, Size: required, Interval: li})
		if startAddr+required > minSize {
			minSize = startAddr + required
		}
	}
	return minSize
}
