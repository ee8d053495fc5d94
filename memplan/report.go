// Human-facing dump of a finished memory plan. Downstream code generation
// consumes the AllocEntry sets directly; this report exists for inspection.

package memplan

import (
	"fmt"
	"io"
)

// Dump writes the final allocation, one line per placed value:
// its name, address range as [start, end), total size, and live range as
// [liveStart, liveEnd]. Sub-graphs appear in acceptance order; abandoned
// sub-graphs are listed last with their node names.
func (p *Plan) Dump(w io.Writer) {
	for _, sgp := range p.Accepted {
		fmt.Fprintf(w, "%s: (peak %d bytes)\n", sgp.SubGraph.ID(), sgp.Peak)
		for i := range sgp.Entries {
			e := &sgp.Entries[i]
			li := e.Interval
			fmt.Fprintf(w, "%s: \t[%d, %d)\t(total: %d)\t [%d, %d]\n",
				li.Value.Name, e.Start, e.End(), e.Size, li.Start, li.End)
		}
	}
	for _, sg := range p.Abandoned {
		fmt.Fprintf(w, "%s: unallocated (%d nodes)\n", sg.ID(), len(sg.Nodes()))
	}
}
