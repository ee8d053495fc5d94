// Implements the Worklist, which holds all sub-graphs still needing a valid
// memory plan. Sub-graphs are pushed on creation and popped LIFO.

package memplan

import (
	"fmt"
	"strings"
)

// Worklist is a LIFO stack of sub-graphs awaiting planning. The
// most-recently-added sub-graph is processed next; split products are
// pushed so each split chain is explored before moving on. An explicit
// stack keeps split depth off the call stack, since it is data-dependent
// and unbounded in the worst case.
type Worklist struct {
	stack []*SubGraph
}

// Push adds a sub-graph to the top of the worklist.
func (wl *Worklist) Push(sg *SubGraph) {
	if sg == nil {
		panic("Push: sg must not be nil")
	}
	wl.stack = append(wl.stack, sg)
}

// Pop removes and returns the most recently pushed sub-graph.
// Returns nil if the worklist is empty.
func (wl *Worklist) Pop() *SubGraph {
	if len(wl.stack) == 0 {
		return nil
	}
	sg := wl.stack[len(wl.stack)-1]
	wl.stack = wl.stack[:len(wl.stack)-1]
	return sg
}

// Len returns the number of sub-graphs waiting.
func (wl *Worklist) Len() int {
	return len(wl.stack)
}

func (wl *Worklist) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, sg := range wl.stack {
		sb.WriteString(fmt.Sprint(sg.ID()))
		if i < len(wl.stack)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
