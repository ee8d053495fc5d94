// SubGraph and SplitManager: the structural services the planner negotiates
// with. A SubGraph owns the mutable per-value size state the shrink loop
// works on; the SplitManager owns partitioning decisions.

package memplan

import (
	"fmt"
)

// SubGraph is a partition of the graph's nodes that is scheduled and
// allocated independently, executed in sequence with its siblings. It
// carries the current requested byte size per value, which the planner may
// shrink step by step and must reset before any structural split.
type SubGraph struct {
	id    string
	mgr   *SplitManager
	nodes []*Node // subset of the graph's nodes, insertion order

	curSize  map[*Value]uint64
	origSize map[*Value]uint64
}

// ID returns the sub-graph's diagnostic identifier, e.g. "group-0".
func (sg *SubGraph) ID() string {
	return sg.id
}

// Nodes returns the sub-graph's node set. Callers must not mutate it;
// structural changes go through SplitManager.SplitNewSubGraph.
func (sg *SubGraph) Nodes() []*Node {
	return sg.nodes
}

// rebuildSizes recomputes the per-value size state from the graph, keeping
// every value that needs a local buffer while this sub-graph executes:
// values produced by its nodes plus live-in values consumed from outside.
func (sg *SubGraph) rebuildSizes() {
	inSet := make(map[*Node]bool, len(sg.nodes))
	for _, n := range sg.nodes {
		inSet[n] = true
	}
	sg.curSize = make(map[*Value]uint64)
	sg.origSize = make(map[*Value]uint64)
	add := func(v *Value) {
		if _, ok := sg.origSize[v]; ok {
			return
		}
		size := v.ByteSize()
		sg.origSize[v] = size
		sg.curSize[v] = size
	}
	for _, n := range sg.nodes {
		for _, v := range n.Inputs {
			if p := sg.mgr.graph.Producer(v); p == nil || !inSet[p] {
				add(v) // live-in
			}
		}
		for _, v := range n.Outputs {
			add(v)
		}
	}
}

// GetMemUsage returns a fresh copy of the current per-value requirements.
func (sg *SubGraph) GetMemUsage() ValueSizeMap {
	usage := make(ValueSizeMap, len(sg.curSize))
	for v, size := range sg.curSize {
		usage[v] = size
	}
	return usage
}

// ShrinkSize reduces every value's current requirement by one step,
// multiplying by the configured shrink factor. Sizes never drop below one
// element of the value's data type, so repeated shrinking is well-founded:
// once every value sits at its floor, further calls change nothing and the
// planner's convergence guard fires.
func (sg *SubGraph) ShrinkSize() {
	for v, size := range sg.curSize {
		shrunk := uint64(float64(size) * sg.mgr.cfg.ShrinkFactor)
		if floor := v.DType.Size(); shrunk < floor {
			shrunk = floor
		}
		if shrunk < size {
			sg.curSize[v] = shrunk
		}
	}
}

// ResetToOrigSize restores every value's requirement to its original size.
// Required before a structural split: a split candidate must not inherit
// shrink decisions made under the wrong partition.
func (sg *SubGraph) ResetToOrigSize() {
	for v, size := range sg.origSize {
		sg.curSize[v] = size
	}
}

// LiveIntervals schedules the sub-graph's nodes and computes fresh live
// intervals for them. Recomputed on every call so that intervals are never
// reused across a structural change.
func (sg *SubGraph) LiveIntervals() []*LiveInterval {
	schedule := sg.mgr.scheduler.Schedule(sg.mgr.graph, sg.nodes)
	return sg.mgr.liveness.LiveIntervals(sg.mgr.graph, schedule)
}

// SplitManager owns the sub-graphs of one graph and the splitting policy.
type SplitManager struct {
	graph     *Graph
	scheduler NodeScheduler
	liveness  LivenessProvider
	cfg       PlannerConfig

	subgraphs []*SubGraph
	nextID    int
}

// NewSplitManager seeds the manager with one sub-graph covering the whole
// graph, scheduled by a deterministic topological order.
func NewSplitManager(g *Graph, cfg PlannerConfig) *SplitManager {
	m := &SplitManager{
		graph:     g,
		scheduler: &TopoScheduler{},
		liveness:  &GraphLiveness{},
		cfg:       cfg,
	}
	whole := m.newSubGraph(append([]*Node(nil), g.Nodes...))
	m.subgraphs = []*SubGraph{whole}
	return m
}

func (m *SplitManager) newSubGraph(nodes []*Node) *SubGraph {
	sg := &SubGraph{
		id:    fmt.Sprintf("group-%d", m.nextID),
		mgr:   m,
		nodes: nodes,
	}
	m.nextID++
	sg.rebuildSizes()
	return sg
}

// SubGraphs returns the current sub-graphs in creation order.
func (m *SplitManager) SubGraphs() []*SubGraph {
	return m.subgraphs
}

// SplitNewSubGraph splits off the later half of sg's scheduled nodes into a
// new sub-graph executed after sg, and returns it. Returns nil when sg is a
// single node and no further split is structurally possible. Both halves
// get fresh size state, so node counts strictly decrease and every split
// chain terminates at single-node sub-graphs.
func (m *SplitManager) SplitNewSubGraph(sg *SubGraph) *SubGraph {
	if len(sg.nodes) <= 1 {
		return nil
	}
	schedule := m.scheduler.Schedule(m.graph, sg.nodes)
	cut := len(schedule) / 2
	head := append([]*Node(nil), schedule[:cut]...)
	tail := append([]*Node(nil), schedule[cut:]...)

	sg.nodes = head
	sg.rebuildSizes()

	split := m.newSubGraph(tail)
	m.subgraphs = append(m.subgraphs, split)
	return split
}
