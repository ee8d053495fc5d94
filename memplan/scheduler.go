package memplan

// NodeScheduler fixes a total execution order over a set of nodes before
// liveness is computed. It must be re-invoked whenever graph structure
// changes (e.g. after a sub-graph split); intervals computed from an old
// schedule are stale and must not be reused.
// Implementations must be deterministic for identical input.
type NodeScheduler interface {
	Schedule(g *Graph, nodes []*Node) []*Node
}

// TopoScheduler orders nodes topologically (Kahn's algorithm), considering
// only dependencies between nodes inside the given set. Ties are broken by
// graph insertion order, so the schedule is deterministic.
type TopoScheduler struct{}

func (ts *TopoScheduler) Schedule(g *Graph, nodes []*Node) []*Node {
	inSet := make(map[*Node]bool, len(nodes))
	for _, n := range nodes {
		inSet[n] = true
	}

	// In-degree counts only edges whose producer is also in the set.
	inDegree := make(map[*Node]int, len(nodes))
	for _, n := range nodes {
		for _, v := range n.Inputs {
			if prod := g.Producer(v); prod != nil && inSet[prod] && prod != n {
				inDegree[n]++
			}
		}
	}

	schedule := make([]*Node, 0, len(nodes))
	done := make(map[*Node]bool, len(nodes))
	for len(schedule) < len(nodes) {
		progressed := false
		// Scan in insertion order so equal-priority nodes keep a stable order.
		for _, n := range nodes {
			if done[n] || inDegree[n] > 0 {
				continue
			}
			schedule = append(schedule, n)
			done[n] = true
			progressed = true
			for _, v := range n.Outputs {
				for _, c := range g.Consumers(v) {
					if inSet[c] && !done[c] {
						inDegree[c]--
					}
				}
			}
		}
		if !progressed {
			// Dependency cycle; graphs are DAGs by construction, but a bad
			// hand-built graph should not hang the compiler.
			panic("TopoScheduler: dependency cycle among nodes")
		}
	}
	return schedule
}
