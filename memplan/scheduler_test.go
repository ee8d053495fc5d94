package memplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scheduleNames(nodes []*Node) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	return names
}

func TestTopoScheduler_ChainKeepsOrder(t *testing.T) {
	g := buildChain(t, 4, []int64{1, 8}, DTypeInt8)
	ts := &TopoScheduler{}

	schedule := ts.Schedule(g, g.Nodes)

	assert.Equal(t, []string{"n1", "n2", "n3", "n4"}, scheduleNames(schedule))
}

func TestTopoScheduler_DiamondBreaksTiesByInsertionOrder(t *testing.T) {
	// GIVEN a diamond: data -> a -> {b, c} -> d, with b inserted before c
	g := NewGraph("diamond")
	mustValue := func(name string) {
		if _, err := g.AddValue(name, []int64{4}, DTypeInt8); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := g.AddInput("data", []int64{4}, DTypeInt8); err != nil {
		t.Fatal(err)
	}
	mustValue("va")
	mustValue("vb")
	mustValue("vc")
	mustValue("vd")
	mustNode := func(name string, ins, outs []string) {
		if _, err := g.AddNode(name, "Op", ins, outs); err != nil {
			t.Fatal(err)
		}
	}
	mustNode("a", []string{"data"}, []string{"va"})
	mustNode("b", []string{"va"}, []string{"vb"})
	mustNode("c", []string{"va"}, []string{"vc"})
	mustNode("d", []string{"vb", "vc"}, []string{"vd"})

	ts := &TopoScheduler{}
	schedule := ts.Schedule(g, g.Nodes)

	// THEN the ready set is drained in insertion order: b before c
	assert.Equal(t, []string{"a", "b", "c", "d"}, scheduleNames(schedule))
}

func TestTopoScheduler_SubsetIgnoresOutsideDependencies(t *testing.T) {
	// GIVEN a chain and a node subset excluding the producer of its live-in
	g := buildChain(t, 4, []int64{1, 8}, DTypeInt8)
	subset := []*Node{g.Nodes[2], g.Nodes[3]} // n3, n4

	ts := &TopoScheduler{}
	schedule := ts.Schedule(g, subset)

	// THEN only in-set dependencies order the schedule
	assert.Equal(t, []string{"n3", "n4"}, scheduleNames(schedule))
}

func TestTopoScheduler_Deterministic(t *testing.T) {
	g := buildChain(t, 4, []int64{1, 8}, DTypeInt8)
	ts := &TopoScheduler{}

	first := scheduleNames(ts.Schedule(g, g.Nodes))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, scheduleNames(ts.Schedule(g, g.Nodes)))
	}
}
