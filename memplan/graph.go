// Defines the in-memory computation graph the memory planner operates on.
// Graphs are built once (from a graphspec file or directly in tests) and are
// structurally immutable afterwards; only the planner's per-value size state
// (owned by SubGraph) changes during planning.

package memplan

import (
	"fmt"
)

// DataType identifies the element type of a tensor value.
type DataType string

const (
	DTypeFloat32 DataType = "float32"
	DTypeFloat16 DataType = "float16"
	DTypeInt32   DataType = "int32"
	DTypeInt16   DataType = "int16"
	DTypeInt8    DataType = "int8"
)

// dataTypeSizes maps recognized data types to their per-element byte width.
var dataTypeSizes = map[DataType]uint64{
	DTypeFloat32: 4,
	DTypeFloat16: 2,
	DTypeInt32:   4,
	DTypeInt16:   2,
	DTypeInt8:    1,
}

// IsValidDataType returns true if the given string is a recognized data type.
// Empty string is accepted and defaults to float32.
func IsValidDataType(dtype string) bool {
	if dtype == "" {
		return true
	}
	_, ok := dataTypeSizes[DataType(dtype)]
	return ok
}

// Size returns the per-element byte width of the data type.
// Panics on unrecognized types; callers validate via IsValidDataType first.
func (dt DataType) Size() uint64 {
	s, ok := dataTypeSizes[dt]
	if !ok {
		panic(fmt.Sprintf("unknown data type %q", dt))
	}
	return s
}

// Value is one tensor produced by one node (or fed in as a graph input).
// Identity is the pointer: allocation records and size maps reference values,
// they never own them; the Graph owns all of its values.
type Value struct {
	Name  string   // unique name within the graph
	Dims  []int64  // tensor shape; every dim must be > 0
	DType DataType // element type, determines byte width
}

// ByteSize returns the number of bytes a buffer holding this value requires.
func (v *Value) ByteSize() uint64 {
	size := v.DType.Size()
	for _, d := range v.Dims {
		size *= uint64(d)
	}
	return size
}

func (v *Value) String() string {
	return v.Name
}

// Node is one operation in the graph. Inputs reference values produced
// elsewhere (another node or a graph input); outputs are produced here.
type Node struct {
	Name    string
	Op      string   // operator kind, e.g. "Conv"; opaque to the planner
	Inputs  []*Value // consumed values
	Outputs []*Value // produced values, exactly one producer per value
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%s)", n.Name, n.Op)
}

// Graph is a computation graph: nodes in insertion order plus the values
// flowing between them. It owns all values and nodes.
type Graph struct {
	Name    string
	Nodes   []*Node  // insertion order; schedulers break ties by this order
	Inputs  []*Value // graph-level inputs (not produced by any node)
	Outputs []*Value // graph-level outputs (live out of any sub-graph)

	valuesByName map[string]*Value
	producer     map[*Value]*Node
	consumers    map[*Value][]*Node
	outputSet    map[*Value]bool
}

// NewGraph creates an empty graph.
func NewGraph(name string) *Graph {
	return &Graph{
		Name:         name,
		valuesByName: make(map[string]*Value),
		producer:     make(map[*Value]*Node),
		consumers:    make(map[*Value][]*Node),
		outputSet:    make(map[*Value]bool),
	}
}

// AddInput registers a graph-level input value.
func (g *Graph) AddInput(name string, dims []int64, dtype DataType) (*Value, error) {
	v, err := g.addValue(name, dims, dtype)
	if err != nil {
		return nil, err
	}
	g.Inputs = append(g.Inputs, v)
	return v, nil
}

// AddValue registers a value to be produced by a node added later.
func (g *Graph) AddValue(name string, dims []int64, dtype DataType) (*Value, error) {
	return g.addValue(name, dims, dtype)
}

func (g *Graph) addValue(name string, dims []int64, dtype DataType) (*Value, error) {
	if name == "" {
		return nil, fmt.Errorf("value name must not be empty")
	}
	if _, exists := g.valuesByName[name]; exists {
		return nil, fmt.Errorf("duplicate value name %q", name)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("value %q: dims must not be empty", name)
	}
	for _, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("value %q: dims must be positive, got %v", name, dims)
		}
	}
	if dtype == "" {
		dtype = DTypeFloat32
	}
	if !IsValidDataType(string(dtype)) {
		return nil, fmt.Errorf("value %q: unknown data type %q", name, dtype)
	}
	v := &Value{Name: name, Dims: dims, DType: dtype}
	g.valuesByName[name] = v
	return v, nil
}

// AddNode appends a node consuming and producing previously registered
// values. Each output value must not already have a producer.
func (g *Graph) AddNode(name, op string, inputNames, outputNames []string) (*Node, error) {
	if name == "" {
		return nil, fmt.Errorf("node name must not be empty")
	}
	n := &Node{Name: name, Op: op}
	for _, in := range inputNames {
		v, ok := g.valuesByName[in]
		if !ok {
			return nil, fmt.Errorf("node %q: unknown input value %q", name, in)
		}
		n.Inputs = append(n.Inputs, v)
	}
	for _, out := range outputNames {
		v, ok := g.valuesByName[out]
		if !ok {
			return nil, fmt.Errorf("node %q: unknown output value %q", name, out)
		}
		if prod, taken := g.producer[v]; taken {
			return nil, fmt.Errorf("node %q: value %q already produced by node %q", name, out, prod.Name)
		}
		n.Outputs = append(n.Outputs, v)
	}
	for _, v := range n.Outputs {
		g.producer[v] = n
	}
	for _, v := range n.Inputs {
		g.consumers[v] = append(g.consumers[v], n)
	}
	g.Nodes = append(g.Nodes, n)
	return n, nil
}

// MarkOutput flags a value as a graph-level output. Output values stay live
// to the end of whichever sub-graph produces them.
func (g *Graph) MarkOutput(name string) error {
	v, ok := g.valuesByName[name]
	if !ok {
		return fmt.Errorf("unknown output value %q", name)
	}
	if !g.outputSet[v] {
		g.outputSet[v] = true
		g.Outputs = append(g.Outputs, v)
	}
	return nil
}

// Value returns the registered value with the given name, or nil.
func (g *Graph) Value(name string) *Value {
	return g.valuesByName[name]
}

// Producer returns the node producing v, or nil for graph inputs.
func (g *Graph) Producer(v *Value) *Node {
	return g.producer[v]
}

// Consumers returns the nodes consuming v, in insertion order.
func (g *Graph) Consumers(v *Value) []*Node {
	return g.consumers[v]
}

// IsOutput returns true if v was marked as a graph-level output.
func (g *Graph) IsOutput(v *Value) bool {
	return g.outputSet[v]
}
