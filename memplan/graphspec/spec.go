// Package graphspec loads computation-graph descriptions from YAML and
// builds memplan graphs from them. The spec file replaces a full model
// importer: it names the graph inputs, the nodes with their output tensor
// shapes, and the graph outputs.
package graphspec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dlacc/dlacc/memplan"
)

// GraphSpec is the top-level graph description.
// Loaded from YAML via LoadGraphSpec(path).
type GraphSpec struct {
	Version string       `yaml:"version"`
	Name    string       `yaml:"name"`
	Inputs  []TensorSpec `yaml:"inputs"`
	Nodes   []NodeSpec   `yaml:"nodes"`
	Outputs []string     `yaml:"outputs"`
}

// TensorSpec names one tensor value and its shape.
type TensorSpec struct {
	Name  string  `yaml:"name"`
	Dims  []int64 `yaml:"dims"`
	DType string  `yaml:"dtype,omitempty"` // defaults to float32
}

// NodeSpec defines a single operation node.
type NodeSpec struct {
	Name    string       `yaml:"name"`
	Op      string       `yaml:"op"`
	Inputs  []string     `yaml:"inputs"`
	Outputs []TensorSpec `yaml:"outputs"`
}

// ParseGraphSpec parses and validates a YAML graph description.
func ParseGraphSpec(data []byte) (*GraphSpec, error) {
	var spec GraphSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing graph spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadGraphSpec reads and parses a graph description file.
func LoadGraphSpec(path string) (*GraphSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph spec: %w", err)
	}
	return ParseGraphSpec(data)
}

// Validate checks the spec for structural problems before graph
// construction: missing names, bad shapes, unknown data types.
// Reference errors (unknown input names, duplicate values) surface from
// Build, which delegates to the graph's own consistency checks.
func (s *GraphSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("graph spec: name is required")
	}
	if len(s.Nodes) == 0 {
		return fmt.Errorf("graph spec %q: at least one node is required", s.Name)
	}
	checkTensor := func(where string, t *TensorSpec) error {
		if t.Name == "" {
			return fmt.Errorf("graph spec %q: %s: tensor name is required", s.Name, where)
		}
		if len(t.Dims) == 0 {
			return fmt.Errorf("graph spec %q: tensor %q: dims are required", s.Name, t.Name)
		}
		if !memplan.IsValidDataType(t.DType) {
			return fmt.Errorf("graph spec %q: tensor %q: unknown dtype %q", s.Name, t.Name, t.DType)
		}
		return nil
	}
	for i := range s.Inputs {
		if err := checkTensor("inputs", &s.Inputs[i]); err != nil {
			return err
		}
	}
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if n.Name == "" {
			return fmt.Errorf("graph spec %q: node name is required", s.Name)
		}
		if len(n.Outputs) == 0 {
			return fmt.Errorf("graph spec %q: node %q: at least one output is required", s.Name, n.Name)
		}
		for j := range n.Outputs {
			if err := checkTensor(fmt.Sprintf("node %q outputs", n.Name), &n.Outputs[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Build constructs the memplan graph the spec describes.
func (s *GraphSpec) Build() (*memplan.Graph, error) {
	g := memplan.NewGraph(s.Name)
	for i := range s.Inputs {
		in := &s.Inputs[i]
		if _, err := g.AddInput(in.Name, in.Dims, memplan.DataType(in.DType)); err != nil {
			return nil, err
		}
	}
	for i := range s.Nodes {
		n := &s.Nodes[i]
		outputNames := make([]string, 0, len(n.Outputs))
		for j := range n.Outputs {
			out := &n.Outputs[j]
			if _, err := g.AddValue(out.Name, out.Dims, memplan.DataType(out.DType)); err != nil {
				return nil, err
			}
			outputNames = append(outputNames, out.Name)
		}
		if _, err := g.AddNode(n.Name, n.Op, n.Inputs, outputNames); err != nil {
			return nil, err
		}
	}
	for _, out := range s.Outputs {
		if err := g.MarkOutput(out); err != nil {
			return nil, err
		}
	}
	return g, nil
}
