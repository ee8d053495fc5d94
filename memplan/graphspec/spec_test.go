package graphspec

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dlacc/dlacc/memplan"
)

const lenetSpec = `
version: "1"
name: lenet-toy
inputs:
  - name: data
    dims: [1, 1, 28, 28]
    dtype: int8
nodes:
  - name: conv1
    op: Conv
    inputs: [data]
    outputs:
      - name: conv1_out
        dims: [1, 6, 24, 24]
        dtype: int8
  - name: pool1
    op: MaxPool
    inputs: [conv1_out]
    outputs:
      - name: pool1_out
        dims: [1, 6, 12, 12]
        dtype: int8
outputs: [pool1_out]
`

func TestParseGraphSpec_BuildsGraph(t *testing.T) {
	spec, err := ParseGraphSpec([]byte(lenetSpec))
	if err != nil {
		t.Fatalf("ParseGraphSpec: %v", err)
	}

	g, err := spec.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	assert.Equal(t, "lenet-toy", g.Name)
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Inputs, 1)

	conv1Out := g.Value("conv1_out")
	if conv1Out == nil {
		t.Fatal("conv1_out not registered")
	}
	assert.Equal(t, uint64(1*6*24*24), conv1Out.ByteSize(), "int8 tensor")
	assert.Equal(t, "conv1", g.Producer(conv1Out).Name)
	assert.True(t, g.IsOutput(g.Value("pool1_out")))
}

func TestParseGraphSpec_DefaultDTypeIsFloat32(t *testing.T) {
	spec, err := ParseGraphSpec([]byte(`
name: g
nodes:
  - name: n1
    op: Relu
    outputs:
      - name: out
        dims: [2, 2]
`))
	if err != nil {
		t.Fatal(err)
	}
	g, err := spec.Build()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, uint64(16), g.Value("out").ByteSize())
}

func TestParseGraphSpec_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing graph name", `
nodes:
  - name: n1
    op: Relu
    outputs: [{name: out, dims: [2]}]
`},
		{"no nodes", `
name: g
`},
		{"node without outputs", `
name: g
nodes:
  - name: n1
    op: Relu
`},
		{"tensor without dims", `
name: g
nodes:
  - name: n1
    op: Relu
    outputs: [{name: out}]
`},
		{"unknown dtype", `
name: g
nodes:
  - name: n1
    op: Relu
    outputs: [{name: out, dims: [2], dtype: float8}]
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseGraphSpec([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestGraphSpec_Build_ReferenceErrors(t *testing.T) {
	// Unknown input names and duplicate values parse fine but fail Build.
	spec, err := ParseGraphSpec([]byte(`
name: g
nodes:
  - name: n1
    op: Relu
    inputs: [missing]
    outputs: [{name: out, dims: [2]}]
`))
	if err != nil {
		t.Fatal(err)
	}
	_, err = spec.Build()
	assert.Error(t, err)

	dup, err := ParseGraphSpec([]byte(`
name: g
inputs:
  - name: out
    dims: [2]
nodes:
  - name: n1
    op: Relu
    inputs: [out]
    outputs: [{name: out, dims: [2]}]
`))
	if err != nil {
		t.Fatal(err)
	}
	_, err = dup.Build()
	assert.Error(t, err)
}

func TestGraphSpec_EndToEndPlanning(t *testing.T) {
	// The built graph feeds straight into the memory allocation pass.
	spec, err := ParseGraphSpec([]byte(lenetSpec))
	if err != nil {
		t.Fatal(err)
	}
	g, err := spec.Build()
	if err != nil {
		t.Fatal(err)
	}

	pass := memplan.NewMemoryAllocation(testTarget{}, memplan.DefaultPlannerConfig())
	plan, err := pass.Run(g)
	if err != nil {
		t.Fatal(err)
	}
	assert.NotEmpty(t, plan.Accepted)
	assert.Empty(t, plan.Abandoned)
}

// testTarget is a minimal backend for end-to-end tests.
type testTarget struct{}

func (testTarget) Name() string         { return "test" }
func (testTarget) LocalMemSize() uint64 { return 64 * 1024 }
