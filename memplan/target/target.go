// Package target models the hardware backends the memory planner compiles
// for. The planner depends only on the Target capability (local memory
// size), never on a concrete backend.
package target

import "fmt"

// Target exposes the backend information memory planning needs.
type Target interface {
	Name() string
	// LocalMemSize returns the on-chip local memory capacity in bytes, the
	// hard budget every sub-graph's allocation must fit.
	LocalMemSize() uint64
}

const (
	kib = 1024
	mib = 1024 * kib
)

// fixedTarget is a backend with a fixed local memory capacity.
type fixedTarget struct {
	name         string
	localMemSize uint64
}

func (t *fixedTarget) Name() string         { return t.name }
func (t *fixedTarget) LocalMemSize() uint64 { return t.localMemSize }

// localMemSizes maps backend names to their per-core local memory capacity.
var localMemSizes = map[string]uint64{
	"bm1680": 512 * kib,
	"bm1682": 1 * mib,
	"bm1880": 64 * kib,
}

// IsValidTarget returns true if the given name is a recognized backend.
// Empty string is accepted and defaults to bm1880.
func IsValidTarget(name string) bool {
	if name == "" {
		return true
	}
	_, ok := localMemSizes[name]
	return ok
}

// NewTarget creates a Target by backend name.
// Valid names: "bm1680", "bm1682", "bm1880" (default).
// Panics on unrecognized names.
func NewTarget(name string) Target {
	if !IsValidTarget(name) {
		panic(fmt.Sprintf("unknown target %q", name))
	}
	if name == "" {
		name = "bm1880"
	}
	return &fixedTarget{name: name, localMemSize: localMemSizes[name]}
}

// NewGenericTarget creates a Target with an explicit local memory capacity,
// for hardware not covered by the built-in backends (and for tests).
func NewGenericTarget(name string, localMemSize uint64) Target {
	if name == "" {
		name = "generic"
	}
	return &fixedTarget{name: name, localMemSize: localMemSize}
}
