// Package memplan lowers a neural-network computation graph onto the
// fixed-capacity local memory of a hardware accelerator.
//
// # Reading Guide
//
// Start with these three files to understand the planning kernel:
//   - allocator.go: the greedy liveness-driven address allocator
//   - planner.go: the per-sub-graph allocate/shrink loop
//   - pass.go: the worklist controller that splits sub-graphs which cannot fit
//
// # Architecture
//
// The memplan package defines the graph IR and the planning pipeline;
// collaborators live in sub-packages:
//   - memplan/target: hardware backends exposing the local memory budget
//   - memplan/graphspec: YAML graph descriptions and graph construction
//
// # Key Interfaces
//
// The extension points are small interfaces consumed through contracts:
//   - target.Target: local memory capacity of the backend
//   - NodeScheduler: fixes a total execution order over a node set
//   - LivenessProvider: live intervals per current schedule, in a
//     deterministic order that the allocator preserves
//
// SubGraph carries the mutable per-value size state (GetMemUsage,
// ShrinkSize, ResetToOrigSize) and SplitManager owns structural splits.
package memplan
