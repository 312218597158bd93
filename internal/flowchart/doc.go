// Package flowchart validates flowchart graph structure and computes
// designer canvas layout.
//
// ARCHITECTURE:
//
// Validate is the single entry point. It deep-copies the input, walks
// the whole activity tree once to find flowcharts and misplaced flow
// nodes, then runs each flowchart through a fixed pipeline:
//
//	remap IDs -> start reference -> ID integrity -> dangling
//	successors -> cycle detection -> reachability -> layout
//
// The remap runs first and rewrites every node ID to the sequential
// __ReferenceID{n} wire form keyed by list position, so identical
// inputs always produce identical documents regardless of the names
// the author chose. Every later rule and all layout geometry operate
// on the rewritten IDs.
//
// Rules accumulate failures instead of stopping at the first one; the
// report groups them by category and derives a single highest-priority
// remedy (structural before circular before reachability before
// reference) so a caller can surface one actionable fix.
//
// Layout always runs, even on invalid flowcharts, so the rewritten
// tree in the report is complete either way. Geometry is a pure
// function of node index and kind: one column, fixed rows, decision
// branches on fixed side rails. No measurement, no overlap avoidance.
//
// The package is pure: no logging, no I/O, no shared state. Callers
// that want conversion-level observability log around Validate.
package flowchart
