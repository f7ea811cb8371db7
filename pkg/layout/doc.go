// Package layout computes deterministic 2-D positions and connection edges
// for a family-member collection.
//
// # Pipeline
//
// [Compute] runs three passes over a [member.Collection] snapshot:
//
//  1. Tree construction ([BuildForest]): one tree per root member (no
//     recorded parents), with a couple's children merged into one sibling
//     group and a per-branch visited set guarding against cyclic ancestry.
//  2. Subtree widths: computed bottom-up during construction, so every
//     node knows the horizontal span its couple and descendants need.
//  3. Positioning and emission: children are placed left to right within
//     their allotted widths, parents centered over their children (couples
//     centered jointly), generation depth mapped to rows. The output is a
//     renderer-agnostic node list and edge list with stable, derivable IDs.
//
// [ComputeGrid] is the relationship-blind fallback: row-major placement on
// a square-ish grid with the same spacing constants and the same edges.
//
// # Determinism and Tolerance
//
// Both entry points are pure functions: no I/O, no input mutation, no
// shared state. The same snapshot always produces the same layout, and any
// input - dangling references, cyclic parent chains, duplicate IDs, the
// empty collection - produces a valid result rather than an error.
//
// Generation rows are recursion depth from a root, not true graph-theoretic
// generation distance. Two unrelated trees of differing depth therefore
// share rows by depth alone; this mirrors the editing surface's behavior
// and is intentionally preserved.
//
// # Usage
//
//	c, _ := member.ReadMembersFile("members.json")
//	l := layout.Compute(c, layout.DefaultConfig())
//	for _, n := range l.Nodes {
//	    fmt.Println(n.ID, n.Position.X, n.Position.Y)
//	}
package layout
