// Package benchmark runs the planner over a growing family of sub-problems and
// reports how the search scales: states expanded and generated, time per
// expanded state and the gap between the plan cost and the initial lower
// bound.
//
// Scenarios take prefixes of the crop catalog and of the location list in
// the order they were supplied. Each scenario gets its own cost matrix, so
// runs never share mutable state.
package benchmark
