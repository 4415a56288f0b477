// Package planner assigns crops to greenhouse locations and start days so that
// the cumulative thermal-stress cost over a year is minimal.
//
// The package has three layers:
//
//   - CostMatrix: the precomputed cost of starting every crop at every
//     location on every day, plus the per-crop lower bounds used by the
//     heuristic.
//   - BestSlot and Heuristic: the two queries the search performs against the
//     matrix.
//   - Search: an A* search over partial assignments. A state is the next free
//     day of every location plus the crops still to be scheduled. Children
//     place one remaining crop at one location on the cheapest start day not
//     earlier than that location's free day.
//
// The heuristic sums, for each unscheduled crop, its cheapest slot anywhere in
// the year. It ignores contention between crops, never overestimates and is
// consistent, so the first goal popped from the frontier is optimal and a
// state never has to be reopened.
//
// Complexity: the branching factor is |remaining|·|locations|, so the state
// space grows roughly as locations^crops. The search is meant for single-digit
// instances; WithMaxExpansions and WithMaxFrontier turn runaway growth into
// ErrCapacityExceeded.
package planner
