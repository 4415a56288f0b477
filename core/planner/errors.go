package planner

import "errors"

var (
	// ErrInvalidConfig is returned when the crops or locations cannot be
	// turned into a cost matrix. It is always wrapped with the offending detail.
	ErrInvalidConfig = errors.New("invalid planner configuration")

	// ErrCapacityExceeded is returned when a search budget is exhausted before
	// a goal state was reached.
	ErrCapacityExceeded = errors.New("search capacity exceeded")
)
