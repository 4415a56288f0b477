package planner

import (
	"container/heap"
	"context"
	"fmt"
	"time"
)

// Stats describes the work done by one search.
type Stats struct {
	Expanded   int           // states taken off the frontier and expanded
	Generated  int           // frontier insertions, root and duplicates included
	Elapsed    time.Duration // wall-clock time of the search loop
	LowerBound float64       // heuristic of the initial state
}

// Result is the outcome of a search. Feasible is false when the frontier ran
// dry without a goal; that is a normal outcome, not an error.
type Result struct {
	Plan     Plan
	Feasible bool
	Stats    Stats
	Warnings []string
}

// ctxCheckEvery is how many expansions pass between context checks.
const ctxCheckEvery = 1024

// Search runs A* over m and returns a minimum-cost plan. Ties on f are broken
// by lower g, then by insertion order, so identical inputs always produce the
// identical plan.
func Search(ctx context.Context, m *CostMatrix, opts ...Option) (Result, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	start := time.Now()

	root := State{
		Availability: make([]int, m.NumLocations()),
		Remaining:    make([]int, m.NumCrops()),
	}
	for i := range root.Remaining {
		root.Remaining[i] = i
	}
	lb := m.Heuristic(root.Remaining)
	res := Result{Warnings: m.Warnings(), Stats: Stats{LowerBound: lb}}
	for _, w := range res.Warnings {
		cfg.log.Warnf("data quality: %s", w)
	}
	cfg.log.Infof("search start: %d crops, %d locations, lower bound %.1f", m.NumCrops(), m.NumLocations(), lb)

	var seq uint64
	pq := &frontier{{f: lb, g: 0, seq: seq, state: root}}
	res.Stats.Generated = 1
	visited := make(map[string]struct{})

	finish := func() {
		res.Stats.Elapsed = time.Since(start)
		cfg.log.Infow("search done", map[string]any{
			"feasible":  res.Feasible,
			"expanded":  res.Stats.Expanded,
			"generated": res.Stats.Generated,
			"elapsed":   res.Stats.Elapsed.String(),
		})
	}

	for pq.Len() > 0 {
		if res.Stats.Expanded%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				res.Stats.Elapsed = time.Since(start)
				return res, err
			}
		}

		cur := heap.Pop(pq).(*node)
		if len(cur.state.Remaining) == 0 {
			res.Plan = Plan{Actions: cur.history(), TotalCost: cur.g}
			res.Feasible = true
			finish()
			return res, nil
		}

		sig := cur.state.Signature()
		if _, seen := visited[sig]; seen {
			continue
		}
		if cfg.maxExpansions > 0 && res.Stats.Expanded >= cfg.maxExpansions {
			res.Stats.Elapsed = time.Since(start)
			cfg.log.Errorf("expansion budget of %d exhausted", cfg.maxExpansions)
			return res, fmt.Errorf("%w: %d expansions", ErrCapacityExceeded, cfg.maxExpansions)
		}
		visited[sig] = struct{}{}
		res.Stats.Expanded++
		if cfg.progressEvery > 0 && res.Stats.Expanded%cfg.progressEvery == 0 {
			cfg.log.Debugw("search progress", map[string]any{
				"expanded": res.Stats.Expanded,
				"frontier": pq.Len(),
				"f":        cur.f,
			})
		}

		for pos, crop := range cur.state.Remaining {
			rest := without(cur.state.Remaining, pos)
			h := m.Heuristic(rest)
			duration := m.crops[crop].Duration
			for loc, free := range cur.state.Availability {
				day, cost := m.BestSlot(crop, loc, free)
				if day == NoSlot {
					continue
				}
				avail := make([]int, len(cur.state.Availability))
				copy(avail, cur.state.Availability)
				avail[loc] = day + duration

				seq++
				g := cur.g + cost
				heap.Push(pq, &node{
					f:      g + h,
					g:      g,
					seq:    seq,
					state:  State{Availability: avail, Remaining: rest},
					parent: cur,
					action: Action{
						Location: m.locations[loc].Name,
						Crop:     m.crops[crop].Name,
						Start:    day,
						End:      day + duration,
						Cost:     cost,
					},
				})
				res.Stats.Generated++
			}
		}
		if cfg.maxFrontier > 0 && pq.Len() > cfg.maxFrontier {
			res.Stats.Elapsed = time.Since(start)
			cfg.log.Errorf("frontier grew past %d nodes", cfg.maxFrontier)
			return res, fmt.Errorf("%w: frontier above %d nodes", ErrCapacityExceeded, cfg.maxFrontier)
		}
	}

	finish()
	return res, nil
}
