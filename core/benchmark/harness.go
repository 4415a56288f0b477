package benchmark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/cropplan/core/logger"
	"github.com/kilianp07/cropplan/core/metrics"
	"github.com/kilianp07/cropplan/core/model"
	"github.com/kilianp07/cropplan/core/planner"
)

// Harness runs the planner over every scenario of a grid.
type Harness struct {
	crops     []model.Crop
	locations []model.Location
	sink      metrics.Sink
	log       logger.Logger
	runID     string
	search    []planner.Option
}

// Option configures a Harness.
type Option func(*Harness)

// WithSink sends one SearchEvent per scenario to s.
func WithSink(s metrics.Sink) Option {
	return func(h *Harness) {
		if s != nil {
			h.sink = s
		}
	}
}

// WithLogger sets the harness logger. It is also handed to every search.
func WithLogger(l logger.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.log = l
		}
	}
}

// WithRunID tags emitted events with id.
func WithRunID(id string) Option {
	return func(h *Harness) { h.runID = id }
}

// WithSearchOptions forwards opts to every planner.Search call.
func WithSearchOptions(opts ...planner.Option) Option {
	return func(h *Harness) { h.search = append(h.search, opts...) }
}

// New creates a harness over the given crops and locations. Their order
// decides the prefixes used by the grid.
func New(crops []model.Crop, locations []model.Location, opts ...Option) *Harness {
	h := &Harness{
		crops:     crops,
		locations: locations,
		sink:      metrics.NopSink{},
		log:       logger.Nop{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes every scenario in grid order and returns one row each. A
// scenario that exhausts a search budget gets StatusCapacityExceeded and the
// run continues; any other error stops the run and returns the rows so far.
func (h *Harness) Run(ctx context.Context) ([]Row, error) {
	scenarios := Scenarios(h.crops, h.locations)
	h.log.Infof("benchmark: %d scenarios, %d crops, %d locations", len(scenarios), len(h.crops), len(h.locations))

	rows := make([]Row, 0, len(scenarios))
	for _, sc := range scenarios {
		row, err := h.runScenario(ctx, sc)
		if err != nil {
			return rows, fmt.Errorf("scenario %s: %w", sc.Name(), err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (h *Harness) runScenario(ctx context.Context, sc Scenario) (Row, error) {
	m, err := planner.BuildCostMatrix(sc.Crops, sc.Locations)
	if err != nil {
		return Row{}, err
	}
	opts := append([]planner.Option{planner.WithLogger(h.log)}, h.search...)
	res, err := planner.Search(ctx, m, opts...)
	capped := errors.Is(err, planner.ErrCapacityExceeded)
	if err != nil && !capped {
		return Row{}, err
	}
	if capped {
		h.log.Warnf("scenario %s: %v", sc.Name(), err)
		res.Feasible = false
	}
	row := newRow(sc, res)
	if capped {
		row.Status = StatusCapacityExceeded
	}
	h.log.Debugw("scenario done", map[string]any{
		"scenario":  sc.Name(),
		"status":    string(row.Status),
		"expanded":  row.NodesExpanded,
		"generated": row.NodesGenerated,
		"gap":       row.GapPercent,
	})
	if err := h.sink.RecordSearch(h.event(row)); err != nil {
		h.log.Warnf("record scenario %s: %v", sc.Name(), err)
	}
	return row, nil
}

func (h *Harness) event(r Row) metrics.SearchEvent {
	return metrics.SearchEvent{
		RunID:      h.runID,
		Scenario:   r.Scenario(),
		Locations:  r.NLocations,
		Crops:      r.NCrops,
		Feasible:   r.Feasible,
		Expanded:   r.NodesExpanded,
		Generated:  r.NodesGenerated,
		Elapsed:    time.Duration(r.ElapsedSeconds * float64(time.Second)),
		Energy:     r.Energy,
		LowerBound: r.LowerBound,
		GapPercent: r.GapPercent,
		Time:       time.Now(),
	}
}
