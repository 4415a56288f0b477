package metrics

import "time"

// SearchEvent summarises one search, either a plain planning run or one
// benchmark scenario.
type SearchEvent struct {
	RunID      string
	Scenario   string // "<locations>x<crops>" for benchmark rows, "plan" otherwise
	Locations  int
	Crops      int
	Feasible   bool
	Expanded   int
	Generated  int
	Elapsed    time.Duration
	Energy     float64
	LowerBound float64
	GapPercent float64
	Time       time.Time
}

// Sink records search summaries.
type Sink interface {
	RecordSearch(ev SearchEvent) error
}

// PlanActionEvent is one scheduled crop of a plan.
type PlanActionEvent struct {
	RunID    string
	Year     int
	Location string
	Crop     string
	StartDay int
	EndDay   int
	Cost     float64
	Time     time.Time
}

// PlanRecorder is implemented by sinks able to store plan actions.
type PlanRecorder interface {
	RecordPlan(actions []PlanActionEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordSearch(SearchEvent) error     { return nil }
func (NopSink) RecordPlan([]PlanActionEvent) error     { return nil }
