package metrics

import "errors"

// MultiSink fans events out to several sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSearch forwards to every sink. All sinks are tried; errors are joined.
func (m *MultiSink) RecordSearch(ev SearchEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordSearch(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordPlan forwards to the sinks that can store plans.
func (m *MultiSink) RecordPlan(actions []PlanActionEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(PlanRecorder); ok {
			if err := rec.RecordPlan(actions); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
