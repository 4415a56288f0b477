package metrics

import (
	"strconv"

	coremetrics "github.com/kilianp07/cropplan/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records search summaries in Prometheus metrics.
type PromSink struct {
	searches  *prometheus.CounterVec
	expanded  prometheus.Counter
	generated prometheus.Counter
	duration  *prometheus.HistogramVec
	gap       *prometheus.GaugeVec
}

// NewPromSink registers search metrics on the default Prometheus registerer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	searches, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cropplan_searches_total",
		Help: "Total number of planner searches",
	}, []string{"feasible"}))
	if err != nil {
		return nil, err
	}
	expanded, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cropplan_nodes_expanded_total",
		Help: "States expanded across all searches",
	}))
	if err != nil {
		return nil, err
	}
	generated, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cropplan_nodes_generated_total",
		Help: "States pushed on the frontier across all searches",
	}))
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cropplan_search_duration_seconds",
		Help:    "Wall-clock duration of one search",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
	}, []string{"feasible"}))
	if err != nil {
		return nil, err
	}
	gap, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cropplan_search_gap_percent",
		Help: "Gap between plan energy and the initial lower bound",
	}, []string{"scenario"}))
	if err != nil {
		return nil, err
	}
	return &PromSink{searches: searches, expanded: expanded, generated: generated, duration: duration, gap: gap}, nil
}

// register returns the already registered collector when one with the same
// descriptor exists.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

// RecordSearch updates counters, the duration histogram and the gap gauge.
func (s *PromSink) RecordSearch(ev coremetrics.SearchEvent) error {
	feasible := strconv.FormatBool(ev.Feasible)
	s.searches.WithLabelValues(feasible).Inc()
	s.expanded.Add(float64(ev.Expanded))
	s.generated.Add(float64(ev.Generated))
	s.duration.WithLabelValues(feasible).Observe(ev.Elapsed.Seconds())
	if ev.Feasible {
		s.gap.WithLabelValues(ev.Scenario).Set(ev.GapPercent)
	}
	return nil
}
