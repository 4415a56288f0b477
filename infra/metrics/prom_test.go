package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/cropplan/core/metrics"
)

func TestPromSink_RecordSearch(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink")
	}
	if err := sink.RecordSearch(coremetrics.SearchEvent{
		Scenario: "1x2", Feasible: true, Expanded: 3, Generated: 4,
		Elapsed: 2 * time.Millisecond, GapPercent: 12.5,
	}); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if err := sink.RecordSearch(coremetrics.SearchEvent{Scenario: "1x3", Expanded: 5, Generated: 6}); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP cropplan_searches_total Total number of planner searches
# TYPE cropplan_searches_total counter
cropplan_searches_total{feasible="false"} 1
cropplan_searches_total{feasible="true"} 1
`
	if err := testutil.CollectAndCompare(sink.searches, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if v := testutil.ToFloat64(sink.expanded); v != 8 {
		t.Errorf("expanded = %v, want 8", v)
	}
	if v := testutil.ToFloat64(sink.generated); v != 10 {
		t.Errorf("generated = %v, want 10", v)
	}
	if v := testutil.ToFloat64(sink.gap.WithLabelValues("1x2")); v != 12.5 {
		t.Errorf("gap = %v, want 12.5", v)
	}
	if c := testutil.CollectAndCount(sink.gap); c != 1 {
		t.Errorf("infeasible search must not set a gap, got %d series", c)
	}
	if c := testutil.CollectAndCount(sink.duration); c != 2 {
		t.Errorf("duration series = %d, want 2", c)
	}
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("first sink: %v", err)
	}
	second, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("second sink: %v", err)
	}
	_ = first.RecordSearch(coremetrics.SearchEvent{Feasible: true, Expanded: 1})
	_ = second.RecordSearch(coremetrics.SearchEvent{Feasible: true, Expanded: 1})
	if v := testutil.ToFloat64(second.(*PromSink).expanded); v != 2 {
		t.Errorf("expanded = %v, want 2", v)
	}
}
