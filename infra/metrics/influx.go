package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/cropplan/core/metrics"
	"github.com/kilianp07/cropplan/infra/logger"
)

// InfluxSink writes search summaries and plan actions to InfluxDB.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

// RecordSearch writes one search_run point. Energy and gap are omitted for
// infeasible runs.
func (s *InfluxSink) RecordSearch(ev coremetrics.SearchEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, searchPoint(ev))
}

// RecordPlan writes one plan_action point per scheduled crop.
func (s *InfluxSink) RecordPlan(actions []coremetrics.PlanActionEvent) error {
	if len(actions) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pts := make([]*write.Point, len(actions))
	for i, a := range actions {
		pts[i] = actionPoint(a)
	}
	return s.writeAPI.WritePoint(ctx, pts...)
}

func searchPoint(ev coremetrics.SearchEvent) *write.Point {
	p := write.NewPointWithMeasurement("search_run").
		AddTag("scenario", ev.Scenario).
		AddTag("feasible", strconv.FormatBool(ev.Feasible))
	if ev.RunID != "" {
		p = p.AddTag("run_id", ev.RunID)
	}
	p = p.AddField("locations", ev.Locations).
		AddField("crops", ev.Crops).
		AddField("expanded", ev.Expanded).
		AddField("generated", ev.Generated).
		AddField("elapsed_ms", round3(ev.Elapsed.Seconds()*1000)).
		AddField("lower_bound", round3(ev.LowerBound))
	if ev.Feasible {
		p = p.AddField("energy", round3(ev.Energy)).
			AddField("gap_percent", round3(ev.GapPercent))
	}
	return p.SetTime(eventTime(ev.Time))
}

func actionPoint(a coremetrics.PlanActionEvent) *write.Point {
	p := write.NewPointWithMeasurement("plan_action").
		AddTag("location", a.Location).
		AddTag("crop", a.Crop)
	if a.RunID != "" {
		p = p.AddTag("run_id", a.RunID)
	}
	return p.AddField("year", a.Year).
		AddField("start_day", a.StartDay).
		AddField("end_day", a.EndDay).
		AddField("cost", round3(a.Cost)).
		SetTime(eventTime(a.Time))
}

func eventTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
