package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/cropplan/config"
	"github.com/kilianp07/cropplan/core/benchmark"
	"github.com/kilianp07/cropplan/core/catalog"
	coremetrics "github.com/kilianp07/cropplan/core/metrics"
	"github.com/kilianp07/cropplan/core/model"
	coremqtt "github.com/kilianp07/cropplan/core/mqtt"
	"github.com/kilianp07/cropplan/core/planner"
	coretemp "github.com/kilianp07/cropplan/core/temperature"
	"github.com/kilianp07/cropplan/infra/logger"
	"github.com/kilianp07/cropplan/infra/metrics"
	"github.com/kilianp07/cropplan/infra/mqtt"
	"github.com/kilianp07/cropplan/infra/store"
	_ "github.com/kilianp07/cropplan/infra/temperature"
	"github.com/kilianp07/cropplan/pkg/export"
)

// Service wires the configured provider, sinks, store and publisher around
// the planner.
type Service struct {
	cfg       *config.Config
	provider  coretemp.Provider
	sink      coremetrics.Sink
	store     *store.SQLiteStore
	journal   *store.RotatingJournal
	mqtt      coremqtt.Publisher
	publisher *mqtt.PlanPublisher
	gatherer  prometheus.Gatherer
	log       logger.Logger
	out       io.Writer
}

// Option customises a Service.
type Option func(*Service)

// WithOutput sets where reports are printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Service) { s.out = w }
}

// WithPublisher replaces the MQTT client built from the configuration.
func WithPublisher(p coremqtt.Publisher) Option {
	return func(s *Service) { s.mqtt = p }
}

// WithSink replaces the metrics sinks built from the configuration.
func WithSink(sink coremetrics.Sink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithGatherer sets the registry pushed to the pushgateway.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Service) { s.gatherer = g }
}

// PlanReport is the outcome of one planning run.
type PlanReport struct {
	RunID  string
	Year   int
	Result planner.Result
	File   string
}

// BenchmarkReport is the outcome of one benchmark run.
type BenchmarkReport struct {
	RunID string
	Rows  []benchmark.Row
	File  string
	Chart string
}

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	logger.SetLevel(cfg.Logging.Level)
	s := &Service{cfg: cfg, log: logger.New("service"), out: os.Stdout, gatherer: prometheus.DefaultGatherer}
	for _, opt := range opts {
		opt(s)
	}

	provider, err := coretemp.NewProvider(cfg.Temperature)
	if err != nil {
		return nil, fmt.Errorf("temperature provider: %w", err)
	}
	s.provider = provider

	if s.sink == nil {
		sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
		s.sink = sink
	}

	if cfg.Output.SQLitePath != "" {
		st, err := store.NewSQLiteStore(cfg.Output.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		s.store = st
	}

	if j := cfg.Output.Journal; j.Path != "" {
		jr, err := store.NewRotatingJournal(j.Path, j.MaxSizeMB, j.MaxBackups, j.MaxAgeDays)
		if err != nil {
			s.closeStore()
			return nil, fmt.Errorf("run journal: %w", err)
		}
		s.journal = jr
	}

	if s.mqtt == nil && cfg.MQTT.Broker != "" {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			s.closeStore()
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		s.mqtt = client
	}
	if s.mqtt != nil {
		s.publisher = mqtt.NewPlanPublisher(s.mqtt, cfg.MQTT.TopicPrefix)
	}
	return s, nil
}

// Catalog loads the configured crop catalog.
func (s *Service) Catalog() (model.Catalog, error) {
	return catalog.Load(s.cfg.Planner.Catalog)
}

// Store returns the SQLite store, nil when persistence is disabled.
func (s *Service) Store() *store.SQLiteStore { return s.store }

// Journal returns the run journal, nil when disabled.
func (s *Service) Journal() *store.RotatingJournal { return s.journal }

func (s *Service) inputs(ctx context.Context) (model.Catalog, []model.Location, error) {
	crops, err := s.Catalog()
	if err != nil {
		return nil, nil, err
	}
	locs, err := coretemp.LoadLocations(ctx, s.provider, s.cfg.Planner.Locations, s.cfg.Planner.Year, s.log)
	if err != nil {
		return nil, nil, err
	}
	return crops, locs, nil
}

func (s *Service) budgets() []planner.Option {
	return []planner.Option{
		planner.WithMaxExpansions(s.cfg.Planner.MaxExpansions),
		planner.WithMaxFrontier(s.cfg.Planner.MaxFrontier),
	}
}

// Plan computes the optimal plan for the configured year, prints it and
// hands it to the file writer, the store, the sinks and the publisher. An
// infeasible instance is not an error; only the search event is recorded.
func (s *Service) Plan(ctx context.Context) (PlanReport, error) {
	year := s.cfg.Planner.Year
	rep := PlanReport{RunID: uuid.NewString(), Year: year}
	crops, locs, err := s.inputs(ctx)
	if err != nil {
		return rep, err
	}
	m, err := planner.BuildCostMatrix(crops, locs)
	if err != nil {
		return rep, err
	}
	opts := append([]planner.Option{planner.WithLogger(logger.New("planner"))}, s.budgets()...)
	res, err := planner.Search(ctx, m, opts...)
	if err != nil {
		return rep, err
	}
	rep.Result = res
	if err := export.RenderPlan(s.out, year, res); err != nil {
		return rep, err
	}

	if err := s.sink.RecordSearch(planEvent(rep.RunID, m, res)); err != nil {
		s.log.Warnf("record search: %v", err)
	}
	if res.Feasible {
		if err := s.persistPlan(ctx, &rep); err != nil {
			return rep, err
		}
	}
	s.push(ctx)
	return rep, nil
}

func (s *Service) persistPlan(ctx context.Context, rep *PlanReport) error {
	plan := rep.Result.Plan
	path := s.cfg.Output.PlanPath(rep.Year)
	if err := writeFile(path, func(w io.Writer) error {
		if s.cfg.Output.PlanFormat == "json" {
			return export.WritePlanJSON(w, plan)
		}
		return export.WritePlanCSV(w, plan)
	}); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	rep.File = path
	s.log.Infof("plan written to %s", path)

	if s.store != nil {
		if err := s.store.SavePlan(ctx, rep.RunID, rep.Year, plan); err != nil {
			return fmt.Errorf("store plan: %w", err)
		}
	}
	if s.journal != nil {
		if err := s.journal.AppendPlan(rep.RunID, rep.Year, plan); err != nil {
			return fmt.Errorf("journal plan: %w", err)
		}
	}
	if rec, ok := s.sink.(coremetrics.PlanRecorder); ok {
		if err := rec.RecordPlan(actionEvents(rep.RunID, rep.Year, plan)); err != nil {
			s.log.Warnf("record plan: %v", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(rep.RunID, rep.Year, plan); err != nil {
			return fmt.Errorf("publish plan: %w", err)
		}
	}
	return nil
}

// Benchmark runs the scenario grid over the configured crops and locations,
// prints the console table and writes the delimited one.
func (s *Service) Benchmark(ctx context.Context) (BenchmarkReport, error) {
	rep := BenchmarkReport{RunID: uuid.NewString()}
	crops, locs, err := s.inputs(ctx)
	if err != nil {
		return rep, err
	}
	h := benchmark.New(crops, locs,
		benchmark.WithSink(s.sink),
		benchmark.WithLogger(logger.New("benchmark")),
		benchmark.WithRunID(rep.RunID),
		benchmark.WithSearchOptions(s.budgets()...),
	)
	rows, err := h.Run(ctx)
	rep.Rows = rows
	if err != nil {
		return rep, err
	}
	if err := export.RenderBenchmark(s.out, rows); err != nil {
		return rep, err
	}
	path := s.cfg.Output.BenchmarkPath()
	if err := writeFile(path, func(w io.Writer) error { return export.WriteBenchmarkCSV(w, rows) }); err != nil {
		return rep, fmt.Errorf("write benchmark: %w", err)
	}
	rep.File = path
	s.log.Infof("benchmark results written to %s", path)
	if chart := s.cfg.Output.ChartPath(); chart != "" {
		if err := writeFile(chart, func(w io.Writer) error { return export.WriteBenchmarkChart(w, rows) }); err != nil {
			return rep, fmt.Errorf("write chart: %w", err)
		}
		rep.Chart = chart
		s.log.Infof("benchmark chart written to %s", chart)
	}
	if s.journal != nil {
		if err := s.journal.AppendBenchmark(rep.RunID, rows); err != nil {
			return rep, fmt.Errorf("journal benchmark: %w", err)
		}
	}
	if s.store != nil {
		if err := s.store.SaveBenchmark(ctx, rep.RunID, rows); err != nil {
			return rep, fmt.Errorf("store benchmark: %w", err)
		}
	}
	s.push(ctx)
	return rep, nil
}

func (s *Service) push(ctx context.Context) {
	if s.cfg.Metrics.PushgatewayURL == "" {
		return
	}
	if err := metrics.Push(ctx, s.cfg.Metrics.PushgatewayURL, s.cfg.Metrics.Job, s.gatherer); err != nil {
		s.log.Warnf("%v", err)
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.mqtt != nil {
		s.mqtt.Disconnect()
	}
	var errs []error
	if s.journal != nil {
		errs = append(errs, s.journal.Close())
	}
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	return errors.Join(errs...)
}

func (s *Service) closeStore() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return fn(f)
}

func planEvent(runID string, m *planner.CostMatrix, res planner.Result) coremetrics.SearchEvent {
	ev := coremetrics.SearchEvent{
		RunID:      runID,
		Scenario:   "plan",
		Locations:  m.NumLocations(),
		Crops:      m.NumCrops(),
		Feasible:   res.Feasible,
		Expanded:   res.Stats.Expanded,
		Generated:  res.Stats.Generated,
		Elapsed:    res.Stats.Elapsed,
		LowerBound: res.Stats.LowerBound,
		Time:       time.Now(),
	}
	if res.Feasible {
		ev.Energy = res.Plan.TotalCost
		if lb := res.Stats.LowerBound; lb > 0 {
			ev.GapPercent = (ev.Energy - lb) / lb * 100
		}
	}
	return ev
}

func actionEvents(runID string, year int, p planner.Plan) []coremetrics.PlanActionEvent {
	now := time.Now()
	out := make([]coremetrics.PlanActionEvent, len(p.Actions))
	for i, a := range p.Actions {
		out[i] = coremetrics.PlanActionEvent{
			RunID:    runID,
			Year:     year,
			Location: a.Location,
			Crop:     a.Crop,
			StartDay: a.Start,
			EndDay:   a.End,
			Cost:     a.Cost,
			Time:     now,
		}
	}
	return out
}
