package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/cropplan/core/benchmark"
	"github.com/kilianp07/cropplan/core/planner"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("run not found")

const nameSep = " | "

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    year INTEGER,
    created INTEGER NOT NULL,
    total_cost REAL
);
CREATE TABLE IF NOT EXISTS plan_actions (
    run_id TEXT NOT NULL REFERENCES runs(id),
    seq INTEGER NOT NULL,
    location TEXT NOT NULL,
    crop TEXT NOT NULL,
    start_day INTEGER NOT NULL,
    end_day INTEGER NOT NULL,
    cost REAL NOT NULL,
    PRIMARY KEY(run_id, seq)
);
CREATE TABLE IF NOT EXISTS benchmark_rows (
    run_id TEXT NOT NULL REFERENCES runs(id),
    seq INTEGER NOT NULL,
    n_locations INTEGER NOT NULL,
    n_crops INTEGER NOT NULL,
    crop_names TEXT NOT NULL,
    location_names TEXT NOT NULL,
    elapsed_seconds REAL NOT NULL,
    nodes_expanded INTEGER NOT NULL,
    nodes_generated INTEGER NOT NULL,
    energy REAL,
    lower_bound REAL NOT NULL,
    gap_percent REAL,
    ms_per_node REAL,
    generated_over_expanded REAL,
    feasible INTEGER NOT NULL,
    status TEXT NOT NULL DEFAULT '',
    PRIMARY KEY(run_id, seq)
);`

// Run describes one stored run.
type Run struct {
	ID        string
	Kind      string // "plan" or "benchmark"
	Year      int
	Created   time.Time
	TotalCost float64
}

// SQLiteStore persists runs in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	if err := addStatusColumn(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate benchmark_rows: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// addStatusColumn upgrades databases created before benchmark_rows had a
// status column.
func addStatusColumn(db *sql.DB) error {
	found, err := hasColumn(db, "benchmark_rows", "status")
	if err != nil || found {
		return err
	}
	_, err = db.Exec(`ALTER TABLE benchmark_rows ADD COLUMN status TEXT NOT NULL DEFAULT ''`)
	return err
}

func hasColumn(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// rowStatus falls back to the Feasible flag for rows built without a status.
func rowStatus(r benchmark.Row) benchmark.Status {
	switch {
	case r.Status != "":
		return r.Status
	case r.Feasible:
		return benchmark.StatusSolved
	default:
		return benchmark.StatusInfeasible
	}
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// SavePlan stores a plan and its actions in decision order.
func (s *SQLiteStore) SavePlan(ctx context.Context, runID string, year int, p planner.Plan) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (id, kind, year, created, total_cost) VALUES (?, 'plan', ?, ?, ?)`,
			runID, year, time.Now().UnixNano(), p.TotalCost); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO plan_actions
            (run_id, seq, location, crop, start_day, end_day, cost) VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()
		for i, a := range p.Actions {
			if _, err := stmt.ExecContext(ctx, runID, i, a.Location, a.Crop, a.Start, a.End, a.Cost); err != nil {
				return fmt.Errorf("insert action %d: %w", i, err)
			}
		}
		return nil
	})
}

// SaveBenchmark stores the rows of one benchmark run in grid order.
// Energy, gap and per-node figures are NULL for unsolved rows; the status
// column tells infeasible rows from those stopped by a search budget.
func (s *SQLiteStore) SaveBenchmark(ctx context.Context, runID string, rows []benchmark.Row) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (id, kind, created) VALUES (?, 'benchmark', ?)`,
			runID, time.Now().UnixNano()); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO benchmark_rows
            (run_id, seq, n_locations, n_crops, crop_names, location_names, elapsed_seconds,
             nodes_expanded, nodes_generated, energy, lower_bound, gap_percent, ms_per_node,
             generated_over_expanded, feasible, status)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()
		for i, r := range rows {
			energy, gap, ms, ratio := nullable(r.Feasible, r.Energy), nullable(r.Feasible, r.GapPercent),
				nullable(r.Feasible, r.MsPerNode), nullable(r.Feasible, r.GeneratedOverExpanded)
			if _, err := stmt.ExecContext(ctx, runID, i, r.NLocations, r.NCrops,
				strings.Join(r.CropNames, nameSep), strings.Join(r.LocationNames, nameSep),
				r.ElapsedSeconds, r.NodesExpanded, r.NodesGenerated, energy, r.LowerBound,
				gap, ms, ratio, r.Feasible, string(rowStatus(r))); err != nil {
				return fmt.Errorf("insert row %d: %w", i, err)
			}
		}
		return nil
	})
}

// Plan loads a stored plan.
func (s *SQLiteStore) Plan(ctx context.Context, runID string) (planner.Plan, error) {
	var p planner.Plan
	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `SELECT total_cost FROM runs WHERE id = ? AND kind = 'plan'`, runID).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return p, err
	}
	p.TotalCost = total.Float64

	rows, err := s.db.QueryContext(ctx, `SELECT location, crop, start_day, end_day, cost
        FROM plan_actions WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return p, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var a planner.Action
		if err := rows.Scan(&a.Location, &a.Crop, &a.Start, &a.End, &a.Cost); err != nil {
			return p, err
		}
		p.Actions = append(p.Actions, a)
	}
	return p, rows.Err()
}

// BenchmarkRows loads the rows of a stored benchmark run.
func (s *SQLiteStore) BenchmarkRows(ctx context.Context, runID string) ([]benchmark.Row, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT n_locations, n_crops, crop_names, location_names,
        elapsed_seconds, nodes_expanded, nodes_generated, energy, lower_bound, gap_percent,
        ms_per_node, generated_over_expanded, feasible, status
        FROM benchmark_rows WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []benchmark.Row
	for rows.Next() {
		var r benchmark.Row
		var crops, locs string
		var energy, gap, ms, ratio sql.NullFloat64
		var status string
		if err := rows.Scan(&r.NLocations, &r.NCrops, &crops, &locs, &r.ElapsedSeconds,
			&r.NodesExpanded, &r.NodesGenerated, &energy, &r.LowerBound, &gap, &ms, &ratio,
			&r.Feasible, &status); err != nil {
			return nil, err
		}
		r.Status = benchmark.Status(status)
		r.Status = rowStatus(r)
		r.CropNames = splitNames(crops)
		r.LocationNames = splitNames(locs)
		r.Energy, r.GapPercent = energy.Float64, gap.Float64
		r.MsPerNode, r.GeneratedOverExpanded = ms.Float64, ratio.Float64
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return out, nil
}

// Runs lists stored runs, newest first.
func (s *SQLiteStore) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, kind, year, created, total_cost FROM runs ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Run
	for rows.Next() {
		var r Run
		var year sql.NullInt64
		var created int64
		var total sql.NullFloat64
		if err := rows.Scan(&r.ID, &r.Kind, &year, &created, &total); err != nil {
			return nil, err
		}
		r.Year = int(year.Int64)
		r.Created = time.Unix(0, created)
		r.TotalCost = total.Float64
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func nullable(valid bool, v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: valid}
}

func splitNames(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, nameSep)
}
