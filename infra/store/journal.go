package store

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kilianp07/cropplan/core/benchmark"
	"github.com/kilianp07/cropplan/core/planner"
)

// Journal entry kinds.
const (
	KindPlan      = "plan"
	KindBenchmark = "benchmark"
)

// JournalEntry is one line of the run journal.
type JournalEntry struct {
	RunID     string          `json:"run_id"`
	Kind      string          `json:"kind"`
	Timestamp time.Time       `json:"timestamp"`
	Year      int             `json:"year,omitempty"`
	Plan      *planner.Plan   `json:"plan,omitempty"`
	Rows      []benchmark.Row `json:"rows,omitempty"`
}

// RotatingJournal appends run results to a JSONL file with automatic rotation.
type RotatingJournal struct {
	logger *lumberjack.Logger
	path   string
}

// NewRotatingJournal creates a journal with rotation options in megabytes and days.
func NewRotatingJournal(path string, maxSizeMB, maxBackups, maxAgeDays int) (*RotatingJournal, error) {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &RotatingJournal{logger: lj, path: path}, nil
}

// AppendPlan journals a feasible plan.
func (j *RotatingJournal) AppendPlan(runID string, year int, p planner.Plan) error {
	return j.append(JournalEntry{RunID: runID, Kind: KindPlan, Timestamp: time.Now().UTC(), Year: year, Plan: &p})
}

// AppendBenchmark journals the rows of one benchmark run.
func (j *RotatingJournal) AppendBenchmark(runID string, rows []benchmark.Row) error {
	return j.append(JournalEntry{RunID: runID, Kind: KindBenchmark, Timestamp: time.Now().UTC(), Rows: rows})
}

func (j *RotatingJournal) append(e JournalEntry) error {
	return json.NewEncoder(j.logger).Encode(e)
}

// Entries reads the current file and the rotated backups, oldest first.
// An empty runID returns every entry. Malformed lines are skipped.
func (j *RotatingJournal) Entries(runID string) ([]JournalEntry, error) {
	files, err := filepath.Glob(j.path + "*")
	if err != nil {
		return nil, err
	}
	backups, err := filepath.Glob(filepath.Join(filepath.Dir(j.path), backupPattern(j.path)))
	if err != nil {
		return nil, err
	}
	files = append(files, backups...)

	seen := make(map[string]bool, len(files))
	var res []JournalEntry
	for _, f := range files {
		if seen[f] {
			continue
		}
		seen[f] = true
		entries, err := readJournal(f, runID)
		if err != nil {
			continue
		}
		res = append(res, entries...)
	}
	sort.SliceStable(res, func(a, b int) bool { return res[a].Timestamp.Before(res[b].Timestamp) })
	return res, nil
}

// backupPattern matches lumberjack backups, which are named
// <name>-<timestamp><ext> next to the active file.
func backupPattern(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)] + "-*" + ext
}

func readJournal(path, runID string) ([]JournalEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var res []JournalEntry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var e JournalEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		if runID != "" && e.RunID != runID {
			continue
		}
		res = append(res, e)
	}
	return res, scanner.Err()
}

// Close closes the underlying writer.
func (j *RotatingJournal) Close() error {
	return j.logger.Close()
}
