package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/cropplan/core/benchmark"
	"github.com/kilianp07/cropplan/core/planner"
)

func TestRotatingJournal_AppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal", "runs.jsonl")
	j, err := NewRotatingJournal(path, 1, 2, 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	plan := planner.Plan{
		Actions:   []planner.Action{{Location: "north", Crop: "basil", Start: 3, End: 33, Cost: 2.5}},
		TotalCost: 2.5,
	}
	rows := []benchmark.Row{{NLocations: 1, NCrops: 1, NodesExpanded: 1, NodesGenerated: 2, Feasible: true}}
	require.NoError(t, j.AppendPlan("run-a", 2026, plan))
	require.NoError(t, j.AppendBenchmark("run-b", rows))

	all, err := j.Entries("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, KindPlan, all[0].Kind)
	assert.Equal(t, KindBenchmark, all[1].Kind)

	got, err := j.Entries("run-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2026, got[0].Year)
	require.NotNil(t, got[0].Plan)
	assert.Equal(t, plan, *got[0].Plan)

	got, err = j.Entries("run-b")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rows, got[0].Rows)
}

func TestRotatingJournal_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not json\n"), 0o644))
	j, err := NewRotatingJournal(path, 1, 1, 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	require.NoError(t, j.AppendPlan("run", 2026, planner.Plan{}))
	got, err := j.Entries("")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "run", got[0].RunID)
}

func TestBackupPattern(t *testing.T) {
	assert.Equal(t, "runs-*.jsonl", backupPattern("/tmp/runs.jsonl"))
	assert.Equal(t, "runs-*", backupPattern("runs"))
}
