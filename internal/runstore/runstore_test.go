package runstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/fmtgauge/schema"
)

func sampleRecord(start time.Time) schema.RunRecord {
	return schema.RunRecord{
		StartTime:        start,
		DurationMs:       4200,
		FormatterVersion: "go1.25.0",
		ResultsPath:      "analysis.json",
		ProjectCount:     3,
		FileCount:        120,
		NothingChanged:   100,
		Reformatted:      15,
		Failed:           5,
	}
}

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// Every operation is a no-op for the none backend
	runID, err := store.RecordRun(sampleRecord(time.Now()))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	runs, err := store.GetRuns(10)
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

func TestRunStore_SQLite(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	start := time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC)
	runID, err := store.RecordRun(sampleRecord(start))
	require.NoError(t, err)
	assert.Equal(t, int64(1), runID)

	runs, err := store.GetRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.True(t, run.StartTime.Equal(start))
	assert.Equal(t, int64(4200), run.DurationMs)
	assert.Equal(t, "go1.25.0", run.FormatterVersion)
	assert.Equal(t, 120, run.FileCount)
	assert.Equal(t, 5, run.Failed)
}

func TestRunStore_NewestFirst(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	base := time.Now().UTC().Truncate(time.Second)
	var ids []int64
	for i := range 3 {
		id, err := store.RecordRun(sampleRecord(base.Add(time.Duration(i) * time.Minute)))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)

	runs, err := store.GetRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(3), runs[0].RunID)
	assert.Equal(t, int64(2), runs[1].RunID)
}

func TestRunStore_Status(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)

	oldest := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	newest := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	_, err = store.RecordRun(sampleRecord(oldest))
	require.NoError(t, err)
	lastID, err := store.RecordRun(sampleRecord(newest))
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, lastID, status.LastRunID)
	assert.True(t, status.LastRunTime.Equal(newest))
	assert.True(t, status.OldestRunTime.Equal(oldest))
}

func TestRunStore_Clear(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.RecordRun(sampleRecord(time.Now()))
	require.NoError(t, err)

	require.NoError(t, store.Clear())
	runs, err := store.GetRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	// IDs restart after a clear; the log is a rolling record, not a ledger.
	id, err := store.RecordRun(sampleRecord(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestRunStore_OnDiskFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runlog.db")

	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.RecordRun(sampleRecord(time.Now()))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same file sees the earlier run.
	store, err = NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	runs, err := store.GetRuns(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
