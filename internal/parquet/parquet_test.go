package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/fmtgauge/schema"
)

func sampleRunRecords() []schema.RunRecord {
	now := time.Now()
	return []schema.RunRecord{
		{
			RunID:            1,
			StartTime:        now.Add(-2 * time.Hour),
			DurationMs:       90000,
			FormatterVersion: "go1.25.0",
			ResultsPath:      "baseline.json",
			ProjectCount:     8,
			FileCount:        420,
			NothingChanged:   400,
			Reformatted:      18,
			Failed:           2,
		},
		{
			RunID:            2,
			StartTime:        now.Add(-10 * time.Minute),
			DurationMs:       87500,
			FormatterVersion: "go1.25.0",
			ResultsPath:      "preview.zip",
			ProjectCount:     8,
			FileCount:        420,
			NothingChanged:   395,
			Reformatted:      23,
			Failed:           2,
		},
	}
}

func TestRunLogRecordStructTags(t *testing.T) {
	fileSchema := parquet.SchemaOf(new(RunLogRecord))
	require.NotNil(t, fileSchema)

	expectedColumns := []string{
		"run_id",
		"start_time",
		"duration_ms",
		"formatter_version",
		"results_path",
		"project_count",
		"file_count",
		"nothing_changed",
		"reformatted",
		"failed",
	}
	for _, colName := range expectedColumns {
		col, ok := fileSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteRunLogParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runlog.parquet")
	data := ConvertRunRecords(sampleRunRecords())

	err := WriteRunLogParquet(data, outputPath)
	require.NoError(t, err)

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[RunLogRecord](file)
	defer func() { _ = reader.Close() }()

	readData := make([]RunLogRecord, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)

	for i := range data {
		assert.Equal(t, data[i].RunID, readData[i].RunID)
		assert.Equal(t, data[i].DurationMs, readData[i].DurationMs)
		assert.Equal(t, data[i].FormatterVersion, readData[i].FormatterVersion)
		assert.Equal(t, data[i].ResultsPath, readData[i].ResultsPath)
		assert.Equal(t, data[i].FileCount, readData[i].FileCount)
		assert.Equal(t, data[i].Failed, readData[i].Failed)
		assert.WithinDuration(t, data[i].StartTime, readData[i].StartTime, time.Nanosecond)
	}
}

func TestWriteRunLogParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")

	err := WriteRunLogParquet([]RunLogRecord{}, outputPath)
	require.NoError(t, err)

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "file should contain schema even if empty")
}

func TestWriteRunLogParquet_InvalidPath(t *testing.T) {
	err := WriteRunLogParquet(ConvertRunRecords(sampleRunRecords()), "/nonexistent/directory/out.parquet")
	require.Error(t, err)
}

func TestConvertRunRecords(t *testing.T) {
	records := sampleRunRecords()
	converted := ConvertRunRecords(records)
	require.Len(t, converted, len(records))
	assert.Equal(t, records[0].RunID, converted[0].RunID)
	assert.Equal(t, int32(records[0].ProjectCount), converted[0].ProjectCount)
	assert.Equal(t, int32(records[1].Reformatted), converted[1].Reformatted)
}
