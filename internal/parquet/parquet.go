// Package parquet exports the run log to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/fmtgauge/schema"
)

// RunLogRecord is the Parquet row shape for one completed analysis run.
// It mirrors the fmtgauge_runs database table.
type RunLogRecord struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// DurationMs is the wall-clock duration of the run in milliseconds
	DurationMs int64 `parquet:"duration_ms,snappy"`

	// FormatterVersion is the Go toolchain version used to format sources
	FormatterVersion string `parquet:"formatter_version,snappy"`

	// ResultsPath is where the analysis file was written
	ResultsPath string `parquet:"results_path,snappy"`

	// ProjectCount is the number of projects checked in this run
	ProjectCount int32 `parquet:"project_count,snappy"`

	// FileCount is the total number of files checked
	FileCount int32 `parquet:"file_count,snappy"`

	// NothingChanged is the number of files the formatter left untouched
	NothingChanged int32 `parquet:"nothing_changed,snappy"`

	// Reformatted is the number of files the formatter changed
	Reformatted int32 `parquet:"reformatted,snappy"`

	// Failed is the number of files the formatter could not process
	Failed int32 `parquet:"failed,snappy"`
}

// ConvertRunRecords converts schema.RunRecord rows to the Parquet row shape.
func ConvertRunRecords(records []schema.RunRecord) []RunLogRecord {
	result := make([]RunLogRecord, len(records))
	for i, record := range records {
		result[i] = RunLogRecord{
			RunID:            record.RunID,
			StartTime:        record.StartTime,
			DurationMs:       record.DurationMs,
			FormatterVersion: record.FormatterVersion,
			ResultsPath:      record.ResultsPath,
			ProjectCount:     int32(record.ProjectCount),
			FileCount:        int32(record.FileCount),
			NothingChanged:   int32(record.NothingChanged),
			Reformatted:      int32(record.Reformatted),
			Failed:           int32(record.Failed),
		}
	}
	return result
}

// WriteRunLogParquet writes run log records to a Parquet file. The schema is
// inferred from the RunLogRecord struct tags.
func WriteRunLogParquet(data []RunLogRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[RunLogRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
