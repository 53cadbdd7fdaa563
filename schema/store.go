package schema

import "time"

// RunRecord is one row in the run log: the durable summary of a completed
// analysis run.
type RunRecord struct {
	RunID            int64
	StartTime        time.Time
	DurationMs       int64
	FormatterVersion string
	ResultsPath      string
	ProjectCount     int
	FileCount        int
	NothingChanged   int
	Reformatted      int
	Failed           int
}

// RunLogStatus summarizes the run log store for status output.
type RunLogStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRuns     int       `json:"total_runs"`
	LastRunID     int64     `json:"last_run_id"`
	LastRunTime   time.Time `json:"last_run_time"`
	OldestRunTime time.Time `json:"oldest_run_time"`
}

// CacheStatus summarizes the on-disk analysis cache for status output.
type CacheStatus struct {
	Dir          string    `json:"dir"`
	TotalEntries int       `json:"total_entries"`
	TotalBytes   int64     `json:"total_bytes"`
	OldestAccess time.Time `json:"oldest_access"`
	NewestAccess time.Time `json:"newest_access"`
}
