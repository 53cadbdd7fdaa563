// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/fmtgauge/schema"
)

// RepoPreparer produces a usable checkout for one project. Implementations
// must leave targetDir with the pinned commit checked out, or fail loudly;
// the returned project always carries the actual HEAD commit.
// This allows the run orchestration to be tested without network access.
type RepoPreparer interface {
	Prepare(ctx context.Context, project schema.Project, targetDir string) (schema.Project, error)
}

// AnalysisCache stores deserialized analyses keyed by source file identity.
// A miss and a corrupt entry look the same to callers; corruption is
// recovered inside the implementation, never surfaced.
type AnalysisCache interface {
	Get(key string) (*schema.Analysis, bool)
	Put(key string, analysis *schema.Analysis) error
	Clear() error
	Status() (schema.CacheStatus, error)
}

// RunStore tracks completed analysis runs for the run log surface.
// This allows mocking the store for testing.
type RunStore interface {
	// RecordRun appends one completed run and returns its unique ID.
	RecordRun(record schema.RunRecord) (int64, error)

	// GetRuns returns the most recent runs, newest first.
	GetRuns(limit int) ([]schema.RunRecord, error)

	// Clear removes all recorded runs.
	Clear() error

	// GetStatus returns status information about the run log store.
	GetStatus() (schema.RunLogStatus, error)

	// Close closes the underlying connection.
	Close() error
}
