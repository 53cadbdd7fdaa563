// Package schema has configs, models and global variables for all parts of fmtgauge.
package schema

// Custom string types for type safety.
type (
	// ResultType discriminates the three per-file outcome kinds.
	ResultType string

	// Style selects the formatting style applied to a project.
	Style string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the run log.
	DatabaseBackend string
)

// All result types supported.
const (
	NothingChangedResult ResultType = "nothing-changed"
	ReformattedResult    ResultType = "reformatted"
	FailedResult         ResultType = "failed"
)

// All formatting styles supported.
const (
	StableStyle  Style = "stable" // default
	PreviewStyle Style = "preview"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All run log backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidResultTypes lists all valid result types.
var ValidResultTypes = map[ResultType]struct{}{
	NothingChangedResult: {},
	ReformattedResult:    {},
	FailedResult:         {},
}

// ValidStyles lists all valid formatting styles.
var ValidStyles = map[Style]struct{}{
	StableStyle:  {},
	PreviewStyle: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
}

// ValidRunLogBackends lists all valid run log backends.
var ValidRunLogBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
