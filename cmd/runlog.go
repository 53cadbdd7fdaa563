package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/internal/outwriter"
	"github.com/huangsam/fmtgauge/internal/parquet"
	"github.com/huangsam/fmtgauge/internal/runstore"
	"github.com/huangsam/fmtgauge/schema"
)

// runlogSetup loads minimal configuration needed for run log operations.
func runlogSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("runlog-backend"))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidRunLogBackends[backend]; !ok {
		return fmt.Errorf("invalid run log backend %q; use sqlite, mysql, postgresql or none", backend)
	}

	cfg.RunLogBackend = backend
	cfg.RunLogConnect = viper.GetString("runlog-db-connect")
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// runlogSetupWrapper wraps runlogSetup to provide PreRunE for runlog commands.
func runlogSetupWrapper(_ *cobra.Command, _ []string) error {
	return runlogSetup()
}

// openRunStore opens the configured run log store and fails loudly when the
// backend is disabled, since every runlog subcommand needs a real store.
func openRunStore() contract.RunStore {
	if cfg.RunLogBackend == schema.NoneBackend {
		contract.LogFatal("Run log is disabled", errors.New("set --runlog-backend to sqlite, mysql or postgresql"))
	}
	store, err := runstore.NewRunStore(cfg.RunLogBackend, cfg.RunLogConnect)
	if err != nil {
		contract.LogFatal("Failed to open run log", err)
	}
	return store
}

// runlogCmd focused on run history management.
var runlogCmd = &cobra.Command{
	Use:   "runlog",
	Short: "Manage the history of completed analysis runs",
	Long: `Manage the run log, a small database recording one row per completed
analysis run: when it started, how long it took, which formatter version
ran and how the files broke down by outcome.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  show    - List recent runs
  status  - Show run log statistics
  export  - Export the run log to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # See the latest runs
  fmtgauge runlog show

  # Export for analysis in pandas/DuckDB
  fmtgauge runlog export --output-file runs.parquet`,
}

// runlogShowCmd lists recent runs.
var runlogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the most recent analysis runs, newest first",
	Long: `Show the most recent recorded runs with their timing, formatter version
and per-outcome file counts.

Examples:
  # Recent run history
  fmtgauge runlog show

  # Machine-readable history
  fmtgauge runlog show --output json`,
	PreRunE: runlogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openRunStore()
		defer func() { _ = store.Close() }()

		records, err := store.GetRuns(0)
		if err != nil {
			contract.LogFatal("Failed to read run log", err)
		}
		if err := outwriter.PrintRunLog(cfg, records); err != nil {
			contract.LogFatal("Failed to print run log", err)
		}
	},
}

// runlogStatusCmd shows run log status.
var runlogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run log statistics and connection details",
	Long: `Show the run log backend, connection state, total recorded runs and the
time range they span.

Examples:
  # Check run log status
  fmtgauge runlog status`,
	PreRunE: runlogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openRunStore()
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run log status", err)
		}
		if err := outwriter.PrintRunLogStatus(cfg, status); err != nil {
			contract.LogFatal("Failed to print run log status", err)
		}
	},
}

// runlogClearCmd clears the run log.
var runlogClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete every recorded run from the run log.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  fmtgauge runlog export --output-file backup.parquet
  fmtgauge runlog clear`,
	PreRunE: runlogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openRunStore()
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear run log", err)
		}
		fmt.Println("Run log cleared successfully.")
	},
}

// runlogExportCmd exports the run log to a Parquet file.
var runlogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the run log to Parquet for BI tools and analytics",
	Long: `Export every recorded run to a Parquet file for use with analytics
tools such as DuckDB, pandas or Spark.

Requires: --output-file parameter

Examples:
  # Export all runs
  fmtgauge runlog export --output-file runs.parquet

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('runs.parquet') ORDER BY run_id"`,
	PreRunE: runlogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Cannot export run log", errors.New("--output-file is required"))
		}
		store := openRunStore()
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run log status", err)
		}
		records, err := store.GetRuns(status.TotalRuns)
		if err != nil {
			contract.LogFatal("Failed to read run log", err)
		}
		if err := parquet.WriteRunLogParquet(parquet.ConvertRunRecords(records), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run log", err)
		}
		fmt.Printf("Exported %d runs to %s\n", len(records), cfg.OutputFile)
	},
}

// runlogMigrateCmd runs database migrations for the run log store.
//
// This command deliberately does not open the store first, so migrations can
// run against a fresh database.
var runlogMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run log store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  fmtgauge runlog migrate

  # Rollback to the initial state
  fmtgauge runlog migrate --target-version 0`,
	PreRunE: runlogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.MigrateRunLog(cfg.RunLogBackend, cfg.RunLogConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
