// Package cmd defines the command-line interface for fmtgauge.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(showFailedCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runlogCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the runlog subcommands to the parent runlog command
	runlogCmd.AddCommand(runlogShowCmd)
	runlogCmd.AddCommand(runlogStatusCmd)
	runlogCmd.AddCommand(runlogClearCmd)
	runlogCmd.AddCommand(runlogExportCmd)
	runlogCmd.AddCommand(runlogMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent checker workers")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-dir", "", "Directory for the analysis cache (defaults to the user cache dir)")
	rootCmd.PersistentFlags().String("runlog-backend", string(schema.SQLiteBackend), "Run log backend: sqlite, mysql, postgresql or none")
	rootCmd.PersistentFlags().String("runlog-db-connect", "", "Database connection string for mysql/postgresql run logs")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runCmd to Viper
	runCmd.Flags().String("select", "", "Comma-separated list of project names to analyze")
	runCmd.Flags().String("exclude", "", "Comma-separated list of project names to skip")
	runCmd.Flags().String("work-dir", "", "Directory for project checkouts (defaults to a temp dir per run)")
	runCmd.Flags().String("projects-file", "", "YAML file replacing the built-in project registry")
	runCmd.Flags().String("repeat-projects-from", "", "Reuse the projects (and pinned commits) of this saved analysis")
	runCmd.Flags().String("force-style", "", "Force a formatting style for all projects: stable or preview")
	if err := viper.BindPFlags(runCmd.Flags()); err != nil {
		contract.LogFatal("Error binding run flags", err)
	}

	// compareCmd and showFailedCmd both carry a --check flag, so their flags
	// are bound to Viper in each command's PreRunE instead of here; binding
	// both up front would leave only one of the two instances wired.
	compareCmd.Flags().Bool("diff", false, "Print a unified diff per differing file")
	compareCmd.Flags().Bool("list", false, "List every differing file per project")
	compareCmd.Flags().Bool("check", false, "Exit non-zero when the two analyses differ")

	showFailedCmd.Flags().Bool("check", false, "Exit non-zero when failures outside --check-allow exist")
	showFailedCmd.Flags().String("check-allow", "", "Comma-separated project:file pairs allowed to fail under --check")

	// Bind all flags of runlogMigrateCmd to Viper
	runlogMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runlogMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runlog migrate flags", err)
	}
}
