package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huangsam/fmtgauge/core"
	"github.com/huangsam/fmtgauge/internal/contract"
)

// runCmd analyzes the configured projects and writes a results file.
var runCmd = &cobra.Command{
	Use:   "run <results-path> [-- formatter-args...]",
	Short: "Format every project and record the per-file outcomes.",
	Long: `Clone the configured projects, run the formatter over every Go file and
save an analysis recording whether each file came back unchanged, was
reformatted or failed.

The results path decides the storage format: a .json path stores plain
JSON, a .zip path wraps the same JSON in a zip archive.

Arguments after "--" are passed through to the formatter for every project,
on top of each project's own arguments.

Examples:
  # Analyze the built-in registry
  fmtgauge run results.json

  # Analyze two projects with the preview style
  fmtgauge run results.json --select chi,mux -- --preview

  # Re-check the exact revisions of an earlier analysis
  fmtgauge run after.json --repeat-projects-from before.json`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		positional, extraArgs := splitAtDash(cmd, args)
		if len(positional) != 1 {
			return fmt.Errorf("expected exactly one results path, got %d arguments", len(positional))
		}
		return sharedSetup(positional, extraArgs)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRun(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot complete analysis run", err)
		}
	},
}

// splitAtDash separates positional arguments from pass-through arguments
// after "--".
func splitAtDash(cmd *cobra.Command, args []string) (positional, extra []string) {
	if at := cmd.ArgsLenAtDash(); at >= 0 {
		return args[:at], args[at:]
	}
	return args, nil
}
