package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/fmtgauge/core"
	"github.com/huangsam/fmtgauge/internal/contract"
)

// showCmd drills into a saved analysis.
var showCmd = &cobra.Command{
	Use:   "show <analysis-path> [project [file [field]]]",
	Short: "Inspect a saved analysis at run, project, file or field level.",
	Long: `Display a saved analysis with progressively deeper selectors.

With no selector the whole-run summary table is shown. Adding a project
name shows its per-file outcomes; adding a file path shows that file's
full outcome; adding a field name prints one raw value.

Fields: type, src, dst, diff, error, message, log.

Examples:
  # Whole-run summary
  fmtgauge show results.json

  # One project's files
  fmtgauge show results.json chi

  # One file's diff, raw
  fmtgauge show results.json chi middleware/logger.go diff`,
	Args:    cobra.RangeArgs(1, 4),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteShow(cfg, args[0], args[1:]); err != nil {
			contract.LogFatal("Cannot show analysis", err)
		}
	},
}

// showFailedCmd lists formatter failures in a saved analysis.
var showFailedCmd = &cobra.Command{
	Use:   "show-failed <analysis-path>",
	Short: "List every file the formatter failed on, grouped by project.",
	Long: `List the files of a saved analysis whose formatting failed, with the
error kind and message for each.

Under --check the command exits non-zero when any failure is not listed
in --check-allow, which makes it usable as a CI gate.

Examples:
  # Human-readable failure list
  fmtgauge show-failed results.json

  # Gate a pipeline, tolerating one known-bad file
  fmtgauge show-failed results.json --check --check-allow "chi:testdata/bad.go"`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		return sharedSetup(args, nil)
	},
	RunE: func(_ *cobra.Command, args []string) error {
		err := core.ExecuteShowFailed(cfg, args[0])
		if errors.Is(err, core.ErrFailuresFound) {
			return err
		}
		if err != nil {
			contract.LogFatal("Cannot show failures", err)
		}
		return nil
	},
}
