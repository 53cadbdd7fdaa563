package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/fmtgauge/core"
	"github.com/huangsam/fmtgauge/internal/contract"
)

// compareCmd diffs two saved analyses.
var compareCmd = &cobra.Command{
	Use:   "compare <first-path> <second-path>",
	Short: "Compare two saved analyses and report what formats differently.",
	Long: `Compare two saved analyses project by project and file by file.

Projects present in only one analysis, or configured differently between
the two, are reported and excluded. For the rest, every file whose
outcome differs is counted; --list names the files and --diff prints a
unified diff of the formatted outputs.

Under --check the command exits non-zero when any difference exists,
which makes it usable as a CI gate for formatter changes.

Examples:
  # Summarize differences between two formatter builds
  fmtgauge compare before.json after.json

  # Full detail
  fmtgauge compare before.json after.json --list --diff

  # Gate a pipeline on nothing-changed
  fmtgauge compare before.json after.json --check`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		return sharedSetup(args, nil)
	},
	RunE: func(_ *cobra.Command, args []string) error {
		err := core.ExecuteCompare(cfg, args[0], args[1])
		if errors.Is(err, core.ErrDifferencesFound) {
			return err
		}
		if err != nil {
			contract.LogFatal("Cannot compare analyses", err)
		}
		return nil
	},
}
