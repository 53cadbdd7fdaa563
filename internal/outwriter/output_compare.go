package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/schema"
)

// PrintComparison outputs the differences summary between two analyses,
// with optional per-file diff or list rendering.
func PrintComparison(cfg *contract.Config, result *schema.ComparisonResult) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeComparisonText(w, cfg, result)
	}, "Wrote comparison")
}

func writeComparisonText(w io.Writer, cfg *contract.Config, result *schema.ComparisonResult) error {
	for _, name := range result.Mismatched {
		if _, err := fmt.Fprintf(w, "Ignoring %s: configured differently between the two analyses\n", name); err != nil {
			return err
		}
	}
	for _, name := range result.OnlyInFirst {
		if _, err := fmt.Fprintf(w, "Ignoring %s: only present in the first analysis\n", name); err != nil {
			return err
		}
	}
	for _, name := range result.OnlyInSecond {
		if _, err := fmt.Fprintf(w, "Ignoring %s: only present in the second analysis\n", name); err != nil {
			return err
		}
	}

	if result.NothingChanged() {
		_, err := fmt.Fprintf(w, "Nothing-changed. %d projects compared.\n", len(result.Shared))
		return err
	}

	for _, project := range result.Differing {
		if _, err := fmt.Fprintf(w, "%s: %d files differ\n", project.Name, len(project.Files)); err != nil {
			return err
		}
		for _, file := range project.Files {
			if cfg.ShowList {
				if _, err := fmt.Fprintf(w, "  %s\n", file.File); err != nil {
					return err
				}
			}
			if cfg.ShowDiff && file.Diff != "" {
				if err := writeDiff(w, cfg, file.Diff); err != nil {
					return err
				}
			}
		}
	}

	_, err := fmt.Fprintf(w, "%d projects & %d files differ. (+%d/-%d lines)\n",
		len(result.Differing), result.DifferingFileCount(), result.Additions, result.Deletions)
	return err
}
