package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/schema"
)

// failedEntry is the JSON row shape for one failed file.
type failedEntry struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PrintShowFailed outputs every failed file grouped by project.
func PrintShowFailed(cfg *contract.Config, analysis *schema.Analysis) error {
	if cfg.Output == schema.JSONOut {
		document := make(map[string]map[string]failedEntry)
		for _, project := range analysis.ProjectNames() {
			failed := schema.FilterResults(analysis.Results[project], schema.FailedResult)
			if len(failed) == 0 {
				continue
			}
			entries := make(map[string]failedEntry, len(failed))
			for path, result := range failed {
				r := result.(schema.Failed)
				entries[path] = failedEntry{Error: r.Error, Message: r.Message}
			}
			document[project] = entries
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, document)
		}, "Wrote JSON")
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		total := 0
		for _, project := range analysis.ProjectNames() {
			failed := schema.FilterResults(analysis.Results[project], schema.FailedResult)
			if len(failed) == 0 {
				continue
			}
			header := fmt.Sprintf("%s: %d failed", project, len(failed))
			if cfg.UseColors {
				header = contract.FailedColor.Sprint(header)
			}
			if _, err := fmt.Fprintln(w, header); err != nil {
				return err
			}
			for _, path := range failed.SortedPaths() {
				r := failed[path].(schema.Failed)
				if _, err := fmt.Fprintf(w, "  %s: [%s: %s]\n", path, r.Error, r.Message); err != nil {
					return err
				}
			}
			total += len(failed)
		}
		_, err := fmt.Fprintf(w, "%d failed files total.\n", total)
		return err
	}, "Wrote failures")
}
