package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/schema"
)

// PrintRunSummary outputs the whole-run summary after a completed run.
func PrintRunSummary(cfg *contract.Config, analysis *schema.Analysis, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summaryDocument(analysis))
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeSummaryTable(w, cfg, analysis); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Run completed in %v with %d workers.\n", duration.Round(time.Millisecond), cfg.Workers)
			return err
		}, "Wrote table")
	}
}

// PrintAnalysisSummary outputs the summary view of a loaded analysis.
func PrintAnalysisSummary(cfg *contract.Config, analysis *schema.Analysis) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summaryDocument(analysis))
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(w, cfg, analysis)
		}, "Wrote table")
	}
}

// projectSummary is the JSON row shape of one project in a summary.
type projectSummary struct {
	Overall   string `json:"overall"`
	Files     int    `json:"files"`
	Lines     int    `json:"lines"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// summaryDocument renders the per-project rollup plus run metadata.
func summaryDocument(analysis *schema.Analysis) map[string]any {
	projects := make(map[string]projectSummary, len(analysis.Projects))
	for _, name := range analysis.ProjectNames() {
		results := analysis.Results[name]
		overall, err := results.Overall()
		if err != nil {
			// An empty project cannot appear in a valid analysis; surface
			// it rather than hiding the row.
			overall = schema.ResultType("invalid")
		}
		additions, deletions := results.LineChanges()
		projects[name] = projectSummary{
			Overall:   string(overall),
			Files:     len(results),
			Lines:     results.LineCount(),
			Additions: additions,
			Deletions: deletions,
		}
	}
	return map[string]any{
		"projects":          projects,
		"formatter-version": analysis.FormatterVersion(),
		"created-at":        analysis.CreatedAt().Format(contract.DateTimeFormat),
	}
}

// writeSummaryTable generates and writes the human-readable summary table.
func writeSummaryTable(w io.Writer, cfg *contract.Config, analysis *schema.Analysis) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Project", "Overall", "Files", "Lines", "Added", "Deleted"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	totalFiles, totalLines, totalAdd, totalDel := 0, 0, 0, 0
	var data [][]string
	for _, name := range analysis.ProjectNames() {
		results := analysis.Results[name]
		overall, err := results.Overall()
		if err != nil {
			return fmt.Errorf("project %q: %w", name, err)
		}
		label := contract.GetPlainLabel(overall)
		if cfg.UseColors {
			label = contract.GetColorLabel(overall)
		}
		additions, deletions := results.LineChanges()
		data = append(data, []string{
			name,
			label,
			strconv.Itoa(len(results)),
			strconv.Itoa(results.LineCount()),
			strconv.Itoa(additions),
			strconv.Itoa(deletions),
		})
		totalFiles += len(results)
		totalLines += results.LineCount()
		totalAdd += additions
		totalDel += deletions
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d projects, %d files, %d lines (+%d/-%d), formatter %s\n",
		len(analysis.Projects), totalFiles, totalLines, totalAdd, totalDel, analysis.FormatterVersion()); err != nil {
		return err
	}
	return nil
}

// PrintProjectResults outputs every file outcome of one project.
func PrintProjectResults(cfg *contract.Config, name string, results schema.ProjectResults) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectTable(w, cfg, name, results)
		}, "Wrote table")
	}
}

func writeProjectTable(w io.Writer, cfg *contract.Config, name string, results schema.ProjectResults) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"File", "Result", "Lines", "Added", "Deleted"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxPath := getMaxTablePathWidth(cfg)
	var data [][]string
	for _, path := range results.SortedPaths() {
		result := results[path]
		label := contract.GetPlainLabel(result.Type())
		if cfg.UseColors {
			label = contract.GetColorLabel(result.Type())
		}
		additions, deletions := 0, 0
		if reformatted, ok := result.(schema.Reformatted); ok {
			additions, deletions = reformatted.LineChanges()
		}
		data = append(data, []string{
			contract.TruncatePath(path, maxPath),
			label,
			strconv.Itoa(result.LineCount()),
			strconv.Itoa(additions),
			strconv.Itoa(deletions),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %d files\n", name, len(results))
	return err
}

// PrintFileOutcome outputs one file's full outcome: its classification plus
// the diff for reformatted files or the diagnostic for failed ones.
func PrintFileOutcome(cfg *contract.Config, project, file string, result schema.FileResult) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		label := contract.GetPlainLabel(result.Type())
		if cfg.UseColors {
			label = contract.GetColorLabel(result.Type())
		}
		if _, err := fmt.Fprintf(w, "%s/%s: %s (%d lines)\n", project, file, label, result.LineCount()); err != nil {
			return err
		}
		switch r := result.(type) {
		case schema.Reformatted:
			return writeDiff(w, cfg, r.Diff(file))
		case schema.Failed:
			if _, err := fmt.Fprintf(w, "%s: %s\n", r.Error, r.Message); err != nil {
				return err
			}
			if r.Log != "" {
				_, err := fmt.Fprintln(w, r.Log)
				return err
			}
		}
		return nil
	}, "Wrote outcome")
}

// PrintRaw outputs one field value verbatim with a trailing newline.
func PrintRaw(cfg *contract.Config, value string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if !strings.HasSuffix(value, "\n") {
			value += "\n"
		}
		_, err := io.WriteString(w, value)
		return err
	}, "Wrote field")
}

// writeDiff writes a unified diff, coloring added and deleted lines when
// colors are on.
func writeDiff(w io.Writer, cfg *contract.Config, diff string) error {
	if !cfg.UseColors {
		_, err := io.WriteString(w, diff)
		return err
	}
	for line := range strings.Lines(diff) {
		var err error
		switch {
		case strings.HasPrefix(line, "+"):
			_, err = contract.NothingChangedColor.Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			_, err = contract.FailedColor.Fprint(w, line)
		default:
			_, err = io.WriteString(w, line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
