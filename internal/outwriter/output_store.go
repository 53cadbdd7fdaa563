package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/schema"
)

// PrintRunLog outputs the recorded run history, newest first.
func PrintRunLog(cfg *contract.Config, records []schema.RunRecord) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Run", "Started", "Duration", "Version", "Projects", "Files", "Clean", "Changed", "Failed"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, record := range records {
			data = append(data, []string{
				strconv.FormatInt(record.RunID, 10),
				record.StartTime.Format(contract.DateTimeFormat),
				fmt.Sprintf("%dms", record.DurationMs),
				record.FormatterVersion,
				strconv.Itoa(record.ProjectCount),
				strconv.Itoa(record.FileCount),
				strconv.Itoa(record.NothingChanged),
				strconv.Itoa(record.Reformatted),
				strconv.Itoa(record.Failed),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%d runs shown.\n", len(records))
		return err
	}, "Wrote run log")
}

// PrintRunLogStatus outputs a one-look summary of the run log store.
func PrintRunLogStatus(cfg *contract.Config, status schema.RunLogStatus) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Backend: %s (connected: %v)\n", status.Backend, status.Connected); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns); err != nil {
			return err
		}
		if status.TotalRuns > 0 {
			if _, err := fmt.Fprintf(w, "Last run: #%d at %s\n", status.LastRunID, status.LastRunTime.Format(contract.DateTimeFormat)); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "Oldest run: %s\n", status.OldestRunTime.Format(contract.DateTimeFormat)); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote status")
}

// PrintCacheStatus outputs the analysis cache directory summary.
func PrintCacheStatus(cfg *contract.Config, status schema.CacheStatus) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Cache dir: %s\n", status.Dir); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Entries: %d (%d bytes)\n", status.TotalEntries, status.TotalBytes); err != nil {
			return err
		}
		if status.TotalEntries > 0 {
			if _, err := fmt.Fprintf(w, "Oldest access: %s\n", status.OldestAccess.Format(contract.DateTimeFormat)); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "Newest access: %s\n", status.NewestAccess.Format(contract.DateTimeFormat)); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote status")
}
