package core

import (
	"fmt"
	"slices"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/internal/outwriter"
	"github.com/huangsam/fmtgauge/schema"
)

// ExecuteShow drills into one analysis: whole-run summary, one project, one
// file's outcome, or a single field of one file's outcome. It serves as the
// main entry point for the 'show' command.
func ExecuteShow(cfg *contract.Config, path string, selector []string) error {
	analysis, err := loadAnalysis(cfg, path)
	if err != nil {
		return err
	}
	if len(selector) == 0 {
		return outwriter.PrintAnalysisSummary(cfg, analysis)
	}

	project := selector[0]
	results, ok := analysis.Results[project]
	if !ok {
		return fmt.Errorf("unknown project %q; analysis has: %v", project, analysis.ProjectNames())
	}
	if len(selector) == 1 {
		return outwriter.PrintProjectResults(cfg, project, results)
	}

	file := selector[1]
	result, ok := results[file]
	if !ok {
		return fmt.Errorf("project %q has no result for file %q", project, file)
	}
	if len(selector) == 2 {
		return outwriter.PrintFileOutcome(cfg, project, file, result)
	}

	value, err := resultField(result, file, selector[2])
	if err != nil {
		return err
	}
	return outwriter.PrintRaw(cfg, value)
}

// resultField extracts one named field of a file outcome. Asking for a
// field the result shape does not carry is an error, not empty output.
func resultField(result schema.FileResult, file, field string) (string, error) {
	switch field {
	case "type":
		return string(result.Type()), nil
	case "src":
		return result.Source(), nil
	case "dst":
		if r, ok := result.(schema.Reformatted); ok {
			return r.Dst, nil
		}
		return "", fmt.Errorf("field %q only exists on reformatted results", field)
	case "diff":
		if r, ok := result.(schema.Reformatted); ok {
			return r.Diff(file), nil
		}
		return "", fmt.Errorf("field %q only exists on reformatted results", field)
	case "error":
		if r, ok := result.(schema.Failed); ok {
			return r.Error, nil
		}
		return "", fmt.Errorf("field %q only exists on failed results", field)
	case "message":
		if r, ok := result.(schema.Failed); ok {
			return r.Message, nil
		}
		return "", fmt.Errorf("field %q only exists on failed results", field)
	case "log":
		if r, ok := result.(schema.Failed); ok {
			return r.Log, nil
		}
		return "", fmt.Errorf("field %q only exists on failed results", field)
	default:
		return "", fmt.Errorf("unknown field %q; use type, src, dst, diff, error, message or log", field)
	}
}

// ExecuteShowFailed lists every failed file per project. It serves as the
// main entry point for the 'show-failed' command. Under --check any failure
// outside the --check-allow list returns ErrFailuresFound.
func ExecuteShowFailed(cfg *contract.Config, path string) error {
	analysis, err := loadAnalysis(cfg, path)
	if err != nil {
		return err
	}
	if err := outwriter.PrintShowFailed(cfg, analysis); err != nil {
		return err
	}

	disallowed := 0
	for _, project := range analysis.ProjectNames() {
		failed := schema.FilterResults(analysis.Results[project], schema.FailedResult)
		for _, file := range failed.SortedPaths() {
			if !slices.Contains(cfg.CheckAllow, project+":"+file) {
				disallowed++
			}
		}
	}
	if cfg.Check && disallowed > 0 {
		return ErrFailuresFound
	}
	return nil
}
