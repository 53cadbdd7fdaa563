// Package core has the core logic for preparing projects, checking files,
// building analyses and comparing runs.
package core

import (
	"errors"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/internal/iocache"
	"github.com/huangsam/fmtgauge/internal/outwriter"
	"github.com/huangsam/fmtgauge/schema"
)

// Sentinel errors that map to non-zero exit codes under --check. They carry
// no message of their own; the surrounding command prints the summary first.
var (
	// ErrDifferencesFound reports that a comparison found differences.
	ErrDifferencesFound = errors.New("differences found")

	// ErrFailuresFound reports failures outside the allow-list.
	ErrFailuresFound = errors.New("unallowed failures found")
)

// openCache opens the analysis cache for this invocation. The cache is an
// optimization: when it cannot be opened the run proceeds without one.
func openCache(cfg *contract.Config) contract.AnalysisCache {
	cache, err := iocache.NewFileCache(cfg.CacheDir)
	if err != nil {
		contract.LogWarn("analysis cache unavailable", err)
		return nil
	}
	return cache
}

// loadAnalysis reads one analysis through the cache.
func loadAnalysis(cfg *contract.Config, path string) (*schema.Analysis, error) {
	analysis, _, err := iocache.LoadAnalysis(path, openCache(cfg))
	return analysis, err
}

// ExecuteCompare compares two analyses and prints the differences summary.
// It serves as the main entry point for the 'compare' command. Under
// --check a non-empty difference set returns ErrDifferencesFound.
func ExecuteCompare(cfg *contract.Config, firstPath, secondPath string) error {
	first, err := loadAnalysis(cfg, firstPath)
	if err != nil {
		return err
	}
	second, err := loadAnalysis(cfg, secondPath)
	if err != nil {
		return err
	}

	result, err := CompareAnalyses(first, second)
	if err != nil {
		return err
	}
	if err := outwriter.PrintComparison(cfg, result); err != nil {
		return err
	}
	if cfg.Check && !result.NothingChanged() {
		return ErrDifferencesFound
	}
	return nil
}
