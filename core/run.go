package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/internal/formatter"
	"github.com/huangsam/fmtgauge/internal/iocache"
	"github.com/huangsam/fmtgauge/internal/outwriter"
	"github.com/huangsam/fmtgauge/internal/runstore"
	"github.com/huangsam/fmtgauge/schema"
)

// ExecuteRun clones and checks every selected project, writes the analysis
// to cfg.ResultsPath and appends a run log row. It serves as the main entry
// point for the 'run' command.
func ExecuteRun(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()

	// A bad pass-through argument must die here, not hours into a run.
	if err := formatter.CheckArguments(cfg.ExtraArgs); err != nil {
		return err
	}

	projects, err := gatherProjects(cfg)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		return fmt.Errorf("no projects selected; check --select/--exclude against the registry")
	}

	workDir, cleanup, err := resolveWorkDir(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	tasks, err := prepareTasks(ctx, cfg, NewGitPreparer(), projects, workDir)
	if err != nil {
		return err
	}

	totalFiles := 0
	for _, task := range tasks {
		totalFiles += len(task.Resolution.Files)
	}
	progress := outwriter.NewProgress(totalFiles, cfg.UseColors)

	results, err := analyzeProjects(cfg, tasks, progress)
	if err != nil {
		return err
	}

	analysis := &schema.Analysis{
		Projects: make(map[string]schema.Project, len(tasks)),
		Results:  results,
		Metadata: buildMetadata(cfg.ExtraArgs, start),
	}
	for _, task := range tasks {
		analysis.Projects[task.Project.Name] = task.Project
	}

	if err := iocache.SaveAnalysis(cfg.ResultsPath, analysis); err != nil {
		return err
	}
	recordRun(cfg, analysis, start)

	return outwriter.PrintRunSummary(cfg, analysis, time.Since(start))
}

// gatherProjects resolves the project list for a run: a prior analysis's
// projects, a YAML registry file, or the built-in registry; then name
// filters and the runtime constraint.
func gatherProjects(cfg *contract.Config) ([]schema.Project, error) {
	var projects []schema.Project
	switch {
	case cfg.RepeatFrom != "":
		prior, _, err := iocache.LoadAnalysis(cfg.RepeatFrom, openCache(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to load prior analysis: %w", err)
		}
		for _, name := range prior.ProjectNames() {
			projects = append(projects, prior.Projects[name])
		}
	case cfg.ProjectsFile != "":
		var err error
		projects, err = contract.LoadProjectsFile(cfg.ProjectsFile)
		if err != nil {
			return nil, err
		}
	default:
		projects = schema.DefaultProjects
	}

	filtered, err := contract.FilterProjects(projects, cfg.Select, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	supported := filtered[:0]
	for _, project := range filtered {
		if !project.SupportedByRuntime() {
			contract.LogWarn(fmt.Sprintf("skipping project %q", project.Name),
				fmt.Errorf("requires Go %s", project.GoRequires))
			continue
		}
		supported = append(supported, project)
	}
	return supported, nil
}

// resolveWorkDir returns the checkout root for a run. Without an explicit
// --work-dir the checkouts live in a per-run temp directory that is removed
// afterwards; an explicit work dir persists so later runs can reuse clones.
func resolveWorkDir(cfg *contract.Config) (string, func(), error) {
	if cfg.WorkDir != "" {
		if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
			return "", nil, fmt.Errorf("failed to create work dir %s: %w", cfg.WorkDir, err)
		}
		return cfg.WorkDir, func() {}, nil
	}
	tempDir, err := os.MkdirTemp("", "fmtgauge-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary work dir: %w", err)
	}
	return tempDir, func() { _ = os.RemoveAll(tempDir) }, nil
}

// prepareTasks clones and resolves every project sequentially. Preparation
// is network bound and projects are few; any setup error aborts the run
// before a partial analysis can be written.
func prepareTasks(ctx context.Context, cfg *contract.Config, preparer contract.RepoPreparer, projects []schema.Project, workDir string) ([]ProjectTask, error) {
	tasks := make([]ProjectTask, 0, len(projects))
	for _, project := range projects {
		dir := filepath.Join(workDir, project.Name)
		prepared, err := preparer.Prepare(ctx, project, dir)
		if err != nil {
			return nil, err
		}
		resolution, err := formatter.ResolveProject(prepared, dir, cfg.ExtraArgs, cfg.ForceStyle)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, ProjectTask{Project: prepared, Dir: dir, Resolution: resolution})
	}
	return tasks, nil
}

// buildMetadata assembles the run metadata. Values use JSON-native shapes
// so a saved-then-loaded analysis stays structurally equal to this one.
func buildMetadata(extraArgs []string, start time.Time) map[string]any {
	args := make([]any, len(extraArgs))
	for i, arg := range extraArgs {
		args[i] = arg
	}
	return map[string]any{
		schema.MetaFormatterVersion: formatter.Version(),
		schema.MetaFormatterArgs:    args,
		schema.MetaCreatedAt:        start.UTC().Format(schema.CreatedAtFormat),
		schema.MetaDataFormat:       float64(schema.CurrentDataFormat),
	}
}

// recordRun appends the run summary to the run log store. Run tracking is
// best effort: a broken store warns, it never fails a finished run.
func recordRun(cfg *contract.Config, analysis *schema.Analysis, start time.Time) {
	store, err := runstore.NewRunStore(cfg.RunLogBackend, cfg.RunLogConnect)
	if err != nil {
		contract.LogWarn("run log unavailable", err)
		return
	}
	defer func() { _ = store.Close() }()

	record := schema.RunRecord{
		StartTime:        start.UTC(),
		DurationMs:       time.Since(start).Milliseconds(),
		FormatterVersion: analysis.FormatterVersion(),
		ResultsPath:      cfg.ResultsPath,
		ProjectCount:     len(analysis.Projects),
	}
	for _, results := range analysis.Results {
		for _, result := range results {
			record.FileCount++
			switch result.Type() {
			case schema.FailedResult:
				record.Failed++
			case schema.ReformattedResult:
				record.Reformatted++
			default:
				record.NothingChanged++
			}
		}
	}
	if _, err := store.RecordRun(record); err != nil {
		contract.LogWarn("failed to record run", err)
	}
}

// sortedProjectNames returns result keys in display order.
func sortedProjectNames(results map[string]schema.ProjectResults) []string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
