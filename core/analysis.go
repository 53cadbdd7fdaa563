package core

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/internal/formatter"
	"github.com/huangsam/fmtgauge/internal/outwriter"
	"github.com/huangsam/fmtgauge/schema"
)

// ProjectTask is one prepared project ready for checking: its registry
// entry with the actual commit filled in, its checkout directory and the
// resolved file list and mode.
type ProjectTask struct {
	Project    schema.Project
	Dir        string
	Resolution *formatter.Resolution
}

// checkJob addresses one file of one task by index.
type checkJob struct {
	task int
	file int
}

// analyzeProjects fans the per-file checker out over all files of all tasks
// using a bounded worker pool. Workers write into pre-sized per-project
// slices at unique indexes, so the final per-project ordering is the sorted
// file-list order regardless of completion order in the pool.
//
// An engine error (unreadable file) aborts the whole run after the pool has
// fully drained; formatter problems never surface here, they are already
// Failed results.
func analyzeProjects(cfg *contract.Config, tasks []ProjectTask, progress *outwriter.Progress) (map[string]schema.ProjectResults, error) {
	total := 0
	for _, task := range tasks {
		total += len(task.Resolution.Files)
	}

	slots := make([][]schema.FileResult, len(tasks))
	for i, task := range tasks {
		slots[i] = make([]schema.FileResult, len(task.Resolution.Files))
	}

	jobCh := make(chan checkJob, total)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for job := range jobCh {
				task := tasks[job.task]
				rel := task.Resolution.Files[job.file]
				result, err := CheckFile(filepath.Join(task.Dir, filepath.FromSlash(rel)), rel, task.Resolution.Mode)
				if err != nil {
					errCh <- fmt.Errorf("project %q: %w", task.Project.Name, err)
					continue
				}
				// Each job writes to a unique index, which is safe.
				slots[job.task][job.file] = result
				progress.FileDone(task.Project.Name, rel)
			}
		})
	}

	for t := range tasks {
		for f := range tasks[t].Resolution.Files {
			jobCh <- checkJob{task: t, file: f}
		}
	}
	close(jobCh)
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, err
	}

	results := make(map[string]schema.ProjectResults, len(tasks))
	for i, task := range tasks {
		projectResults := make(schema.ProjectResults, len(task.Resolution.Files))
		for f, rel := range task.Resolution.Files {
			projectResults[rel] = slots[i][f]
		}
		overall, err := projectResults.Overall()
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", task.Project.Name, err)
		}
		progress.ProjectDone(task.Project.Name, overall)
		results[task.Project.Name] = projectResults
	}
	return results, nil
}
