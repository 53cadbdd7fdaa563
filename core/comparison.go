package core

import (
	"fmt"
	"sort"

	"github.com/huangsam/fmtgauge/internal/textdiff"
	"github.com/huangsam/fmtgauge/schema"
)

// Crash tokens used when diffing against a Failed result.
const noCrashToken = "[no crash]"

// DiffTwoResults renders the unified diff between two file outcomes.
// Diffing a Failed result requires diffFailure; without it the call is a
// contract violation and errors immediately. With it, a Failed result
// renders as a one-line "[<error>: <message>]" token and the other side as
// "[no crash]", so crash regressions show up as ordinary diff lines.
func DiffTwoResults(r1, r2 schema.FileResult, file string, diffFailure bool) (string, error) {
	crash := r1.Type() == schema.FailedResult || r2.Type() == schema.FailedResult
	if crash && !diffFailure {
		return "", fmt.Errorf("diffing a failed result for %s requires diffFailure", file)
	}
	return textdiff.Unified(displayText(r1, crash), displayText(r2, crash), "a/"+file, "b/"+file), nil
}

// displayText picks the comparable text for one result. In a crash pairing
// both sides collapse to one-line tokens.
func displayText(result schema.FileResult, crashPair bool) string {
	if crashPair {
		if failed, ok := result.(schema.Failed); ok {
			return fmt.Sprintf("[%s: %s]\n", failed.Error, failed.Message)
		}
		return noCrashToken + "\n"
	}
	switch r := result.(type) {
	case schema.Reformatted:
		return r.Dst
	case schema.NothingChanged:
		return r.Src
	default:
		// Unreachable: Failed always comes through the crashPair branch.
		return result.Source()
	}
}

// CompareAnalyses compares two analyses over their shared, identically
// configured projects. Mismatched and one-sided projects are recorded and
// excluded from the comparison, never silently merged.
func CompareAnalyses(first, second *schema.Analysis) (*schema.ComparisonResult, error) {
	result := &schema.ComparisonResult{}

	for name, project := range first.Projects {
		other, ok := second.Projects[name]
		switch {
		case !ok:
			result.OnlyInFirst = append(result.OnlyInFirst, name)
		case !project.Equal(other):
			result.Mismatched = append(result.Mismatched, name)
		default:
			result.Shared = append(result.Shared, name)
		}
	}
	for name := range second.Projects {
		if _, ok := first.Projects[name]; !ok {
			result.OnlyInSecond = append(result.OnlyInSecond, name)
		}
	}
	sort.Strings(result.Shared)
	sort.Strings(result.Mismatched)
	sort.Strings(result.OnlyInFirst)
	sort.Strings(result.OnlyInSecond)

	for _, name := range result.Shared {
		difference, err := compareProject(name, first.Results[name], second.Results[name], result)
		if err != nil {
			return nil, err
		}
		if len(difference.Files) > 0 {
			result.Differing = append(result.Differing, difference)
		}
	}
	return result, nil
}

// compareProject collects differing files of one shared project and feeds
// the non-crash line tallies.
func compareProject(name string, pr1, pr2 schema.ProjectResults, agg *schema.ComparisonResult) (schema.ProjectDifference, error) {
	difference := schema.ProjectDifference{Name: name}

	for _, file := range unionPaths(pr1, pr2) {
		r1, ok1 := pr1[file]
		r2, ok2 := pr2[file]
		if ok1 && ok2 && r1 == r2 {
			continue
		}
		if !ok1 || !ok2 {
			// One-sided file: counted as a difference, nothing to diff.
			difference.Files = append(difference.Files, schema.FileDifference{File: file})
			continue
		}
		diff, err := DiffTwoResults(r1, r2, file, true)
		if err != nil {
			return difference, fmt.Errorf("project %q: %w", name, err)
		}
		crash := r1.Type() == schema.FailedResult || r2.Type() == schema.FailedResult
		if !crash {
			additions, deletions := textdiff.LineChanges(diff)
			agg.Additions += additions
			agg.Deletions += deletions
		}
		difference.Files = append(difference.Files, schema.FileDifference{
			File:          file,
			Diff:          diff,
			CrashInvolved: crash,
		})
	}
	return difference, nil
}

// unionPaths returns the sorted union of both file path sets.
func unionPaths(pr1, pr2 schema.ProjectResults) []string {
	seen := make(map[string]struct{}, len(pr1)+len(pr2))
	for path := range pr1 {
		seen[path] = struct{}{}
	}
	for path := range pr2 {
		seen[path] = struct{}{}
	}
	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
