package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// ProjectResults maps relative file paths to their outcomes for one project.
// Iteration order is always sorted-path order via SortedPaths; JSON
// marshaling of string-keyed maps already sorts keys, so the wire order
// matches the order files were checked in.
type ProjectResults map[string]FileResult

// SortedPaths returns all file paths in sorted order.
func (pr ProjectResults) SortedPaths() []string {
	paths := make([]string, 0, len(pr))
	for path := range pr {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// LineCount sums line counts over all entries.
func (pr ProjectResults) LineCount() int {
	total := 0
	for _, result := range pr {
		total += result.LineCount()
	}
	return total
}

// LineChanges sums additions and deletions over all reformatted entries.
func (pr ProjectResults) LineChanges() (additions, deletions int) {
	for _, result := range pr {
		if reformatted, ok := result.(Reformatted); ok {
			add, del := reformatted.LineChanges()
			additions += add
			deletions += del
		}
	}
	return additions, deletions
}

// Overall rolls the collection up into a single result type: failed beats
// reformatted beats nothing-changed. An empty collection violates the
// model's invariants and is reported as an error, never papered over.
func (pr ProjectResults) Overall() (ResultType, error) {
	if len(pr) == 0 {
		return "", fmt.Errorf("cannot roll up an empty result collection")
	}
	overall := NothingChangedResult
	for _, result := range pr {
		switch result.Type() {
		case FailedResult:
			return FailedResult, nil
		case ReformattedResult:
			overall = ReformattedResult
		}
	}
	return overall, nil
}

// UnmarshalJSON decodes each entry through the tagged file result decoder.
func (pr *ProjectResults) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode project results: %w", err)
	}
	decoded := make(ProjectResults, len(raw))
	for path, entry := range raw {
		result, err := UnmarshalFileResult(entry)
		if err != nil {
			return fmt.Errorf("file %q: %w", path, err)
		}
		decoded[path] = result
	}
	*pr = decoded
	return nil
}

// FilterResults returns the subset of results whose type matches want.
// Sorted-path iteration over the subset preserves the original order.
func FilterResults(results ProjectResults, want ResultType) ProjectResults {
	filtered := make(ProjectResults)
	for path, result := range results {
		if result.Type() == want {
			filtered[path] = result
		}
	}
	return filtered
}

// Analysis is one complete run: the projects analyzed, their per-file
// results and free-form run metadata. It is immutable after construction;
// the engine builds it once and everything downstream only reads it.
type Analysis struct {
	Projects map[string]Project        `json:"projects"`
	Results  map[string]ProjectResults `json:"results"`
	Metadata map[string]any            `json:"metadata"`
}

// ProjectNames returns all analyzed project names in sorted order.
func (a *Analysis) ProjectNames() []string {
	names := make([]string, 0, len(a.Projects))
	for name := range a.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatterVersion returns the recorded formatter version, if any.
func (a *Analysis) FormatterVersion() string {
	if v, ok := a.Metadata[MetaFormatterVersion].(string); ok {
		return v
	}
	return ""
}

// CreatedAt returns the recorded creation time, or the zero time when the
// metadata key is missing or malformed.
func (a *Analysis) CreatedAt() time.Time {
	raw, ok := a.Metadata[MetaCreatedAt].(string)
	if !ok {
		return time.Time{}
	}
	created, err := time.Parse(CreatedAtFormat, raw)
	if err != nil {
		return time.Time{}
	}
	return created
}

// DataFormat returns the recorded data-format version. JSON numbers decode
// as float64, which keeps fractional format revisions representable.
func (a *Analysis) DataFormat() (float64, bool) {
	switch v := a.Metadata[MetaDataFormat].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// Validate checks the structural invariants that hold for every analysis:
// the project and result key sets must be identical.
func (a *Analysis) Validate() error {
	for name := range a.Projects {
		if _, ok := a.Results[name]; !ok {
			return fmt.Errorf("project %q has no results", name)
		}
	}
	for name := range a.Results {
		if _, ok := a.Projects[name]; !ok {
			return fmt.Errorf("results reference unknown project %q", name)
		}
	}
	return nil
}
