package schema

// FileDifference is one file whose outcome differs between two analyses.
// Diff is empty when the file only exists on one side.
type FileDifference struct {
	File          string
	Diff          string
	CrashInvolved bool
}

// ProjectDifference is one shared project whose results differ, with every
// differing file in sorted order.
type ProjectDifference struct {
	Name  string
	Files []FileDifference
}

// ComparisonResult is the outcome of comparing two analyses. Only shared,
// identically-configured projects are compared; everything else is reported
// and excluded.
type ComparisonResult struct {
	Shared       []string // compared project names, sorted
	Mismatched   []string // present in both but configured differently
	OnlyInFirst  []string
	OnlyInSecond []string

	Differing []ProjectDifference

	// Additions and Deletions sum line changes over non-crash file diffs.
	// A "[no crash]" vs "[Error: ...]" diff is not a line-count signal.
	Additions int
	Deletions int
}

// NothingChanged reports whether every shared project is pairwise equal.
func (c *ComparisonResult) NothingChanged() bool {
	return len(c.Differing) == 0
}

// DifferingFileCount counts differing files across all differing projects.
func (c *ComparisonResult) DifferingFileCount() int {
	total := 0
	for _, project := range c.Differing {
		total += len(project.Files)
	}
	return total
}
