// Package textdiff produces unified diffs between two versions of a source
// file and derives line-change statistics from them. It uses
// github.com/pmezard/go-difflib/difflib to emit classic unified patches
// (---/+++ headers, @@ hunks, lines prefixed with ' ', '-', '+').
package textdiff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ContextLines is the number of context lines emitted around each hunk.
const ContextLines = 5

// Unified returns the unified diff between a and b. An empty string means
// the two inputs are identical.
func Unified(a, b, aName, bName string) string {
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(a),
		B:        splitLinesKeepNL(b),
		FromFile: aName,
		ToFile:   bName,
		Context:  ContextLines,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		// difflib only fails on writer errors, which strings.Builder never
		// returns, but keep the diff usable regardless.
		return ""
	}
	return s
}

// LineChanges counts added and deleted lines in a unified diff, skipping
// the +++/--- file headers.
func LineChanges(diff string) (additions, deletions int) {
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			additions++
		} else if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			deletions++
		}
	}
	return additions, deletions
}

// splitLinesKeepNL splits into lines and keeps newline characters, which
// produces better unified hunks. A file that does not end with a newline
// keeps its last chunk bare.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
