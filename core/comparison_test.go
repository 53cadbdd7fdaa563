package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/fmtgauge/schema"
)

func analysisWith(results map[string]schema.ProjectResults) *schema.Analysis {
	projects := make(map[string]schema.Project, len(results))
	for name := range results {
		projects[name] = schema.Project{Name: name, URL: "https://example.com/" + name, CustomArguments: []string{}}
	}
	return &schema.Analysis{
		Projects: projects,
		Results:  results,
		Metadata: map[string]any{schema.MetaDataFormat: float64(schema.CurrentDataFormat)},
	}
}

func TestDiffTwoResultsRequiresOptIn(t *testing.T) {
	clean := schema.NothingChanged{Src: "package a\n"}
	failed := schema.Failed{Src: "var (", Error: "SyntaxError", Message: "expected declaration"}

	_, err := DiffTwoResults(clean, failed, "a.go", false)
	require.Error(t, err)

	diff, err := DiffTwoResults(clean, failed, "a.go", true)
	require.NoError(t, err)
	assert.Contains(t, diff, "-[no crash]")
	assert.Contains(t, diff, "+[SyntaxError: expected declaration]")
}

func TestDiffTwoResultsContent(t *testing.T) {
	before := schema.NothingChanged{Src: "a := 1\n"}
	after := schema.NewReformatted("a := 1\n", "a := 2\n")

	diff, err := DiffTwoResults(before, after, "main.go", false)
	require.NoError(t, err)
	assert.Contains(t, diff, "--- a/main.go")
	assert.Contains(t, diff, "+++ b/main.go")
	assert.Contains(t, diff, "-a := 1")
	assert.Contains(t, diff, "+a := 2")

	// Identical display texts diff to nothing.
	same, err := DiffTwoResults(after, after, "main.go", false)
	require.NoError(t, err)
	assert.Empty(t, same)
}

func TestDiffTwoResultsSwapInvertsSigns(t *testing.T) {
	r1 := schema.NothingChanged{Src: "x\n"}
	r2 := schema.NewReformatted("x\n", "y\n")

	forward, err := DiffTwoResults(r1, r2, "f.go", false)
	require.NoError(t, err)
	backward, err := DiffTwoResults(r2, r1, "f.go", false)
	require.NoError(t, err)
	assert.Contains(t, forward, "-x")
	assert.Contains(t, forward, "+y")
	assert.Contains(t, backward, "-y")
	assert.Contains(t, backward, "+x")
}

func TestCompareAnalysesNothingChanged(t *testing.T) {
	results := map[string]schema.ProjectResults{
		"chi": {"a.go": schema.NothingChanged{Src: "package a\n"}},
	}
	first := analysisWith(results)
	second := analysisWith(results)

	comparison, err := CompareAnalyses(first, second)
	require.NoError(t, err)
	assert.True(t, comparison.NothingChanged())
	assert.Equal(t, []string{"chi"}, comparison.Shared)
	assert.Zero(t, comparison.DifferingFileCount())
}

func TestCompareAnalysesFindsDifferences(t *testing.T) {
	first := analysisWith(map[string]schema.ProjectResults{
		"chi": {
			"a.go": schema.NothingChanged{Src: "a := 1\n"},
			"b.go": schema.NothingChanged{Src: "b\n"},
		},
	})
	second := analysisWith(map[string]schema.ProjectResults{
		"chi": {
			"a.go": schema.NewReformatted("a := 1\n", "a := 2\n"),
			"b.go": schema.NothingChanged{Src: "b\n"},
		},
	})

	comparison, err := CompareAnalyses(first, second)
	require.NoError(t, err)
	require.Len(t, comparison.Differing, 1)
	assert.Equal(t, "chi", comparison.Differing[0].Name)
	require.Len(t, comparison.Differing[0].Files, 1)
	assert.Equal(t, "a.go", comparison.Differing[0].Files[0].File)
	assert.Equal(t, 1, comparison.Additions)
	assert.Equal(t, 1, comparison.Deletions)
}

func TestCompareAnalysesExcludesCrashDiffsFromTallies(t *testing.T) {
	first := analysisWith(map[string]schema.ProjectResults{
		"chi": {"a.go": schema.NothingChanged{Src: "package a\n"}},
	})
	second := analysisWith(map[string]schema.ProjectResults{
		"chi": {"a.go": schema.Failed{Src: "package a\n", Error: "FormatError", Message: "boom"}},
	})

	comparison, err := CompareAnalyses(first, second)
	require.NoError(t, err)
	require.Len(t, comparison.Differing, 1)
	assert.True(t, comparison.Differing[0].Files[0].CrashInvolved)
	assert.Zero(t, comparison.Additions)
	assert.Zero(t, comparison.Deletions)
}

func TestCompareAnalysesSkipsMismatchedProjects(t *testing.T) {
	first := analysisWith(map[string]schema.ProjectResults{
		"chi":   {"a.go": schema.NothingChanged{Src: "a\n"}},
		"mux":   {"m.go": schema.NothingChanged{Src: "m\n"}},
		"extra": {"e.go": schema.NothingChanged{Src: "e\n"}},
	})
	second := analysisWith(map[string]schema.ProjectResults{
		"chi":   {"a.go": schema.NothingChanged{Src: "a\n"}},
		"mux":   {"m.go": schema.NothingChanged{Src: "m\n"}},
		"other": {"o.go": schema.NothingChanged{Src: "o\n"}},
	})
	// Same name, different configuration: excluded from the comparison.
	mux := second.Projects["mux"]
	mux.CustomArguments = []string{"--preview"}
	second.Projects["mux"] = mux

	comparison, err := CompareAnalyses(first, second)
	require.NoError(t, err)
	assert.Equal(t, []string{"chi"}, comparison.Shared)
	assert.Equal(t, []string{"mux"}, comparison.Mismatched)
	assert.Equal(t, []string{"extra"}, comparison.OnlyInFirst)
	assert.Equal(t, []string{"other"}, comparison.OnlyInSecond)
	assert.True(t, comparison.NothingChanged())
}

func TestCompareAnalysesOneSidedFile(t *testing.T) {
	first := analysisWith(map[string]schema.ProjectResults{
		"chi": {
			"a.go": schema.NothingChanged{Src: "a\n"},
			"b.go": schema.NothingChanged{Src: "b\n"},
		},
	})
	second := analysisWith(map[string]schema.ProjectResults{
		"chi": {"a.go": schema.NothingChanged{Src: "a\n"}},
	})

	comparison, err := CompareAnalyses(first, second)
	require.NoError(t, err)
	require.Len(t, comparison.Differing, 1)
	require.Len(t, comparison.Differing[0].Files, 1)
	assert.Equal(t, "b.go", comparison.Differing[0].Files[0].File)
	assert.Empty(t, comparison.Differing[0].Files[0].Diff)
}
