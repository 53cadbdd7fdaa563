package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/internal/iocache"
	"github.com/huangsam/fmtgauge/schema"
)

// savedAnalysis persists an analysis to a temp file and returns a config
// that writes command output into the same directory.
func savedAnalysis(t *testing.T, analysis *schema.Analysis) (*contract.Config, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.json")
	require.NoError(t, iocache.SaveAnalysis(path, analysis))
	cfg := &contract.Config{
		Output:     schema.TextOut,
		OutputFile: filepath.Join(dir, "out.txt"),
		CacheDir:   filepath.Join(dir, "cache"),
	}
	return cfg, path
}

func TestResultField(t *testing.T) {
	reformatted := schema.NewReformatted("a\n", "b\n")
	failed := schema.Failed{Src: "x", Error: "SyntaxError", Message: "boom", Log: "trace"}
	clean := schema.NothingChanged{Src: "y\n"}

	cases := []struct {
		name    string
		result  schema.FileResult
		field   string
		want    string
		wantErr bool
	}{
		{"type", clean, "type", "nothing-changed", false},
		{"src", clean, "src", "y\n", false},
		{"dst", reformatted, "dst", "b\n", false},
		{"dst on clean", clean, "dst", "", true},
		{"diff on failed", failed, "diff", "", true},
		{"error", failed, "error", "SyntaxError", false},
		{"message", failed, "message", "boom", false},
		{"log", failed, "log", "trace", false},
		{"error on clean", clean, "error", "", true},
		{"unknown", clean, "bogus", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resultField(tc.result, "f.go", tc.field)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResultFieldDiff(t *testing.T) {
	reformatted := schema.NewReformatted("a\n", "b\n")
	diff, err := resultField(reformatted, "f.go", "diff")
	require.NoError(t, err)
	assert.Contains(t, diff, "a/f.go")
	assert.Contains(t, diff, "-a")
	assert.Contains(t, diff, "+b")
}

func TestExecuteShowSelectors(t *testing.T) {
	analysis := analysisWith(map[string]schema.ProjectResults{
		"chi": {"a.go": schema.NewReformatted("a\n", "b\n")},
	})
	cfg, path := savedAnalysis(t, analysis)

	assert.NoError(t, ExecuteShow(cfg, path, nil))
	assert.NoError(t, ExecuteShow(cfg, path, []string{"chi"}))
	assert.NoError(t, ExecuteShow(cfg, path, []string{"chi", "a.go"}))
	assert.NoError(t, ExecuteShow(cfg, path, []string{"chi", "a.go", "dst"}))

	assert.Error(t, ExecuteShow(cfg, path, []string{"nope"}))
	assert.Error(t, ExecuteShow(cfg, path, []string{"chi", "nope.go"}))
	assert.Error(t, ExecuteShow(cfg, path, []string{"chi", "a.go", "bogus"}))
}

func TestExecuteShowFailedCheck(t *testing.T) {
	analysis := analysisWith(map[string]schema.ProjectResults{
		"chi": {
			"ok.go":  schema.NothingChanged{Src: "a\n"},
			"bad.go": schema.Failed{Src: "x", Error: "SyntaxError", Message: "boom"},
		},
	})
	cfg, path := savedAnalysis(t, analysis)

	// Without --check failures are reported but not fatal.
	assert.NoError(t, ExecuteShowFailed(cfg, path))

	cfg.Check = true
	assert.ErrorIs(t, ExecuteShowFailed(cfg, path), ErrFailuresFound)

	cfg.CheckAllow = []string{"chi:bad.go"}
	assert.NoError(t, ExecuteShowFailed(cfg, path))
}

func TestExecuteCompareCheck(t *testing.T) {
	first := analysisWith(map[string]schema.ProjectResults{
		"chi": {"a.go": schema.NothingChanged{Src: "a\n"}},
	})
	second := analysisWith(map[string]schema.ProjectResults{
		"chi": {"a.go": schema.NewReformatted("a\n", "b\n")},
	})
	cfg, firstPath := savedAnalysis(t, first)
	secondPath := filepath.Join(t.TempDir(), "second.json")
	require.NoError(t, iocache.SaveAnalysis(secondPath, second))

	assert.NoError(t, ExecuteCompare(cfg, firstPath, secondPath))

	cfg.Check = true
	assert.ErrorIs(t, ExecuteCompare(cfg, firstPath, secondPath), ErrDifferencesFound)
	assert.NoError(t, ExecuteCompare(cfg, firstPath, firstPath))
}
