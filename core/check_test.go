package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/fmtgauge/internal/formatter"
	"github.com/huangsam/fmtgauge/schema"
)

const formattedSource = "package sample\n\nfunc Add(a, b int) int {\n\treturn a + b\n}\n"

const unformattedSource = "package sample\n\nfunc Add(a,b int) int {\nreturn a+b\n}\n"

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckFileNothingChanged(t *testing.T) {
	path := writeSource(t, "sample.go", formattedSource)

	result, err := CheckFile(path, "sample.go", formatter.Mode{Style: schema.StableStyle})
	require.NoError(t, err)
	assert.Equal(t, schema.NothingChangedResult, result.Type())
	assert.Equal(t, formattedSource, result.Source())
}

func TestCheckFileReformatted(t *testing.T) {
	path := writeSource(t, "sample.go", unformattedSource)

	result, err := CheckFile(path, "sample.go", formatter.Mode{Style: schema.StableStyle})
	require.NoError(t, err)
	require.Equal(t, schema.ReformattedResult, result.Type())

	reformatted := result.(schema.Reformatted)
	assert.Equal(t, unformattedSource, reformatted.Src)
	assert.Equal(t, formattedSource, reformatted.Dst)
	additions, deletions := reformatted.LineChanges()
	assert.Positive(t, additions)
	assert.Positive(t, deletions)
}

func TestCheckFileFailed(t *testing.T) {
	path := writeSource(t, "broken.go", "package broken\n\nfunc (\n")

	result, err := CheckFile(path, "broken.go", formatter.Mode{Style: schema.StableStyle})
	require.NoError(t, err)
	require.Equal(t, schema.FailedResult, result.Type())

	failed := result.(schema.Failed)
	assert.Equal(t, "SyntaxError", failed.Error)
	assert.NotEmpty(t, failed.Message)
}

func TestCheckFileUnreadable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.go")

	_, err := CheckFile(missing, "gone.go", formatter.Mode{Style: schema.StableStyle})
	assert.Error(t, err)
}

func TestCheckFileIdempotent(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"clean", formattedSource},
		{"dirty", unformattedSource},
		{"broken", "func ("},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSource(t, "sample.go", tc.content)
			mode := formatter.Mode{Style: schema.StableStyle}

			first, err := CheckFile(path, "sample.go", mode)
			require.NoError(t, err)
			second, err := CheckFile(path, "sample.go", mode)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestCheckFileTestVariant(t *testing.T) {
	path := writeSource(t, "sample_test.go", formattedSource)

	// The variant flag changes the mode, not the outcome, for stable style.
	result, err := CheckFile(path, "sample_test.go", formatter.Mode{Style: schema.StableStyle})
	require.NoError(t, err)
	assert.Equal(t, schema.NothingChangedResult, result.Type())
}
