package outwriter

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/schema"
)

func TestGetMaxTablePathWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{
			name:     "wide override caps at maximum",
			width:    200,
			expected: 70,
		},
		{
			name:     "narrow override floors at minimum",
			width:    50,
			expected: 15,
		},
		{
			name:     "mid override passes through",
			width:    100,
			expected: 55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.expected, getMaxTablePathWidth(cfg))
		})
	}
}

func TestWriteJSONKeepsAngleBrackets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]string{"diff": "-a < b\n+a > b"}))

	// Diff content must survive untouched for downstream tooling.
	assert.Contains(t, buf.String(), "a < b")
	assert.NotContains(t, buf.String(), "\\u003c")

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "-a < b\n+a > b", decoded["diff"])
}

func TestWriteWithFileWritesDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("payload\n"))
		return err
	}, "Wrote payload")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload\n", string(content))
}

func TestWriteComparisonText(t *testing.T) {
	cfg := &contract.Config{Output: schema.TextOut, ShowList: true}

	t.Run("nothing changed", func(t *testing.T) {
		var buf bytes.Buffer
		result := &schema.ComparisonResult{Shared: []string{"chi", "mux"}}
		require.NoError(t, writeComparisonText(&buf, cfg, result))
		assert.Contains(t, buf.String(), "Nothing-changed. 2 projects compared.")
	})

	t.Run("differing with list", func(t *testing.T) {
		var buf bytes.Buffer
		result := &schema.ComparisonResult{
			Shared:     []string{"chi"},
			Mismatched: []string{"mux"},
			Differing: []schema.ProjectDifference{
				{
					Name:  "chi",
					Files: []schema.FileDifference{{File: "mw.go", Diff: "--- a/mw.go\n"}},
				},
			},
			Additions: 3,
			Deletions: 1,
		}
		require.NoError(t, writeComparisonText(&buf, cfg, result))
		out := buf.String()
		assert.Contains(t, out, "Ignoring mux: configured differently")
		assert.Contains(t, out, "chi: 1 files differ")
		assert.Contains(t, out, "  mw.go")
		assert.Contains(t, out, "1 projects & 1 files differ. (+3/-1 lines)")
	})
}

func TestPrintShowFailedText(t *testing.T) {
	analysis := &schema.Analysis{
		Projects: map[string]schema.Project{
			"chi": {Name: "chi", URL: "https://github.com/go-chi/chi"},
		},
		Results: map[string]schema.ProjectResults{
			"chi": {
				"ok.go":  schema.NothingChanged{Src: "package chi\n"},
				"bad.go": schema.Failed{Src: "package chi\nfunc (", Error: "SyntaxError", Message: "expected declaration"},
			},
		},
		Metadata: map[string]any{
			schema.MetaFormatterVersion: "go1.25.0",
			schema.MetaCreatedAt:        "2026-08-24T10:00:00Z",
			schema.MetaDataFormat:       float64(schema.CurrentDataFormat),
		},
	}

	path := filepath.Join(t.TempDir(), "failed.txt")
	cfg := &contract.Config{Output: schema.TextOut, OutputFile: path}
	require.NoError(t, PrintShowFailed(cfg, analysis))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(content)
	assert.Contains(t, out, "chi: 1 failed")
	assert.Contains(t, out, "  bad.go: [SyntaxError: expected declaration]")
	assert.Contains(t, out, "1 failed files total.")
	assert.NotContains(t, out, "ok.go")
}
