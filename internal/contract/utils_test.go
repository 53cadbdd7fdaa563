package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/fmtgauge/schema"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, "failed", GetPlainLabel(schema.FailedResult))
	assert.Equal(t, "reformatted", GetPlainLabel(schema.ReformattedResult))
	assert.Equal(t, "nothing-changed", GetPlainLabel(schema.NothingChangedResult))
}

func TestGetColorLabel(t *testing.T) {
	// Color output may be stripped in CI; the label text must survive.
	for result := range schema.ValidResultTypes {
		assert.Contains(t, GetColorLabel(result), string(result))
	}
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "a.go", TruncatePath("a.go", 20))

	// Width 3 or below has no room for the ellipsis, so paths pass through.
	assert.Equal(t, "internal/pkg/file.go", TruncatePath("internal/pkg/file.go", 3))

	long := "internal/deeply/nested/pkg/file.go"
	got := TruncatePath(long, 15)
	assert.Len(t, []rune(got), 15)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(long, strings.TrimPrefix(got, "...")))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func FuzzTruncatePath(f *testing.F) {
	f.Add("internal/pkg/file.go", 10)
	f.Add("", 0)
	f.Add("äöü/file.go", 5)
	f.Fuzz(func(t *testing.T, path string, maxWidth int) {
		got := TruncatePath(path, maxWidth)
		if maxWidth > 3 && len([]rune(got)) > maxWidth {
			t.Errorf("TruncatePath(%q, %d) = %q exceeds width", path, maxWidth, got)
		}
	})
}
