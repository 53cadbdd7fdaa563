package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/fmtgauge/schema"
)

func TestBuildConfigDefaults(t *testing.T) {
	cfg, err := BuildConfig(&ConfigRawInput{ResultsPathStr: "out.json"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "out.json", cfg.ResultsPath)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.RunLogBackend)
	assert.NotEmpty(t, cfg.CacheDir)
	assert.True(t, cfg.UseColors)
	assert.Empty(t, cfg.ForceStyle)
}

func TestBuildConfigSelections(t *testing.T) {
	raw := &ConfigRawInput{
		Select:     "Chi, testify",
		Exclude:    "LO",
		ForceStyle: "preview",
		Color:      "no",
	}
	cfg, err := BuildConfig(raw, []string{"--local", "example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"chi", "testify"}, cfg.Select)
	assert.Equal(t, []string{"lo"}, cfg.Exclude)
	assert.Equal(t, schema.PreviewStyle, cfg.ForceStyle)
	assert.False(t, cfg.UseColors)
	assert.Equal(t, []string{"--local", "example.com"}, cfg.ExtraArgs)
}

func TestBuildConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		raw  ConfigRawInput
	}{
		{"bad output mode", ConfigRawInput{Output: "xml"}},
		{"bad style", ConfigRawInput{ForceStyle: "fancy"}},
		{"bad backend", ConfigRawInput{RunLogBackend: "oracle"}},
		{"bad color", ConfigRawInput{Color: "maybe"}},
		{"too many workers", ConfigRawInput{Workers: MaxWorkers + 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildConfig(&tt.raw, nil)
			assert.Error(t, err)
		})
	}
}
