package schema

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() ProjectResults {
	return ProjectResults{
		"a.go":      NothingChanged{Src: "package a\n"},
		"b.go":      NewReformatted("b = 'x'\n", "b = \"x\"\n"),
		"sub/c.go":  Failed{Src: "var (", Error: "ParseError", Message: "expected declaration"},
		"zz/top.go": NothingChanged{Src: "package zz\n"},
	}
}

func sampleAnalysis() *Analysis {
	return &Analysis{
		Projects: map[string]Project{
			"chi": {Name: "chi", URL: "https://github.com/go-chi/chi", CustomArguments: []string{}, Commit: "abc123"},
		},
		Results: map[string]ProjectResults{
			"chi": sampleResults(),
		},
		Metadata: map[string]any{
			MetaFormatterVersion: "go1.25.0",
			MetaFormatterArgs:    []any{},
			MetaCreatedAt:        "2026-08-24T12:00:00Z",
			MetaDataFormat:       float64(CurrentDataFormat),
		},
	}
}

func TestOverallRollup(t *testing.T) {
	tests := []struct {
		name    string
		results ProjectResults
		want    ResultType
	}{
		{
			name:    "any failure wins",
			results: sampleResults(),
			want:    FailedResult,
		},
		{
			name: "reformatted beats nothing-changed",
			results: ProjectResults{
				"a.go": NothingChanged{Src: "package a\n"},
				"b.go": NewReformatted("b\n", "c\n"),
			},
			want: ReformattedResult,
		},
		{
			name: "all clean",
			results: ProjectResults{
				"a.go": NothingChanged{Src: "package a\n"},
			},
			want: NothingChangedResult,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.results.Overall()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverallRollupEmpty(t *testing.T) {
	// An empty collection is an invariant violation, not nothing-changed.
	_, err := ProjectResults{}.Overall()
	require.Error(t, err)
}

func TestFilterResults(t *testing.T) {
	results := sampleResults()

	clean := FilterResults(results, NothingChangedResult)
	assert.Equal(t, []string{"a.go", "zz/top.go"}, clean.SortedPaths())

	failed := FilterResults(results, FailedResult)
	assert.Len(t, failed, 1)
	assert.Contains(t, failed, "sub/c.go")
}

func TestProjectResultsAggregates(t *testing.T) {
	results := sampleResults()
	assert.Equal(t, 4, results.LineCount())

	additions, deletions := results.LineChanges()
	assert.Equal(t, 1, additions)
	assert.Equal(t, 1, deletions)
}

func TestAnalysisRoundTrip(t *testing.T) {
	original := sampleAnalysis()
	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Analysis
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.Projects, decoded.Projects)
	assert.Equal(t, original.Results, decoded.Results)
	assert.Equal(t, original.FormatterVersion(), decoded.FormatterVersion())

	format, ok := decoded.DataFormat()
	require.True(t, ok)
	assert.InDelta(t, float64(CurrentDataFormat), format, 0.001)
}

func TestAnalysisValidate(t *testing.T) {
	analysis := sampleAnalysis()
	require.NoError(t, analysis.Validate())

	analysis.Results["ghost"] = ProjectResults{}
	assert.Error(t, analysis.Validate())
}

func TestAnalysisMatchesSchema(t *testing.T) {
	sch, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(AnalysisSchema)))
	require.NoError(t, err)
	compiler := jsonschema.NewCompiler()
	require.NoError(t, compiler.AddResource("analysis.schema.json", sch))
	compiled, err := compiler.Compile("analysis.schema.json")
	require.NoError(t, err)

	data, err := json.Marshal(sampleAnalysis())
	require.NoError(t, err)
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	require.NoError(t, err)
	assert.NoError(t, compiled.Validate(inst))
}
