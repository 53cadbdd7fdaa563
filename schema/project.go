package schema

import (
	"runtime"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

// Project is one external repository tracked by name, URL, pinned revision
// and formatter arguments. Identity is Name; equality over all fields is
// what detects "same project, differently configured" between two runs.
type Project struct {
	Name            string   `json:"name" yaml:"name"`
	URL             string   `json:"url" yaml:"url"`
	CustomArguments []string `json:"custom_arguments" yaml:"custom_arguments"`
	GoRequires      string   `json:"go_requires,omitempty" yaml:"go_requires,omitempty"`
	Commit          string   `json:"commit,omitempty" yaml:"commit,omitempty"`
}

// Equal reports whether two projects match on every field.
func (p Project) Equal(other Project) bool {
	return p.Name == other.Name &&
		p.URL == other.URL &&
		slices.Equal(p.CustomArguments, other.CustomArguments) &&
		p.GoRequires == other.GoRequires &&
		p.Commit == other.Commit
}

// SupportedByRuntime reports whether the current Go runtime satisfies the
// project's GoRequires constraint. Only ">=MAJOR.MINOR" constraints are
// supported; an empty constraint always passes.
func (p Project) SupportedByRuntime() bool {
	return supportsRuntime(p.GoRequires, runtime.Version())
}

// supportsRuntime checks a ">=X.Y" constraint against a runtime version
// string such as "go1.25.1". Development toolchains without a parseable
// version are treated as supporting everything.
func supportsRuntime(constraint, runtimeVersion string) bool {
	if constraint == "" {
		return true
	}
	want := "v" + strings.TrimSpace(strings.TrimPrefix(constraint, ">="))
	have := "v" + strings.TrimPrefix(runtimeVersion, "go")
	if !semver.IsValid(have) {
		return true
	}
	if !semver.IsValid(want) {
		return false
	}
	return semver.Compare(have, want) >= 0
}
