package formatter

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/huangsam/fmtgauge/schema"
)

// tempRunPattern matches the randomized working directories created for a
// run (os.MkdirTemp with the fmtgauge- prefix).
var tempRunPattern = regexp.MustCompile(`fmtgauge-\d+`)

// defaultExcludes are path patterns never considered in-scope, matching
// what the ecosystem's formatters skip by default.
var defaultExcludes = []string{"vendor/", "testdata/", ".git/"}

// Resolution is the outcome of resolving one project checkout: the sorted
// in-scope file list and the formatting mode to apply.
type Resolution struct {
	Files []string
	Mode  Mode
}

// projectOptions are the formatter arguments a project may carry.
type projectOptions struct {
	excludes        []string
	extendExcludes  []string
	preview         bool
	localPrefix     string
	requiredVersion string
}

// parseArguments parses formatter arguments with all parser output
// suppressed; callers get errors, never stderr noise.
func parseArguments(args []string) (*projectOptions, error) {
	opts := &projectOptions{}
	flags := flag.NewFlagSet("formatter", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var exclude, extendExclude string
	flags.StringVar(&exclude, "exclude", "", "replace the default exclude patterns (comma-separated)")
	flags.StringVar(&extendExclude, "extend-exclude", "", "add exclude patterns (comma-separated)")
	flags.BoolVar(&opts.preview, "preview", false, "enable the preview style")
	flags.StringVar(&opts.localPrefix, "local", "", "group imports with this prefix separately")
	flags.StringVar(&opts.requiredVersion, "required-version", "", "require this exact formatter version")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("invalid formatter arguments %v: %w", args, err)
	}
	if extra := flags.Args(); len(extra) > 0 {
		return nil, fmt.Errorf("unexpected positional formatter arguments: %v", extra)
	}
	if exclude != "" {
		opts.excludes = splitPatterns(exclude)
	}
	if extendExclude != "" {
		opts.extendExcludes = splitPatterns(extendExclude)
	}
	return opts, nil
}

func splitPatterns(raw string) []string {
	var patterns []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// CheckArguments validates pass-through formatter arguments up front so a
// long run cannot die hours in on a typo.
func CheckArguments(args []string) error {
	_, err := parseArguments(args)
	return err
}

// ResolveProject determines the in-scope files and formatting mode for a
// prepared checkout. The project's own arguments are combined with the
// pass-through extraArgs, then force overrides the style when set. A
// project that resolves to zero files is misconfigured and cannot be
// analyzed.
func ResolveProject(project schema.Project, path string, extraArgs []string, force schema.Style) (*Resolution, error) {
	combined := append(append([]string{}, project.CustomArguments...), extraArgs...)
	opts, err := parseArguments(combined)
	if err != nil {
		return nil, fmt.Errorf("project %q: %w", project.Name, err)
	}

	if opts.requiredVersion != "" && opts.requiredVersion != Version() {
		return nil, fmt.Errorf(
			"project %q requires formatter version %s but %s is running; install the matching toolchain",
			project.Name, opts.requiredVersion, Version())
	}

	excludes := opts.excludes
	if excludes == nil {
		excludes = defaultExcludes
	}
	excludes = append(append([]string{}, excludes...), opts.extendExcludes...)

	files, err := discoverFiles(path, excludes)
	if err != nil {
		return nil, fmt.Errorf("project %q: %w", project.Name, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("project %q has no files to check; fix its registry entry or excludes", project.Name)
	}

	mode := Mode{
		Style:           schema.StableStyle,
		LocalPrefix:     opts.localPrefix,
		RequiredVersion: opts.requiredVersion,
	}
	if opts.preview {
		mode.Style = schema.PreviewStyle
	}
	if force != "" {
		mode.Style = force
	}
	return &Resolution{Files: files, Mode: mode}, nil
}

// discoverFiles walks a checkout and returns the sorted, slash-separated
// relative paths of all in-scope Go files.
func discoverFiles(root string, excludes []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if entry.IsDir() {
			if rel != "." && excluded(rel+"/", excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(rel, ".go") || excluded(rel, excludes) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk checkout at %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// excluded reports whether a slash-separated relative path matches any
// exclude pattern. Patterns ending in '/' are prefix matches, patterns
// starting with '.' are suffix matches, glob patterns match the path or
// its base name.
func excluded(rel string, excludes []string) bool {
	for _, pattern := range excludes {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if strings.ContainsAny(pattern, "*?[") {
			if ok, err := filepath.Match(pattern, rel); err == nil && ok {
				return true
			}
			if ok, err := filepath.Match(pattern, filepath.Base(rel)); err == nil && ok {
				return true
			}
			continue
		}
		switch {
		case strings.HasSuffix(pattern, "/"):
			if strings.HasPrefix(rel, pattern) || strings.Contains(rel, "/"+pattern) {
				return true
			}
		case strings.HasPrefix(pattern, "."):
			if strings.HasSuffix(rel, pattern) {
				return true
			}
		case strings.Contains(rel, pattern):
			return true
		}
	}
	return false
}

// ApplyVariant returns the mode adjusted for one file: test sources are the
// secondary source type and carry their own mode variant.
func ApplyVariant(mode Mode, file string) Mode {
	if strings.HasSuffix(file, "_test.go") {
		mode.TestVariant = true
	}
	return mode
}

// ScrubLog normalizes randomized temporary paths in diagnostic transcripts
// so equal failures produce equal logs across runs and hosts.
func ScrubLog(log string) string {
	scrubbed := strings.ReplaceAll(log, os.TempDir(), "/tmp")
	return tempRunPattern.ReplaceAllString(scrubbed, "fmtgauge-run")
}
