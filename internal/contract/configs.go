package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/fmtgauge/schema"
)

// Default values for configuration.
const (
	// DefaultWorkers bounds the checker pool. Formatting loads full file
	// contents and parse trees per worker, so the default stays small
	// instead of tracking core count.
	DefaultWorkers = 2

	// MaxWorkers caps user-supplied worker counts.
	MaxWorkers = 64

	// DefaultRunLogLimit is how many run log rows to show by default.
	DefaultRunLogLimit = 25
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a command invocation.
// This struct remains the "final, validated" config.
type Config struct {
	// Run surface.
	ResultsPath  string       // where the analysis is written
	WorkDir      string       // checkout root; empty means a temp dir per run
	Select       []string     // project allow-list (lower-cased)
	Exclude      []string     // project deny-list (lower-cased)
	ProjectsFile string       // YAML registry replacing the built-in list
	RepeatFrom   string       // prior analysis whose projects are reused
	ForceStyle   schema.Style // empty means no override
	ExtraArgs    []string     // pass-through formatter arguments
	Workers      int

	// Persistence.
	CacheDir string // injected analysis cache directory

	// Output.
	Output     schema.OutputMode
	OutputFile string
	Width      int // terminal width override (0 = auto-detect)
	UseColors  bool

	// Compare / show-failed surface.
	ShowDiff   bool
	ShowList   bool
	Check      bool
	CheckAllow []string // project:file pairs allowed to fail

	// Run log store.
	RunLogBackend schema.DatabaseBackend
	RunLogConnect string // please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	ResultsPathStr string
	AnalysisPaths  []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Workers       int    `mapstructure:"workers"`
	Output        string `mapstructure:"output"`
	OutputFile    string `mapstructure:"output-file"`
	Width         int    `mapstructure:"width"`
	Color         string `mapstructure:"color"`
	CacheDir      string `mapstructure:"cache-dir"`
	RunLogBackend string `mapstructure:"runlog-backend"`
	RunLogConnect string `mapstructure:"runlog-db-connect"`

	// --- Fields from runCmd.Flags() ---
	Select       string `mapstructure:"select"`
	Exclude      string `mapstructure:"exclude"`
	WorkDir      string `mapstructure:"work-dir"`
	ProjectsFile string `mapstructure:"projects-file"`
	RepeatFrom   string `mapstructure:"repeat-projects-from"`
	ForceStyle   string `mapstructure:"force-style"`

	// --- Fields from compareCmd and showFailedCmd ---
	Diff       bool   `mapstructure:"diff"`
	List       bool   `mapstructure:"list"`
	Check      bool   `mapstructure:"check"`
	CheckAllow string `mapstructure:"check-allow"`
}

// BuildConfig validates the raw input and produces the final Config.
func BuildConfig(raw *ConfigRawInput, extraArgs []string) (*Config, error) {
	workers := raw.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("workers %d exceeds the maximum of %d", workers, MaxWorkers)
	}

	output := schema.OutputMode(raw.Output)
	if output == "" {
		output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return nil, fmt.Errorf("invalid output mode %q; use text or json", raw.Output)
	}

	var forceStyle schema.Style
	if raw.ForceStyle != "" {
		forceStyle = schema.Style(raw.ForceStyle)
		if _, ok := schema.ValidStyles[forceStyle]; !ok {
			return nil, fmt.Errorf("invalid style %q; use stable or preview", raw.ForceStyle)
		}
	}

	backend := schema.DatabaseBackend(raw.RunLogBackend)
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidRunLogBackends[backend]; !ok {
		return nil, fmt.Errorf("invalid run log backend %q; use sqlite, mysql, postgresql or none", raw.RunLogBackend)
	}

	useColors := true
	if raw.Color != "" {
		parsed, err := ParseBoolString(raw.Color)
		if err != nil {
			return nil, fmt.Errorf("invalid color setting: %w", err)
		}
		useColors = parsed
	}

	cacheDir := raw.CacheDir
	if cacheDir == "" {
		cacheDir = DefaultCacheDir()
	}

	cfg := &Config{
		ResultsPath:   raw.ResultsPathStr,
		WorkDir:       raw.WorkDir,
		Select:        splitNames(raw.Select),
		Exclude:       splitNames(raw.Exclude),
		ProjectsFile:  raw.ProjectsFile,
		RepeatFrom:    raw.RepeatFrom,
		ForceStyle:    forceStyle,
		ExtraArgs:     extraArgs,
		Workers:       workers,
		CacheDir:      cacheDir,
		Output:        output,
		OutputFile:    raw.OutputFile,
		Width:         raw.Width,
		UseColors:     useColors,
		ShowDiff:      raw.Diff,
		ShowList:      raw.List,
		Check:         raw.Check,
		CheckAllow:    splitEntries(raw.CheckAllow),
		RunLogBackend: backend,
		RunLogConnect: raw.RunLogConnect,
	}
	return cfg, nil
}

// splitNames splits a comma-separated list into lower-cased names.
func splitNames(raw string) []string {
	if raw == "" {
		return nil
	}
	var names []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// splitEntries splits a comma-separated list keeping the original case;
// file paths in allow-list entries are case-sensitive.
func splitEntries(raw string) []string {
	if raw == "" {
		return nil
	}
	var entries []string
	for _, entry := range strings.Split(raw, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// DefaultCacheDir returns the per-user analysis cache directory.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".fmtgauge-cache"
	}
	return filepath.Join(base, "fmtgauge")
}

// DefaultRunLogDBPath returns the path to the SQLite DB file for the run log.
func DefaultRunLogDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".fmtgauge_runlog.db"
	}
	return filepath.Join(homeDir, ".fmtgauge_runlog.db")
}
