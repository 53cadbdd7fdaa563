package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/internal/iocache"
	"github.com/huangsam/fmtgauge/internal/outwriter"
	"github.com/huangsam/fmtgauge/schema"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	cacheDir := viper.GetString("cache-dir")
	if cacheDir == "" {
		cacheDir = contract.DefaultCacheDir()
	}
	cfg.CacheDir = cacheDir
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by analysis commands. This avoids config
// validation that only matters when running the formatter.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the deserialized-analysis cache (improves performance)",
	Long: `Manage the on-disk cache of deserialized analyses.

Loading a large analysis means parsing a lot of JSON; fmtgauge caches the
decoded form keyed by file identity and formatter version, so showing or
comparing the same analysis twice skips the parse entirely.

The cache holds at most a handful of entries and drops anything untouched
for a few days, so it never needs routine maintenance.

Subcommands:
  status - Show cache statistics
  clear  - Remove all cached entries

Examples:
  # Check cache status
  fmtgauge cache status

  # Clear the cache
  fmtgauge cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached analysis entries",
	Long: `Delete every entry from the analysis cache directory.

The cache repopulates itself on the next show or compare, so clearing is
always safe. Use it when disk space matters or when debugging a load
problem that might be a stale entry.

Examples:
  # Clear the default cache
  fmtgauge cache clear

  # Clear an explicitly located cache
  fmtgauge cache clear --cache-dir /tmp/fmtgauge-cache`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cache, err := iocache.NewFileCache(cfg.CacheDir)
		if err != nil {
			contract.LogFatal("Failed to open cache", err)
		}
		if err := cache.Clear(); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics",
	Long: `Show the analysis cache directory, entry count, total size and the
access-time range of its entries.

Use this to verify the cache is being hit and to see how much disk it
occupies.

Examples:
  # Check cache status
  fmtgauge cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cache, err := iocache.NewFileCache(cfg.CacheDir)
		if err != nil {
			contract.LogFatal("Failed to open cache", err)
		}
		status, err := cache.Status()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		if err := outwriter.PrintCacheStatus(cfg, status); err != nil {
			contract.LogFatal("Failed to print cache status", err)
		}
	},
}
