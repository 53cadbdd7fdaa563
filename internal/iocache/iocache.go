// Package iocache persists analyses to disk and caches deserialized
// analyses between invocations. The wire format is plain JSON, optionally
// wrapped in a single-entry zip; the cache is a small gob-encoded LRU
// directory keyed by source file identity and formatter version.
package iocache

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/internal/formatter"
	"github.com/huangsam/fmtgauge/schema"
)

// SaveAnalysis writes an analysis to path, zip-wrapping it when the path
// carries a .zip extension.
func SaveAnalysis(path string, analysis *schema.Analysis) error {
	data, err := encodeAnalysis(analysis)
	if err != nil {
		return err
	}
	if filepath.Ext(path) == ".zip" {
		return writeZip(path, data)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write analysis to %s: %w", path, err)
	}
	return nil
}

// LoadAnalysis reads an analysis from path, consulting cache first when one
// is provided. The bool reports whether the cache answered.
func LoadAnalysis(path string, cache contract.AnalysisCache) (*schema.Analysis, bool, error) {
	key, keyErr := CacheKey(path)
	if cache != nil && keyErr == nil {
		if analysis, ok := cache.Get(key); ok {
			return analysis, true, nil
		}
	}

	analysis, err := readAnalysis(path)
	if err != nil {
		return nil, false, err
	}
	if cache != nil && keyErr == nil {
		if err := cache.Put(key, analysis); err != nil {
			contract.LogWarn("could not cache analysis", err)
		}
	}
	return analysis, false, nil
}

// CacheKey derives the cache key for an analysis file from its resolved
// path, modification time, size and the formatter version. Any change to
// the file or toolchain yields a different key.
func CacheKey(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	identity := fmt.Sprintf("%s;%d;%d;%s", abs, info.ModTime().UnixNano(), info.Size(), formatter.Version())
	return fmt.Sprintf("%x", sha256.Sum256([]byte(identity))), nil
}
