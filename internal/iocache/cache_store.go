package iocache

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/schema"
)

// Cache sizing and retention.
const (
	// MaxEntries bounds the cache directory; analyses are large and only a
	// handful are ever compared against each other.
	MaxEntries = 5

	// MaxEntryAge drops entries nobody has touched in five days.
	MaxEntryAge = 5 * 24 * time.Hour

	entryExt = ".gob"
)

// FileCache is a disk-backed analysis cache. The directory is always
// injected so tests can point it at a throwaway location.
type FileCache struct {
	dir string
}

// Compile-time check for interface conformance.
var _ contract.AnalysisCache = (*FileCache)(nil)

// NewFileCache opens (and if needed creates) a cache directory.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &FileCache{dir: dir}, nil
}

// Get returns the cached analysis for key. A corrupt entry is deleted and
// reported as a miss; hits refresh the entry's access time for LRU order.
func (c *FileCache) Get(key string) (*schema.Analysis, bool) {
	path := c.entryPath(key)
	file, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	var analysis schema.Analysis
	decodeErr := gob.NewDecoder(file).Decode(&analysis)
	_ = file.Close()
	if decodeErr != nil {
		_ = os.Remove(path)
		return nil, false
	}
	now := time.Now()
	_ = os.Chtimes(path, now, now)
	return &analysis, true
}

// Put stores an analysis under key, evicting stale entries first so the
// directory never exceeds MaxEntries. The write lands via rename so a
// crashed run cannot leave a torn entry behind.
func (c *FileCache) Put(key string, analysis *schema.Analysis) error {
	if err := c.evict(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache entry: %w", err)
	}
	if err := gob.NewEncoder(tmp).Encode(analysis); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.entryPath(key))
}

// Clear removes every cache entry.
func (c *FileCache) Clear() error {
	entries, err := c.listEntries()
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.Remove(entry.path); err != nil {
			return err
		}
	}
	return nil
}

// Status reports cache size and access-time bounds.
func (c *FileCache) Status() (schema.CacheStatus, error) {
	entries, err := c.listEntries()
	if err != nil {
		return schema.CacheStatus{}, err
	}
	status := schema.CacheStatus{Dir: c.dir, TotalEntries: len(entries)}
	for i, entry := range entries {
		status.TotalBytes += entry.size
		if i == 0 || entry.accessed.Before(status.OldestAccess) {
			status.OldestAccess = entry.accessed
		}
		if i == 0 || entry.accessed.After(status.NewestAccess) {
			status.NewestAccess = entry.accessed
		}
	}
	return status, nil
}

type cacheEntry struct {
	path     string
	accessed time.Time
	size     int64
}

func (c *FileCache) entryPath(key string) string {
	return filepath.Join(c.dir, key+entryExt)
}

func (c *FileCache) listEntries() ([]cacheEntry, error) {
	dirEntries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory %s: %w", c.dir, err)
	}
	var entries []cacheEntry
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || filepath.Ext(dirEntry.Name()) != entryExt {
			continue
		}
		info, err := dirEntry.Info()
		if err != nil {
			continue
		}
		entries = append(entries, cacheEntry{
			path:     filepath.Join(c.dir, dirEntry.Name()),
			accessed: info.ModTime(),
			size:     info.Size(),
		})
	}
	return entries, nil
}

// evict drops least-recently-accessed entries until at most MaxEntries-1
// remain, then drops whatever exceeds the age cutoff. It runs lazily on
// every write; there is no background sweeper.
func (c *FileCache) evict() error {
	entries, err := c.listEntries()
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].accessed.Before(entries[j].accessed)
	})

	for len(entries) > MaxEntries-1 {
		if err := os.Remove(entries[0].path); err != nil && !os.IsNotExist(err) {
			return err
		}
		entries = entries[1:]
	}
	cutoff := time.Now().Add(-MaxEntryAge)
	for _, entry := range entries {
		if entry.accessed.Before(cutoff) {
			if err := os.Remove(entry.path); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
	}
	return nil
}
