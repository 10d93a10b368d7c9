package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/snonux/hanjarecall/internal"
	"codeberg.org/snonux/hanjarecall/internal/card"
)

// MaxEntries caps the index; older datasets are evicted beyond it
const MaxEntries = 20

const indexFileName = "cache_index.json"

// Source types recorded in the index
const (
	SourceLocal  = "local"
	SourceGoogle = "google"
)

// ErrNotCached is returned when a cache file referenced by the index no
// longer exists, so callers can prompt the user to reload the source.
var ErrNotCached = errors.New("dataset not cached")

// Entry describes one previously loaded dataset
type Entry struct {
	Name       string `json:"name"`
	SourceType string `json:"source_type"`
	SourcePath string `json:"source_path"`
	CacheFile  string `json:"cache_file"`
	CachedAt   string `json:"cached_at"`
	Count      int    `json:"count"`
}

// Index is the ordered list of cached datasets, most recent first
type Index struct {
	Files []Entry `json:"files"`
}

// Store persists parsed datasets and their index in a cache directory
type Store struct {
	dir string
}

// DefaultDir returns the per-user cache directory
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hanjarecall"
	}
	return filepath.Join(home, ".hanjarecall")
}

// NewStore creates a store rooted at dir. The directory is created
// lazily on the first write.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir}
}

// Dir returns the cache directory path
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) indexPath() string {
	return filepath.Join(s.dir, indexFileName)
}

func (s *Store) ensureDir() error {
	return os.MkdirAll(s.dir, 0755)
}

// LoadIndex reads the persisted index. An absent or unparsable index is
// treated as empty, never as an error.
func (s *Store) LoadIndex() Index {
	data, err := os.ReadFile(s.indexPath())
	if err != nil {
		return Index{Files: []Entry{}}
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return Index{Files: []Entry{}}
	}
	if idx.Files == nil {
		idx.Files = []Entry{}
	}
	return idx
}

// SaveIndex overwrites the persisted index. The index is written to a
// temp file first and renamed into place so a crash mid-write cannot
// corrupt the previous valid index.
func (s *Store) SaveIndex(idx Index) error {
	if err := s.ensureDir(); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache index: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, indexFileName+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp index file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write cache index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp index file: %w", err)
	}

	if err := os.Rename(tmpPath, s.indexPath()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace cache index: %w", err)
	}
	return nil
}

// Add persists cards as a new dataset and registers it in the index.
// A prior entry with the same source path is replaced and the new entry
// moves to the front. When the index exceeds MaxEntries the oldest
// entries are evicted and their backing files deleted. Returns the
// cache file name of the new dataset.
func (s *Store) Add(name, sourceType, sourcePath string, cards []card.Card) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	cacheFile := fmt.Sprintf("%s_%s.json", internal.SanitizeName(name), timestamp)

	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, cacheFile), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write dataset: %w", err)
	}

	idx := s.LoadIndex()

	// Drop any prior entry for the same source
	kept := idx.Files[:0]
	for _, e := range idx.Files {
		if e.SourcePath != sourcePath {
			kept = append(kept, e)
		}
	}
	idx.Files = kept

	idx.Files = append([]Entry{{
		Name:       name,
		SourceType: sourceType,
		SourcePath: sourcePath,
		CacheFile:  cacheFile,
		CachedAt:   timestamp,
		Count:      len(cards),
	}}, idx.Files...)

	// Evict entries past the cap and delete their backing files
	if len(idx.Files) > MaxEntries {
		evicted := idx.Files[MaxEntries:]
		idx.Files = idx.Files[:MaxEntries]
		for _, old := range evicted {
			s.removeFile(old.CacheFile)
		}
	}

	if err := s.SaveIndex(idx); err != nil {
		return "", err
	}
	return cacheFile, nil
}

// Load reads the cards of a cached dataset. A missing cache file yields
// ErrNotCached so the caller can offer a reload instead of failing hard.
func (s *Store) Load(cacheFile string) ([]card.Card, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, cacheFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotCached
		}
		return nil, fmt.Errorf("failed to read cached dataset: %w", err)
	}

	var cards []card.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode cached dataset: %w", err)
	}
	return cards, nil
}

// Clear removes all cached datasets and the index
func (s *Store) Clear() error {
	idx := s.LoadIndex()
	for _, e := range idx.Files {
		s.removeFile(e.CacheFile)
	}

	if err := os.Remove(s.indexPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache index: %w", err)
	}
	return nil
}

// removeFile deletes a backing file. A failed delete is reported but
// does not block eviction; the index entry is dropped regardless.
func (s *Store) removeFile(cacheFile string) {
	path := filepath.Join(s.dir, cacheFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to remove cache file %s: %v\n", path, err)
	}
}
