package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/hanjarecall/internal/card"
)

func testCards() []card.Card {
	return []card.Card{
		{Hanja: "漢", Reading: "han", Meaning: "Chinese"},
		{Hanja: "字", Reading: "ja", Meaning: "character"},
	}
}

func TestLoadIndexAbsent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "cache"))

	idx := store.LoadIndex()
	if len(idx.Files) != 0 {
		t.Errorf("Expected empty index, got %d entries", len(idx.Files))
	}
}

func TestLoadIndexCorrupt(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "cache_index.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt index: %v", err)
	}

	idx := store.LoadIndex()
	if len(idx.Files) != 0 {
		t.Errorf("Corrupt index should load as empty, got %d entries", len(idx.Files))
	}
}

func TestSaveIndexRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	idx := Index{Files: []Entry{
		{Name: "level1", SourceType: SourceLocal, SourcePath: "/tmp/level1.xlsx", CacheFile: "level1_20240101_120000.json", CachedAt: "20240101_120000", Count: 2},
	}}

	if err := store.SaveIndex(idx); err != nil {
		t.Fatalf("SaveIndex failed: %v", err)
	}

	loaded := store.LoadIndex()
	if !reflect.DeepEqual(loaded, idx) {
		t.Errorf("Loaded index = %+v, want %+v", loaded, idx)
	}
}

func TestSaveIndexLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	if err := store.SaveIndex(Index{Files: []Entry{}}); err != nil {
		t.Fatalf("SaveIndex failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read cache dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("Temp file left behind: %s", e.Name())
		}
	}
}

func TestAddAndLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	cards := testCards()

	cacheFile, err := store.Add("Level 1 Hanja", SourceLocal, "/tmp/level1.xlsx", cards)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	loaded, err := store.Load(cacheFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, cards) {
		t.Errorf("Loaded cards = %v, want %v", loaded, cards)
	}
}

func TestAddSanitizesCacheFileName(t *testing.T) {
	store := NewStore(t.TempDir())

	cacheFile, err := store.Add("my sheet: v2!", SourceGoogle, "https://example.com", testCards())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if !strings.HasPrefix(cacheFile, "my_sheet__v2_") {
		t.Errorf("Cache file name not sanitized: %s", cacheFile)
	}
	if !strings.HasSuffix(cacheFile, ".json") {
		t.Errorf("Cache file missing .json suffix: %s", cacheFile)
	}
}

func TestAddRecordsEntryMetadata(t *testing.T) {
	store := NewStore(t.TempDir())
	cards := testCards()

	cacheFile, err := store.Add("level1", SourceLocal, "/tmp/level1.xlsx", cards)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	idx := store.LoadIndex()
	if len(idx.Files) != 1 {
		t.Fatalf("Expected 1 index entry, got %d", len(idx.Files))
	}

	entry := idx.Files[0]
	if entry.Name != "level1" {
		t.Errorf("Name = %s, want level1", entry.Name)
	}
	if entry.SourceType != SourceLocal {
		t.Errorf("SourceType = %s, want %s", entry.SourceType, SourceLocal)
	}
	if entry.SourcePath != "/tmp/level1.xlsx" {
		t.Errorf("SourcePath = %s, want /tmp/level1.xlsx", entry.SourcePath)
	}
	if entry.CacheFile != cacheFile {
		t.Errorf("CacheFile = %s, want %s", entry.CacheFile, cacheFile)
	}
	if entry.Count != len(cards) {
		t.Errorf("Count = %d, want %d", entry.Count, len(cards))
	}
}

func TestAddDuplicateSourceReplacesEntry(t *testing.T) {
	store := NewStore(t.TempDir())

	if _, err := store.Add("first", SourceLocal, "/tmp/a.xlsx", testCards()); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Add("other", SourceLocal, "/tmp/b.xlsx", testCards()); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Add("first again", SourceLocal, "/tmp/a.xlsx", testCards()); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	idx := store.LoadIndex()
	if len(idx.Files) != 2 {
		t.Fatalf("Expected 2 entries after duplicate add, got %d", len(idx.Files))
	}

	// Re-added source moves to the front
	if idx.Files[0].SourcePath != "/tmp/a.xlsx" {
		t.Errorf("Front entry source = %s, want /tmp/a.xlsx", idx.Files[0].SourcePath)
	}
	if idx.Files[0].Name != "first again" {
		t.Errorf("Front entry name = %s, want 'first again'", idx.Files[0].Name)
	}
	if idx.Files[1].SourcePath != "/tmp/b.xlsx" {
		t.Errorf("Second entry source = %s, want /tmp/b.xlsx", idx.Files[1].SourcePath)
	}
}

func TestAddEvictsBeyondCap(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	cacheFiles := make([]string, 0, MaxEntries+5)
	for i := 0; i < MaxEntries+5; i++ {
		cacheFile, err := store.Add(
			fmt.Sprintf("set%02d", i),
			SourceLocal,
			fmt.Sprintf("/tmp/set%02d.xlsx", i),
			testCards(),
		)
		if err != nil {
			t.Fatalf("Add %d failed: %v", i, err)
		}
		cacheFiles = append(cacheFiles, cacheFile)
	}

	idx := store.LoadIndex()
	if len(idx.Files) != MaxEntries {
		t.Fatalf("Expected index capped at %d entries, got %d", MaxEntries, len(idx.Files))
	}

	// Newest first: the last added dataset is at position 0
	if idx.Files[0].Name != fmt.Sprintf("set%02d", MaxEntries+4) {
		t.Errorf("Front entry = %s, want set%02d", idx.Files[0].Name, MaxEntries+4)
	}

	// Evicted backing files no longer exist
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, cacheFiles[i])
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Evicted cache file still exists: %s", cacheFiles[i])
		}
	}

	// Surviving backing files still exist
	for i := 5; i < MaxEntries+5; i++ {
		path := filepath.Join(dir, cacheFiles[i])
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Surviving cache file missing: %s", cacheFiles[i])
		}
	}
}

func TestLoadMissingReturnsErrNotCached(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load("nonexistent_20240101_120000.json")
	if !errors.Is(err, ErrNotCached) {
		t.Errorf("Expected ErrNotCached, got %v", err)
	}
}

func TestLoadCorruptDatasetReturnsError(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{oops"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt dataset: %v", err)
	}

	_, err := store.Load("bad.json")
	if err == nil {
		t.Fatal("Expected error for corrupt dataset")
	}
	if errors.Is(err, ErrNotCached) {
		t.Error("Corrupt dataset should not report ErrNotCached")
	}
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	cacheFile, err := store.Add("level1", SourceLocal, "/tmp/level1.xlsx", testCards())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if len(store.LoadIndex().Files) != 0 {
		t.Error("Index not empty after Clear")
	}
	if _, err := os.Stat(filepath.Join(dir, cacheFile)); !os.IsNotExist(err) {
		t.Error("Cache file still exists after Clear")
	}
}
