package jellyfin

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"jellyterm/internal/domain"
	"jellyterm/internal/log"
)

func testCatalog() domain.Catalog {
	return domain.Catalog{
		"m1": {ID: "m1", Name: "A Movie", Type: domain.MediaTypeMovie, Year: 1999, RuntimeTicks: 7200 * domain.TicksPerSecond},
		"e1": {ID: "e1", Name: "Pilot", Type: domain.MediaTypeEpisode, SeriesID: "s1", SeriesName: "Show", SeasonNum: 1, EpisodeNum: 1},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	cache := NewCache(path, log.NullLogger())

	want := testCatalog()
	if err := cache.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok := cache.Load()
	if !ok {
		t.Fatal("Load reported cache absent after Save")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestCacheMissingIsAbsent(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "cache.json"), log.NullLogger())
	if _, ok := cache.Load(); ok {
		t.Fatal("Load reported a cache that does not exist")
	}
}

func TestCacheCorruptIsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt cache: %v", err)
	}

	cache := NewCache(path, log.NullLogger())
	if _, ok := cache.Load(); ok {
		t.Fatal("Load accepted a corrupt cache")
	}
}

func TestCacheDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	cache := NewCache(path, log.NullLogger())

	if err := cache.Save(testCatalog()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := cache.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("cache file still exists after Delete")
	}

	// Deleting an already-absent cache is fine
	if err := cache.Delete(); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestCacheSaveReplacesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	cache := NewCache(path, log.NullLogger())

	if err := cache.Save(testCatalog()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	replacement := domain.Catalog{"x": {ID: "x", Name: "Only Item"}}
	if err := cache.Save(replacement); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, ok := cache.Load()
	if !ok {
		t.Fatal("Load failed after rewrite")
	}
	if len(got) != 1 || got["x"].Name != "Only Item" {
		t.Errorf("rewrite did not replace document: %+v", got)
	}
}
