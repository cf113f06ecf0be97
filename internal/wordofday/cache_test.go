package wordofday

import (
	"os"
	"path/filepath"
	"testing"
)

// TestMemoryCache checks set, date-keyed get and invalidate.
func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()

	if _, ok := c.Get("2026-03-01"); ok {
		t.Error("empty cache reported a hit")
	}

	c.Set(Record{Word: "chain", Date: "2026-03-01"})
	rec, ok := c.Get("2026-03-01")
	if !ok || rec.Word != "chain" {
		t.Errorf("Get = %+v, %v", rec, ok)
	}
	if _, ok := c.Get("2026-03-02"); ok {
		t.Error("stale date reported a hit")
	}

	c.Invalidate()
	if _, ok := c.Get("2026-03-01"); ok {
		t.Error("invalidated cache reported a hit")
	}
}

// TestFileCacheRoundTrip checks a record survives a write and read.
func TestFileCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "wordofday.json")
	c := NewFileCache(path)

	c.Set(Record{Word: "chain", BonusWord: "link", Definition: "d", Date: "2026-03-01"})

	rec, ok := c.Get("2026-03-01")
	if !ok {
		t.Fatal("expected a cache hit after Set")
	}
	if rec.Word != "chain" || rec.BonusWord != "link" {
		t.Errorf("record = %+v", rec)
	}
}

// TestFileCacheDateMismatch checks a record for another date is a miss but
// the file survives.
func TestFileCacheDateMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordofday.json")
	c := NewFileCache(path)
	c.Set(Record{Word: "chain", Date: "2026-03-01"})

	if _, ok := c.Get("2026-03-02"); ok {
		t.Error("mismatched date reported a hit")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("mismatched date removed the cache file: %v", err)
	}
}

// TestFileCacheCorruptFileRemoved checks unreadable JSON is deleted on read.
func TestFileCacheCorruptFileRemoved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordofday.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewFileCache(path)
	if _, ok := c.Get("2026-03-01"); ok {
		t.Error("corrupt file reported a hit")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("corrupt cache file was not removed, stat err = %v", err)
	}
}

// TestFileCacheInvalidStructureRemoved checks valid JSON missing required
// fields is also deleted.
func TestFileCacheInvalidStructureRemoved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordofday.json")
	if err := os.WriteFile(path, []byte(`{"definition":"only"}`), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewFileCache(path)
	if _, ok := c.Get("2026-03-01"); ok {
		t.Error("structurally invalid file reported a hit")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("invalid cache file was not removed, stat err = %v", err)
	}
}

// TestFileCacheInvalidate checks Invalidate removes the file.
func TestFileCacheInvalidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordofday.json")
	c := NewFileCache(path)
	c.Set(Record{Word: "chain", Date: "2026-03-01"})

	c.Invalidate()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Invalidate left the file behind, stat err = %v", err)
	}
}

// TestFileCacheMissingFile checks a never-written path is a plain miss.
func TestFileCacheMissingFile(t *testing.T) {
	c := NewFileCache(filepath.Join(t.TempDir(), "absent.json"))
	if _, ok := c.Get("2026-03-01"); ok {
		t.Error("missing file reported a hit")
	}
}
