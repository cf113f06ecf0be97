package wordofday

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Cache is the injected local cache the provider consults before its store.
// Implementations hold at most one record, keyed by date: Get with any other
// date is a miss.
type Cache interface {
	Get(date string) (*Record, bool)
	Set(rec Record)
	Invalidate()
}

// MemoryCache is the in-process cache used per server instance.
type MemoryCache struct {
	mu  sync.RWMutex
	rec *Record
}

// NewMemoryCache returns an empty cache.
func NewMemoryCache() *MemoryCache { return &MemoryCache{} }

func (c *MemoryCache) Get(date string) (*Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.rec == nil || c.rec.Date != date {
		return nil, false
	}
	rec := *c.rec
	return &rec, true
}

func (c *MemoryCache) Set(rec Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec = &rec
}

func (c *MemoryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec = nil
}

// FileCache persists the cached record as a JSON file so a restarted server
// skips the network path for a date it already resolved. Corrupt or
// structurally invalid files are removed on read.
type FileCache struct {
	mu   sync.Mutex
	path string
}

// NewFileCache caches under the given file path, e.g. data/wordofday.json.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

func (c *FileCache) Get(date string) (*Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Printf("Failed to unmarshal cache file %s (corrupted), removing: %v", c.path, err)
		os.Remove(c.path)
		return nil, false
	}
	if rec.Word == "" || rec.Date == "" {
		log.Printf("Cache file %s has invalid structure, removing", c.path)
		os.Remove(c.path)
		return nil, false
	}
	if rec.Date != date {
		return nil, false
	}
	return &rec, true
}

func (c *FileCache) Set(rec Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dir := filepath.Dir(c.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Printf("Failed to create cache directory %s: %v", dir, err)
			return
		}
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		log.Printf("Failed to marshal word-of-day cache: %v", err)
		return
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		log.Printf("Failed to write cache file %s: %v", c.path, err)
	}
}

func (c *FileCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	os.Remove(c.path)
}
