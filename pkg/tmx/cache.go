package tmx

import "sync"

// ResourceCache holds the canonical copy of every shared tileset and
// template, keyed by canonical path. Entries are created on the first
// resolution miss and never mutated afterwards, so handles may be shared
// freely across concurrently resolved maps.
type ResourceCache interface {
	Tileset(path string) (*Tileset, bool)
	InsertTileset(path string, ts *Tileset)
	Template(path string) (*Template, bool)
	InsertTemplate(path string, t *Template)
}

// MemoryCache is the default in-process ResourceCache.
type MemoryCache struct {
	mu        sync.RWMutex
	tilesets  map[string]*Tileset
	templates map[string]*Template

	// Stats
	hits   int
	misses int
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		tilesets:  make(map[string]*Tileset),
		templates: make(map[string]*Template),
	}
}

// Tileset retrieves a cached tileset.
func (c *MemoryCache) Tileset(path string) (*Tileset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ts, ok := c.tilesets[path]
	c.count(ok)
	return ts, ok
}

// InsertTileset stores a tileset under its canonical path.
func (c *MemoryCache) InsertTileset(path string, ts *Tileset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tilesets[path] = ts
}

// Template retrieves a cached template.
func (c *MemoryCache) Template(path string) (*Template, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.templates[path]
	c.count(ok)
	return t, ok
}

// InsertTemplate stores a template under its canonical path.
func (c *MemoryCache) InsertTemplate(path string, t *Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates[path] = t
}

func (c *MemoryCache) count(hit bool) {
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}

// Stats returns cache hit/miss counters.
func (c *MemoryCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Clear drops all cached resources.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tilesets = make(map[string]*Tileset)
	c.templates = make(map[string]*Template)
	c.hits = 0
	c.misses = 0
}
