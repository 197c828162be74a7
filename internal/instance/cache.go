package instance

import "sync"

// Cache is the in-memory copy of the index.
// Every access holds the same mutex; reads and replacements are whole-index.
type Cache struct {
	mu  sync.Mutex
	idx Index
}

// NewCache returns a cache holding a copy of idx.
func NewCache(idx Index) *Cache {
	return &Cache{idx: idx.Clone()}
}

// Read returns a copy of the cached index.
func (c *Cache) Read() Index {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx.Clone()
}

// Replace swaps the cached index for a copy of idx.
func (c *Cache) Replace(idx Index) {
	idx = idx.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx = idx
}
