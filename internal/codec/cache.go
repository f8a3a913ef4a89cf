package codec

import (
	"sync"

	"github.com/ironsheep/bitmap-search-mcp/internal/bitmap"
)

// Cache provides thread-safe caching of decoded bitmaps to avoid redundant
// disk reads when the same needle or haystack file is searched repeatedly.
//
// Bitmaps are keyed by the exact path string; relative and absolute paths
// to the same file produce separate entries. Cached bitmaps stay in memory
// until Evict or Clear is called.
type Cache struct {
	mu      sync.RWMutex
	bitmaps map[string]*bitmap.Bitmap
}

// NewCache creates an empty bitmap cache, ready for concurrent use.
func NewCache() *Cache {
	return &Cache{
		bitmaps: make(map[string]*bitmap.Bitmap),
	}
}

// Load returns the bitmap for path, decoding it from disk on the first
// request and serving the cached value afterwards. Cached bitmaps always
// use scale 1.0; callers needing a different scale should Load directly.
func (c *Cache) Load(path string) (*bitmap.Bitmap, error) {
	c.mu.RLock()
	if b, ok := c.bitmaps[path]; ok {
		c.mu.RUnlock()
		return b, nil
	}
	c.mu.RUnlock()

	b, err := Load(path, 1.0)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.bitmaps[path] = b
	c.mu.Unlock()

	return b, nil
}

// Evict removes the entry for path, if present.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.bitmaps, path)
	c.mu.Unlock()
}

// Clear removes every cached bitmap, freeing the associated memory.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.bitmaps = make(map[string]*bitmap.Bitmap)
	c.mu.Unlock()
}
