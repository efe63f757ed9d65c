package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// pageEntry holds a cached page body with its creation timestamp.
type pageEntry struct {
	body      []byte
	createdAt time.Time
}

// pageCache is a small in-memory TTL cache of fetched pages. The staged
// strategy revisits overlapping URLs across stages; caching keeps those
// revisits off the network. It is safe for concurrent use.
type pageCache struct {
	mu         sync.RWMutex
	store      map[string]*pageEntry
	maxEntries int
	ttl        time.Duration
}

func newPageCache(maxEntries int, ttl time.Duration) *pageCache {
	return &pageCache{
		store:      make(map[string]*pageEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

func cacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

// get returns the cached body if present and still fresh. Expired entries
// are dropped on access.
func (c *pageCache) get(rawURL string) ([]byte, bool) {
	key := cacheKey(rawURL)

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Since(e.createdAt) > c.ttl {
		c.mu.Lock()
		delete(c.store, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.body, true
}

// set stores a page body. If the cache is at capacity, an arbitrary entry
// is evicted to make room.
func (c *pageCache) set(rawURL string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}
	c.store[cacheKey(rawURL)] = &pageEntry{body: body, createdAt: time.Now()}
}
