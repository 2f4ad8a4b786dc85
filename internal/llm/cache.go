package llm

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// cacheEntry holds one cached extraction outcome. A nil result is a valid
// cached value: it records that the message was not a transaction.
type cacheEntry struct {
	expiry time.Time
	result *model.ExtractedTransaction
}

// extractionCache provides thread-safe caching for extraction results so
// that redelivered message bodies do not trigger repeat API calls.
type extractionCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// newExtractionCache creates a new cache with the specified TTL.
func newExtractionCache(ttl time.Duration) *extractionCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	cache := &extractionCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// cacheKey derives a stable key from the message body.
func cacheKey(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

// get retrieves a result from the cache if it exists and hasn't expired.
func (c *extractionCache) get(key string) (*model.ExtractedTransaction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.expiry) {
		return nil, false
	}

	return entry.result, true
}

// set stores a result in the cache.
func (c *extractionCache) set(key string, result *model.ExtractedTransaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		result: result,
		expiry: time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *extractionCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// stop shuts down the cleanup goroutine.
func (c *extractionCache) stop() {
	close(c.stopCh)
}
