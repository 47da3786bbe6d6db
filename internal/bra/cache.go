package bra

import (
	"sync"

	"github.com/hazzler78/sd-motion-generator/internal/metrics"
)

type cacheKey struct {
	Year  int
	Facet string
}

// Cache memoizes extraction results per (year, facet). Entries never expire
// and are never evicted; the source page changes at most daily and the
// process is short-lived.
//
// There is no single-flight guarantee: concurrent callers missing the same
// key may each run compute. The page fetch is idempotent and cheap, so the
// duplicate work is acceptable; the lock only protects the map itself.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]CrimeStatistics
}

// NewCache creates an empty scrape cache. The cache is owned by whoever
// constructs it; there is no package-level instance.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]CrimeStatistics)}
}

// GetOrCompute returns the cached record for (year, facet) or runs compute
// and stores its result. Failed computes are not cached.
func (c *Cache) GetOrCompute(year int, facet string, compute func() (CrimeStatistics, error)) (CrimeStatistics, error) {
	key := cacheKey{Year: year, Facet: facet}

	c.mu.RLock()
	stats, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		metrics.ScrapeCacheHits.Inc()
		return stats, nil
	}

	metrics.ScrapeCacheMisses.Inc()
	stats, err := compute()
	if err != nil {
		return stats, err
	}

	c.mu.Lock()
	c.entries[key] = stats
	c.mu.Unlock()
	return stats, nil
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
