package leaderboard

import (
	"sync"
	"time"

	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/types"
)

// Cache holds the latest full final ranking behind a TTL. A single entry is
// enough: every query limit is served by slicing the full list, so one
// refresh primes them all.
type Cache struct {
	mu        sync.RWMutex
	response  *types.LeaderboardResponse
	expiresAt time.Time
	ttl       time.Duration
}

// NewCache creates a leaderboard cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

// Get returns the cached full ranking, if present and fresh.
func (c *Cache) Get() (*types.LeaderboardResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.response == nil || time.Now().After(c.expiresAt) {
		return nil, false
	}
	return c.response, true
}

// Set stores the full ranking.
func (c *Cache) Set(response *types.LeaderboardResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.response = response
	c.expiresAt = time.Now().Add(c.ttl)
}

// Invalidate drops the cached ranking. Called after a new run lands.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.response = nil
}

// Stats returns cache statistics for the health endpoint.
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached := 0
	entries := 0
	if c.response != nil && time.Now().Before(c.expiresAt) {
		cached = 1
		entries = len(c.response.Entries)
	}
	return map[string]interface{}{
		"cached":         cached,
		"cached_entries": entries,
		"ttl_seconds":    c.ttl.Seconds(),
	}
}
