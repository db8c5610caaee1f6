package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"bookbot/internal/domain"
)

// QueryCache caches ranked search results keyed by the full argument tuple
// (index, query, filters, limit). Entries carry the generation of their
// index at compute time; any mutation of that index bumps the generation,
// so stale results are never served after a write.
type QueryCache struct {
	mu          sync.RWMutex
	entries     map[string]*cacheEntry
	order       []string
	maxSize     int
	ttl         time.Duration
	generations map[string]uint64
}

type cacheEntry struct {
	index     string
	results   []domain.Hit
	timestamp time.Time
	gen       uint64
}

// NewQueryCache creates a cache holding at most maxSize entries, evicting
// oldest-first. Non-positive maxSize defaults to 64, non-positive ttl to
// five minutes.
func NewQueryCache(maxSize int, ttl time.Duration) *QueryCache {
	if maxSize <= 0 {
		maxSize = 64
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QueryCache{
		entries:     make(map[string]*cacheEntry),
		order:       make([]string, 0, maxSize),
		maxSize:     maxSize,
		ttl:         ttl,
		generations: make(map[string]uint64),
	}
}

func cacheKey(index, query string, filters map[string]any, limit int) string {
	var sb strings.Builder
	sb.WriteString(index)
	sb.WriteByte(0)
	sb.WriteString(query)
	sb.WriteByte(0)
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s=%v;", k, filters[k])
	}
	fmt.Fprintf(&sb, "|%d", limit)
	hash := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(hash[:16])
}

// Get returns cached results for the argument tuple if present, fresh, and
// computed at the index's current generation.
func (c *QueryCache) Get(index, query string, filters map[string]any, limit int) ([]domain.Hit, bool) {
	key := cacheKey(index, query, filters, limit)

	c.mu.RLock()
	entry, exists := c.entries[key]
	currentGen := c.generations[index]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Since(entry.timestamp) > c.ttl || entry.gen != currentGen {
		c.mu.Lock()
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.mu.Unlock()
		return nil, false
	}

	return entry.results, true
}

// Put stores results for the argument tuple at the index's current
// generation.
func (c *QueryCache) Put(index, query string, filters map[string]any, limit int, results []domain.Hit) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(index, query, filters, limit)

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.maxSize {
			c.evictOldest()
		}
		c.order = append(c.order, key)
	}

	c.entries[key] = &cacheEntry{
		index:     index,
		results:   results,
		timestamp: time.Now(),
		gen:       c.generations[index],
	}
}

// Invalidate marks every cached entry of the index stale.
func (c *QueryCache) Invalidate(index string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[index]++
}

// Size returns the number of live entries, counting stale ones not yet
// evicted.
func (c *QueryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *QueryCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *QueryCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
