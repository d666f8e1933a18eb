package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"

	"github.com/golang/groupcache/lru"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes Evaluate. Evaluation is pure, so a report is fully
// determined by its inputs and can be reused. Safe for concurrent use.
type Cache struct {
	mu     sync.Mutex
	lru    *lru.Cache
	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats reports how often the cache avoided an evaluation.
type CacheStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// NewCache creates a cache holding at most size reports. A size of zero
// or less disables storage; Evaluate then always recomputes.
func NewCache(size int) *Cache {
	c := &Cache{}
	if size > 0 {
		c.lru = lru.New(size)
	}
	return c
}

// Evaluate returns the cached report for the inputs or computes it.
// Concurrent misses for the same inputs share one computation.
// Every call gets its own copy of the report.
func (c *Cache) Evaluate(scenario, response string) (Report, error) {
	if c == nil || c.lru == nil {
		return Evaluate(scenario, response)
	}

	key := cacheKey(scenario, response)
	if r, ok := c.get(key); ok {
		c.hits.Add(1)
		return r.Clone(), nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(key, func() (any, error) {
		r, err := Evaluate(scenario, response)
		if err != nil {
			return nil, err
		}
		c.put(key, r)
		return r, nil
	})
	if err != nil {
		return Report{}, err
	}
	return v.(Report).Clone(), nil
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	s := CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
	if c.lru != nil {
		c.mu.Lock()
		s.Entries = c.lru.Len()
		c.mu.Unlock()
	}
	return s
}

func (c *Cache) get(key string) (Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(key)
	if !ok {
		return Report{}, false
	}
	return v.(Report), true
}

func (c *Cache) put(key string, r Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, r)
}

// cacheKey hashes both texts with a separator so ("ab", "c") and
// ("a", "bc") cannot collide.
func cacheKey(scenario, response string) string {
	h := sha256.New()
	h.Write([]byte(scenario))
	h.Write([]byte{0})
	h.Write([]byte(response))
	return hex.EncodeToString(h.Sum(nil))
}
