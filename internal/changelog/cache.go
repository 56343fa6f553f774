package changelog

import (
	"context"
	"sync"
	"time"
)

// FetchFunc pulls the current commit feed from the upstream source
type FetchFunc func(ctx context.Context) ([]Commit, error)

// Cache memoizes the commit feed for a TTL. When a refresh fails and a
// previous value exists, the stale value is served instead of the error.
type Cache struct {
	mu        sync.Mutex
	value     []Commit
	fetchedAt time.Time
	ttl       time.Duration
	fetch     FetchFunc
	now       func() time.Time
}

// NewCache creates a pull-through cache over the given fetch function
func NewCache(ttl time.Duration, fetch FetchFunc) *Cache {
	return &Cache{
		ttl:   ttl,
		fetch: fetch,
		now:   time.Now,
	}
}

// Get returns the cached feed, refreshing it when the TTL has lapsed
func (c *Cache) Get(ctx context.Context) ([]Commit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.value != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.value, nil
	}

	value, err := c.fetch(ctx)
	if err != nil {
		if c.value != nil {
			return c.value, nil
		}
		return nil, err
	}

	c.value = value
	c.fetchedAt = c.now()
	return value, nil
}
