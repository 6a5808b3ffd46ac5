package news

import (
	"context"
	"sync"
	"time"
)

// Provider is the read surface the HTTP layer consumes.
type Provider interface {
	Aggregate(ctx context.Context) (Result, error)
}

// Cache memoizes a successful aggregate for a bounded interval.
// Upstream feeds change infrequently, so concurrent page loads should
// not each fan out to every source. Errors are never cached.
type Cache struct {
	inner Provider
	ttl   time.Duration
	clock Clock

	mu      sync.Mutex
	result  Result
	expires time.Time
	valid   bool
}

// NewCache wraps a Provider with a TTL cache. ttl <= 0 disables caching.
func NewCache(inner Provider, ttl time.Duration, clock Clock) *Cache {
	return &Cache{inner: inner, ttl: ttl, clock: clock}
}

// Aggregate returns the cached result while fresh, otherwise delegates.
// The lock is held across the refresh so a cold cache triggers one
// upstream fan-out, not one per concurrent caller.
func (c *Cache) Aggregate(ctx context.Context) (Result, error) {
	if c.ttl <= 0 {
		return c.inner.Aggregate(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.valid && now.Before(c.expires) {
		return c.result, nil
	}

	result, err := c.inner.Aggregate(ctx)
	if err != nil {
		return Result{}, err
	}
	c.result = result
	c.expires = now.Add(c.ttl)
	c.valid = true
	return result, nil
}
