package client

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const DefaultCacheTTL = time.Hour

type cacheEntry struct {
	body    []byte
	expires time.Time
}

// responseCache keeps raw response bodies for a fixed TTL. Concurrent misses
// on the same key share one fetch.
type responseCache struct {
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newResponseCache(ttl time.Duration) *responseCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &responseCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *responseCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.body, true
}

func (c *responseCache) set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{body: body, expires: c.now().Add(c.ttl)}
}

// fetch returns the cached body or calls fill once for all concurrent
// callers. fill runs detached from any single caller's cancellation; each
// caller stops waiting when its own ctx is done. The fill is bounded by
// defaultTimeout. Failed fills are not cached.
func (c *responseCache) fetch(ctx context.Context, key string, fill func(context.Context) ([]byte, error)) ([]byte, error) {
	if body, ok := c.get(key); ok {
		return body, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if body, ok := c.get(key); ok {
			return body, nil
		}
		fillCtx, cancel := context.WithTimeout(detached, defaultTimeout)
		defer cancel()

		body, err := fill(fillCtx)
		if err != nil {
			return nil, err
		}
		c.set(key, body)
		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *responseCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
