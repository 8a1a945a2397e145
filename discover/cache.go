package discover

import (
	"context"
	"sync"

	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/whatwg"
)

// LoadFunc retrieves a resource. Any error means the content is absent.
type LoadFunc func(ctx context.Context, url string) (*lighterceptor.Resource, error)

// Cache memoizes retrievals by URL for the lifetime of one discovery run.
// The entry for a URL is stored before retrieval starts, so concurrent
// callers for the same URL share one retrieval and observe the same
// outcome. Failures are cached as absent and never retried.
// Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	load    LoadFunc
}

type cacheEntry struct {
	done chan struct{}
	res  *lighterceptor.Resource
}

// NewCache creates a Cache that retrieves through load.
// A nil load makes every lookup absent.
func NewCache(load LoadFunc) *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
		load:    load,
	}
}

// Load returns the resource at url, retrieving it on first use.
// URLs differing only by fragment share one entry.
// The bool result is false when the content is absent.
func (c *Cache) Load(ctx context.Context, url string) (*lighterceptor.Resource, bool) {
	key := whatwg.StripFragment(url)

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{done: make(chan struct{})}
		c.entries[key] = e
	}
	c.mu.Unlock()

	if !ok {
		c.fill(ctx, key, e)
	} else {
		select {
		case <-e.done:
		case <-ctx.Done():
			return nil, false
		}
	}

	return e.res, e.res != nil
}

// fill performs the single retrieval for an entry.
func (c *Cache) fill(ctx context.Context, url string, e *cacheEntry) {
	defer close(e.done)

	if c.load == nil {
		return
	}
	res, err := c.load(ctx, url)
	if err != nil || res == nil {
		return
	}
	if res.URL == "" {
		res.URL = url
	}
	e.res = res
}
