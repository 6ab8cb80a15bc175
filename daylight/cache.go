package daylight

import (
	"context"
	"errors"
	"fmt"

	"github.com/maypok86/otter/v2"

	"github.com/devskill-org/daylight/solar"
)

// DefaultCacheSize is used when NewCachedSource is given a non-positive size.
const DefaultCacheSize = 4096

type cacheEntry struct {
	times      Times
	noSolution error
}

// CachedSource memoises a Source by coordinate and date. Successful lookups
// and no-solution answers are cached; other errors are not, so an
// unavailable remote is asked again next time.
type CachedSource struct {
	next    Source
	cache   *otter.Cache[string, cacheEntry]
	metrics *Metrics
}

// NewCachedSource wraps next with a cache holding at most size entries.
func NewCachedSource(next Source, size int, metrics *Metrics) *CachedSource {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache := otter.Must(&otter.Options[string, cacheEntry]{
		MaximumSize: size,
	})
	return &CachedSource{next: next, cache: cache, metrics: metrics}
}

func (c *CachedSource) Name() string { return c.next.Name() }

func (c *CachedSource) Lookup(ctx context.Context, q Query) (Times, error) {
	key := cacheKey(q)
	if entry, ok := c.cache.GetIfPresent(key); ok {
		c.metrics.cacheHit(c.Name())
		return entry.times, entry.noSolution
	}
	c.metrics.cacheMiss(c.Name())

	times, err := c.next.Lookup(ctx, q)
	switch {
	case err == nil:
		c.cache.Set(key, cacheEntry{times: times})
	case errors.Is(err, solar.ErrNoSolution):
		c.cache.Set(key, cacheEntry{noSolution: err})
	}
	return times, err
}

// Len returns the approximate number of cached entries.
func (c *CachedSource) Len() int {
	return c.cache.EstimatedSize()
}

func cacheKey(q Query) string {
	return fmt.Sprintf("%.6f|%.6f|%s", q.Latitude, q.Longitude, q.Date.Format("2006-01-02"))
}
