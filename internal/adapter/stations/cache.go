package stations

import (
	"context"
	"errors"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/couchcryptid/metar-etl-service/internal/domain"
	"github.com/couchcryptid/metar-etl-service/internal/observability"
)

// CachedDirectory wraps a StationDirectory with an in-memory LRU cache.
// Unknown stations are cached too; transport errors are not.
type CachedDirectory struct {
	inner   domain.StationDirectory
	cache   *lru.Cache[string, cacheEntry]
	metrics *observability.Metrics
}

type cacheEntry struct {
	station domain.Station
	found   bool
}

// NewCachedDirectory creates a cache decorator holding up to maxEntries stations.
func NewCachedDirectory(inner domain.StationDirectory, maxEntries int, metrics *observability.Metrics) (*CachedDirectory, error) {
	cache, err := lru.New[string, cacheEntry](maxEntries)
	if err != nil {
		return nil, err
	}
	return &CachedDirectory{inner: inner, cache: cache, metrics: metrics}, nil
}

func (c *CachedDirectory) LookupStation(ctx context.Context, icao string) (domain.Station, error) {
	key := strings.ToUpper(icao)
	if e, ok := c.cache.Get(key); ok {
		c.metrics.StationCache.WithLabelValues("hit").Inc()
		if !e.found {
			return domain.Station{}, domain.ErrStationNotFound
		}
		return e.station, nil
	}
	c.metrics.StationCache.WithLabelValues("miss").Inc()

	station, err := c.inner.LookupStation(ctx, key)
	switch {
	case errors.Is(err, domain.ErrStationNotFound):
		c.cache.Add(key, cacheEntry{})
		return station, err
	case err != nil:
		return station, err
	}
	c.cache.Add(key, cacheEntry{station: station, found: true})
	return station, nil
}

// Len returns the number of cached stations.
func (c *CachedDirectory) Len() int {
	return c.cache.Len()
}
