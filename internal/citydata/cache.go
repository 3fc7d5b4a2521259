package citydata

import (
	"context"
	"sync"
	"time"

	"restconnect-service/internal/observability"
)

// CachedSource decorates a Source with a per-dataset TTL cache. The city
// datasets change rarely, so responses are held for the configured TTL and
// refetched after that. Only successful fetches are cached, a failed refresh
// is retried on the next request.
type CachedSource struct {
	inner   Source
	ttl     time.Duration
	metrics *observability.Metrics

	mu         sync.Mutex
	toilets    cacheEntry[[]Toilet]
	openSpaces cacheEntry[[]OpenSpace]
	crimeStats cacheEntry[[]CrimeStat]
}

type cacheEntry[T any] struct {
	value     T
	fetchedAt time.Time
}

func (e cacheEntry[T]) fresh(ttl time.Duration, now time.Time) bool {
	return !e.fetchedAt.IsZero() && now.Sub(e.fetchedAt) < ttl
}

func NewCachedSource(inner Source, ttl time.Duration, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		metrics: metrics,
	}
}

func (c *CachedSource) Toilets(ctx context.Context) ([]Toilet, error) {
	c.mu.Lock()
	if c.toilets.fresh(c.ttl, time.Now()) {
		v := c.toilets.value
		c.mu.Unlock()
		c.metrics.CityDataCache.WithLabelValues("toilets", "hit").Inc()
		return v, nil
	}
	c.mu.Unlock()

	c.metrics.CityDataCache.WithLabelValues("toilets", "miss").Inc()
	v, err := c.inner.Toilets(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.toilets = cacheEntry[[]Toilet]{value: v, fetchedAt: time.Now()}
	c.mu.Unlock()
	return v, nil
}

func (c *CachedSource) OpenSpaces(ctx context.Context) ([]OpenSpace, error) {
	c.mu.Lock()
	if c.openSpaces.fresh(c.ttl, time.Now()) {
		v := c.openSpaces.value
		c.mu.Unlock()
		c.metrics.CityDataCache.WithLabelValues("open_spaces", "hit").Inc()
		return v, nil
	}
	c.mu.Unlock()

	c.metrics.CityDataCache.WithLabelValues("open_spaces", "miss").Inc()
	v, err := c.inner.OpenSpaces(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.openSpaces = cacheEntry[[]OpenSpace]{value: v, fetchedAt: time.Now()}
	c.mu.Unlock()
	return v, nil
}

func (c *CachedSource) CrimeStats(ctx context.Context) ([]CrimeStat, error) {
	c.mu.Lock()
	if c.crimeStats.fresh(c.ttl, time.Now()) {
		v := c.crimeStats.value
		c.mu.Unlock()
		c.metrics.CityDataCache.WithLabelValues("crime", "hit").Inc()
		return v, nil
	}
	c.mu.Unlock()

	c.metrics.CityDataCache.WithLabelValues("crime", "miss").Inc()
	v, err := c.inner.CrimeStats(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.crimeStats = cacheEntry[[]CrimeStat]{value: v, fetchedAt: time.Now()}
	c.mu.Unlock()
	return v, nil
}
