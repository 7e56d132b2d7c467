// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rates_backend/internal/feature/rates/domain/entity"
	"rates_backend/internal/feature/rates/usecase"
)

// CachingRateRepository decorates a RateRepository with a Redis cache of the
// per-source latest fact timestamp. The fetch gate reads that timestamp once
// per source on every wake-up, which is the only hot read path of the
// worker; facts themselves are never cached.
type CachingRateRepository struct {
	inner     usecase.RateRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.RateRepository = (*CachingRateRepository)(nil)

// NewCachingRateRepository decorates inner with Redis caching. If ttl is 0,
// it defaults to 15 minutes. If namespace is empty, it uses "rates".
func NewCachingRateRepository(rdb *redis.Client, ttl time.Duration, inner usecase.RateRepository, namespace string) *CachingRateRepository {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if namespace == "" {
		namespace = "rates"
	}
	return &CachingRateRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// AppendBatch appends to the underlying repository and refreshes the cached
// latest timestamp for every source that appears in the batch.
func (c *CachingRateRepository) AppendBatch(ctx context.Context, rates []entity.ExchangeRate) error {
	if err := c.inner.AppendBatch(ctx, rates); err != nil {
		return err
	}
	if c.rdb == nil || len(rates) == 0 {
		return nil
	}

	latest := map[int]time.Time{}
	for _, r := range rates {
		if r.Timestamp.After(latest[r.SourceID]) {
			latest[r.SourceID] = r.Timestamp
		}
	}
	for sourceID, ts := range latest {
		// Best effort: a failed cache write just means a database read later.
		_ = c.rdb.Set(ctx, c.cacheKey(sourceID), ts.Format(time.RFC3339Nano), c.ttl).Err()
	}
	return nil
}

// LatestTimestamp checks the cache first and falls back to the database.
func (c *CachingRateRepository) LatestTimestamp(ctx context.Context, sourceID int) (time.Time, error) {
	if c.rdb == nil {
		return c.inner.LatestTimestamp(ctx, sourceID)
	}

	key := c.cacheKey(sourceID)
	if s, err := c.rdb.Get(ctx, key).Result(); err == nil && s != "" {
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	ts, err := c.inner.LatestTimestamp(ctx, sourceID)
	if err != nil {
		return time.Time{}, err
	}
	if !ts.IsZero() {
		_ = c.rdb.Set(ctx, key, ts.Format(time.RFC3339Nano), c.ttl).Err()
	}
	return ts, nil
}

func (c *CachingRateRepository) cacheKey(sourceID int) string {
	return fmt.Sprintf("%s:last:%d", c.namespace, sourceID)
}
