package catalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"institute-discovery/internal/common/errors"
	"institute-discovery/internal/common/logger"
	"institute-discovery/internal/common/metrics"
	"institute-discovery/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	CategoriesCacheKey = "catalog:categories"
	ListingsCacheKey   = "catalog:listings"

	DefaultCacheTTL = 5 * time.Minute
)

// CachedSource is a read-through Redis cache in front of another Source.
// A Redis failure never fails a read: the inner source is queried instead
// and nothing is written back.
type CachedSource struct {
	source Source
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(source Source, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{
		source: source,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-cache"}),
	}
}

func (c *CachedSource) Name() string { return c.source.Name() }

func (c *CachedSource) Categories(ctx context.Context) ([]models.Category, error) {
	return cachedFetch(ctx, c, CategoriesCacheKey, "categories", c.source.Categories)
}

func (c *CachedSource) Listings(ctx context.Context) ([]models.Listing, error) {
	return cachedFetch(ctx, c, ListingsCacheKey, "listings", c.source.Listings)
}

// Invalidate drops both cached collections.
func (c *CachedSource) Invalidate(ctx context.Context) error {
	if err := c.redis.Del(ctx, CategoriesCacheKey, ListingsCacheKey).Err(); err != nil {
		return errors.NewCacheUnavailableError(err)
	}
	return nil
}

func cachedFetch[T any](ctx context.Context, c *CachedSource, key, collection string, load func(context.Context) ([]T, error)) ([]T, error) {
	writeBack := true

	cached, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var items []T
		if jsonErr := json.Unmarshal([]byte(cached), &items); jsonErr == nil {
			metrics.CatalogCacheHits.WithLabelValues(collection, "hit").Inc()
			return items, nil
		}
		c.logger.Warn("Discarding undecodable cache entry", map[string]interface{}{"key": key})
		metrics.CatalogCacheHits.WithLabelValues(collection, "miss").Inc()
	case stderrors.Is(err, redis.Nil):
		metrics.CatalogCacheHits.WithLabelValues(collection, "miss").Inc()
	default:
		writeBack = false
		metrics.CatalogCacheHits.WithLabelValues(collection, "error").Inc()
		c.logger.Warn("Catalog cache unavailable, reading source directly", map[string]interface{}{
			"key":   key,
			"error": errors.NewCacheUnavailableError(err),
		})
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if writeBack {
		data, err := json.Marshal(items)
		if err == nil {
			err = c.redis.Set(ctx, key, data, c.ttl).Err()
		}
		if err != nil {
			c.logger.Warn("Failed to cache catalog collection", map[string]interface{}{
				"key":   key,
				"error": err,
			})
		}
	}

	return items, nil
}
