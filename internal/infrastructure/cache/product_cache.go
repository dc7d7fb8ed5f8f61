package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appcatalog "github.com/breezehub/backend/internal/application/catalog"
	"github.com/breezehub/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisProductCache caches product aggregates in Redis. Misses and backend
// failures both report ok=false so callers fall back to the repository.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisProductCacheOption is a functional option for configuring the cache
type RedisProductCacheOption func(*RedisProductCache)

// WithCacheTTL sets the entry lifetime
func WithCacheTTL(ttl time.Duration) RedisProductCacheOption {
	return func(c *RedisProductCache) {
		c.ttl = ttl
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisProductCacheOption {
	return func(c *RedisProductCache) {
		c.logger = logger
	}
}

// NewRedisProductCache creates a cache backed by an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisProductCache(client *redis.Client, opts ...RedisProductCacheOption) *RedisProductCache {
	cache := &RedisProductCache{
		client: client,
		ttl:    10 * time.Minute,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

var _ appcatalog.ProductCache = (*RedisProductCache)(nil)

func (c *RedisProductCache) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id)
}

// Get retrieves a product from cache
func (c *RedisProductCache) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, bool) {
	data, err := c.client.Get(ctx, c.cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Failed to read product from cache",
			zap.String("product_id", id.String()),
			zap.Error(err))
		return nil, false
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		c.logger.Warn("Failed to decode cached product, invalidating",
			zap.String("product_id", id.String()),
			zap.Error(err))
		c.client.Del(ctx, c.cacheKey(id))
		return nil, false
	}
	return &product, true
}

// Set stores a product in cache
func (c *RedisProductCache) Set(ctx context.Context, product *catalog.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		c.logger.Warn("Failed to encode product for cache",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, c.cacheKey(product.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write product to cache",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
	}
}

// Invalidate removes a product from cache
func (c *RedisProductCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, c.cacheKey(id)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cached product",
			zap.String("product_id", id.String()),
			zap.Error(err))
	}
}
