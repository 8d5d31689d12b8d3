package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const productKeyPrefix = "catalog:product:"

// RedisProductCache implements the product read cache on Redis.
// This is suitable for multi-instance deployments where the cache
// must survive process restarts and be shared across instances.
//
// All failures are treated as misses; the cache never surfaces errors
// to callers.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisProductCache connects to Redis and returns a product cache
func NewRedisProductCache(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisProductCacheWithClient(client, ttl, logger), nil
}

// NewRedisProductCacheWithClient wraps an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisProductCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisProductCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisProductCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached product for the ID, if present
func (c *RedisProductCache) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, bool) {
	data, err := c.client.Get(ctx, productKeyPrefix+id.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("product cache read failed",
				zap.String("product_id", id.String()),
				zap.Error(err),
			)
		}
		return nil, false
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		// A stale or corrupt entry; drop it so the next write repairs it.
		c.client.Del(ctx, productKeyPrefix+id.String())
		return nil, false
	}
	return &product, true
}

// Set stores the product under its ID with the configured TTL
func (c *RedisProductCache) Set(ctx context.Context, product *catalog.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		c.logger.Warn("product cache encode failed",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
		return
	}

	if err := c.client.Set(ctx, productKeyPrefix+product.ID.String(), data, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}
}

// Invalidate removes the product's cache entry
func (c *RedisProductCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, productKeyPrefix+id.String()).Err(); err != nil {
		c.logger.Warn("product cache invalidation failed",
			zap.String("product_id", id.String()),
			zap.Error(err),
		)
	}
}

// Close closes the Redis client
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}

var _ catalogapp.ProductCache = (*RedisProductCache)(nil)
