package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	appcatalog "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RedisProductCache implements the catalog ProductCache using Redis
type RedisProductCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	ttl        time.Duration
	logger     *zap.Logger
}

// NewRedisProductCache creates a new Redis-backed product cache
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

	return &RedisProductCache{
		client:     client,
		ownsClient: true,
		ttl:        ttl,
		logger:     logger,
	}, nil
}

// NewRedisProductCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisProductCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisProductCache {
	return &RedisProductCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisProductCache) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id.String())
}

// Get retrieves a product from cache. A miss returns (nil, nil).
func (c *RedisProductCache) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	data, err := c.client.Get(ctx, c.cacheKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.logger.Warn("failed to get product from cache",
			zap.String("product_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get product from cache: %w", err)
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		c.logger.Warn("failed to decode cached product",
			zap.String("product_id", id.String()),
			zap.Error(err))
		// Treat a corrupt entry as a miss and drop it
		c.client.Del(ctx, c.cacheKey(id))
		return nil, nil
	}
	return &product, nil
}

// Set stores a product in cache with the configured TTL
func (c *RedisProductCache) Set(ctx context.Context, product *catalog.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode product for cache: %w", err)
	}
	if err := c.client.Set(ctx, c.cacheKey(product.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to set product in cache",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to set product in cache: %w", err)
	}
	return nil
}

// Invalidate removes a product from cache
func (c *RedisProductCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, c.cacheKey(id)).Err(); err != nil {
		c.logger.Warn("failed to invalidate cached product",
			zap.String("product_id", id.String()),
			zap.Error(err))
		return fmt.Errorf("failed to invalidate cached product: %w", err)
	}
	return nil
}

// Close closes the Redis client if this cache owns it
func (c *RedisProductCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisProductCache implements ProductCache
var _ appcatalog.ProductCache = (*RedisProductCache)(nil)
