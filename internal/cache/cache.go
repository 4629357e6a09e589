package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
)

// ErrMiss is returned when a key is absent or caching is disabled.
var ErrMiss = errors.New("cache: miss")

// Cache fronts the public read endpoints. Values are pre-rendered JSON
// response bodies keyed by request path.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

// RedisCache is the production implementation backed by go-redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisCache(cfg *config.CacheConfig) (*RedisCache, error) {
	ttl, err := cfg.GetTTL()
	if err != nil {
		return nil, fmt.Errorf("cache: invalid ttl: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis unreachable: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl, prefix: "cms:public:"}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, c.prefix+key, value, c.ttl).Err()
}

// InvalidateAll drops every cached response. Content writes are rare enough
// that a full flush beats tracking key dependencies.
func (c *RedisCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NoopCache stands in when caching is disabled in config.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (NoopCache) Get(ctx context.Context, key string) ([]byte, error) { return nil, ErrMiss }
func (NoopCache) Set(ctx context.Context, key string, value []byte) error {
	return nil
}
func (NoopCache) InvalidateAll(ctx context.Context) error { return nil }
func (NoopCache) Close() error                            { return nil }
