package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a string key/value store with TTLs. Get returns "" and a nil
// error for a missing key.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	GenerateKey(operation, key string) string
	Close() error
}

type redisCache struct {
	client      *redis.Client
	serviceName string
}

func NewRedisCache(addr, serviceName string) Cache {
	return &redisCache{
		client:      redis.NewClient(&redis.Options{Addr: addr}),
		serviceName: serviceName,
	}
}

func (r redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	return val, nil
}

func (r redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r redisCache) GenerateKey(operation, key string) string {
	return GenerateKey(r.serviceName, operation, key)
}

func (r redisCache) Close() error {
	return r.client.Close()
}

// Ping checks connectivity so main can log a degraded cache at startup.
func Ping(ctx context.Context, c Cache) error {
	rc, ok := c.(*redisCache)
	if !ok {
		return nil
	}
	return rc.client.Ping(ctx).Err()
}

// New returns a Redis cache for addr, or a no-op cache when addr is empty.
// An unreachable Redis is logged and kept since every cache failure is
// tolerated by its callers.
func New(ctx context.Context, addr, serviceName string) Cache {
	if addr == "" {
		slog.InfoContext(ctx, "redis disabled, caching off")
		return NewNopCache(serviceName)
	}
	c := NewRedisCache(addr, serviceName)
	if err := Ping(ctx, c); err != nil {
		slog.WarnContext(ctx, "redis unreachable, running degraded", "addr", addr, "error", err)
	}
	return c
}

func GenerateKey(serviceName, operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", serviceName, operation, key)
}
