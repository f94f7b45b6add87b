package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"company-map-service/internal/ports"
)

const redisKeyPrefix = "route:"

// RedisRouteCache stores directions results in Redis with a TTL, for
// deployments where multiple instances share one cache.
type RedisRouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRouteCache(ctx context.Context, addr string, ttl time.Duration) (*RedisRouteCache, error) {
	if addr == "" {
		return nil, errors.New("redis route cache: address is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis route cache: ping: %w", err)
	}

	return &RedisRouteCache{rdb: rdb, ttl: ttl}, nil
}

// Get fetches the cached result for key; a miss returns (nil, nil).
func (r *RedisRouteCache) Get(ctx context.Context, key string) (*ports.RouteResult, error) {
	if key == "" {
		return nil, errors.New("get route cache: key must not be empty")
	}

	raw, err := r.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route cache: redis GET: %w", err)
	}

	result, err := decodeResult(raw)
	if err != nil {
		return nil, fmt.Errorf("get route cache: %w", err)
	}
	return result, nil
}

// Put stores a result under key with the configured TTL.
func (r *RedisRouteCache) Put(ctx context.Context, key string, result *ports.RouteResult) error {
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}
	if result == nil {
		return errors.New("insert route cache: result must not be nil")
	}

	payload, err := encodeResult(result)
	if err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	if err := r.rdb.Set(ctx, redisKeyPrefix+key, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("insert route cache key=%q: redis SET: %w", key, err)
	}
	return nil
}

func (r *RedisRouteCache) Close() error {
	return r.rdb.Close()
}
