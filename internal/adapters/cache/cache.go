// Package cache is the best-effort Redis response cache.
// Every error is logged and swallowed: a broken cache slows requests down,
// it never fails them
package cache

import (
	"context"
	"time"

	"lotgate/internal/platform/logger"
	"lotgate/internal/platform/store"

	"github.com/redis/go-redis/v9"
)

// Response TTLs per operation family
const (
	TTLVinOrLot   = 30 * time.Minute
	TTLCurrentBid = 10 * time.Minute
	TTLHistory    = time.Hour
	TTLSearch     = time.Hour
	TTLPrices     = time.Hour
	TTLFilters    = 6 * time.Hour
)

// scanCount is the batch size for pattern deletes
const scanCount = 100

// Cache is the read-through seam modules use
type Cache interface {
	// Get returns the cached payload and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores payload under key for ttl
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)

	// Delete removes specific keys
	Delete(ctx context.Context, keys ...string)

	// DeletePattern removes every key matching a glob pattern
	DeletePattern(ctx context.Context, pattern string)
}

// Redis backs Cache with a go-redis client
type Redis struct {
	rdb *redis.Client
	log *logger.Logger
}

// NewRedis builds a Redis cache from store config
func NewRedis(cfg store.RedisConfig, log *logger.Logger) *Redis {
	if log == nil {
		log = logger.Named("cache")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Redis{rdb: rdb, log: log}
}

// Ping reports backend reachability, used by readiness checks
func (c *Redis) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the client
func (c *Redis) Close() error { return c.rdb.Close() }

// Get returns the cached payload for key, or absent on any failure
func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Str("key", key).Err(err).Msg("cache get failed")
		}
		return nil, false
	}
	return data, true
}

// Set stores payload under key for ttl
func (c *Redis) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.log.Warn().Str("key", key).Err(err).Msg("cache set failed")
	}
}

// Delete removes specific keys
func (c *Redis) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Strs("keys", keys).Err(err).Msg("cache delete failed")
	}
}

// DeletePattern scans for keys matching pattern and removes them in batches
func (c *Redis) DeletePattern(ctx context.Context, pattern string) {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			c.log.Warn().Str("pattern", pattern).Err(err).Msg("cache scan failed")
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				c.log.Warn().Str("pattern", pattern).Err(err).Msg("cache pattern delete failed")
				return
			}
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}

// Nop is the disabled-cache stand-in; every lookup misses
type Nop struct{}

// Get always misses
func (Nop) Get(context.Context, string) ([]byte, bool) { return nil, false }

// Set drops the payload
func (Nop) Set(context.Context, string, []byte, time.Duration) {}

// Delete is a no-op
func (Nop) Delete(context.Context, ...string) {}

// DeletePattern is a no-op
func (Nop) DeletePattern(context.Context, string) {}
