// Package cache keeps finished analyses in Redis so repeated names skip the computation.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/f3rmion/sancai/internal/sancai"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyPrefix namespaces every key this package writes.
const KeyPrefix = "sancai:v1"

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ResultCache stores sancai results keyed by dictionary version and name.
// It satisfies engine.Cache: failures are logged and treated as misses.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// Connect dials Redis and checks the connection with a ping.
func Connect(ctx context.Context, cfg Config, logger *zap.Logger) (*ResultCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr, err)
	}

	rc := New(client, cfg.TTL, logger)
	rc.logger.Info("Redis connected",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
	)
	return rc, nil
}

// New wraps an existing client. A zero ttl keeps entries until evicted.
func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ResultCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultCache{client: client, ttl: ttl, logger: logger}
}

// Key returns the Redis key for a name under a dictionary version.
func Key(version string, in sancai.NameInput) string {
	return fmt.Sprintf("%s:%s:%s:%s", KeyPrefix, version, in.Surname, in.GivenName)
}

// Get returns the cached result, if any.
func (c *ResultCache) Get(ctx context.Context, version string, in sancai.NameInput) (*sancai.Result, bool) {
	key := Key(version, in)
	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var res sancai.Result
	if err := json.Unmarshal(value, &res); err != nil {
		c.logger.Warn("Cache unmarshal failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &res, true
}

// Put stores res under its own input.
func (c *ResultCache) Put(ctx context.Context, version string, res *sancai.Result) {
	key := Key(version, res.Input)
	data, err := json.Marshal(res)
	if err != nil {
		c.logger.Warn("Cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Close releases the connection pool.
func (c *ResultCache) Close() error {
	return c.client.Close()
}
