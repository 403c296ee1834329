// Package redis connects to the Redis instance used for sessions and caching.
package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// NewRedisClient connects and pings Redis. An error means Redis is unusable
// and callers fall back to running without it.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	addr := cfg.Addr()
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}

// ConnectOptional is NewRedisClient for callers that can run without Redis.
// On failure it logs degraded together with the cause and returns nil.
func ConnectOptional(ctx context.Context, cfg Config, degraded string) *redis.Client {
	rdb, err := NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Warn(degraded, "address", cfg.Addr(), "error", err)
		return nil
	}
	return rdb
}
