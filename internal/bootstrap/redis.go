package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisconfig "github.com/jonesrussell/north-cloud/seo-monitor/internal/config/redis"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/coordination"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

// ErrRedisDisabled indicates Redis is disabled or not configured.
var ErrRedisDisabled = errors.New("redis disabled")

// CreateRedisClient creates and pings a Redis client.
// Returns ErrRedisDisabled if config is nil or disabled.
func CreateRedisClient(ctx context.Context, cfg *redisconfig.Config) (*redis.Client, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, ErrRedisDisabled
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Address, err)
	}
	return client, nil
}

// newRunLock returns the cross-replica run lock, or nil without a client.
func newRunLock(client *redis.Client, cfg *redisconfig.Config) *coordination.RunLock {
	if client == nil {
		return nil
	}
	return coordination.NewRunLock(client, coordination.DefaultRunLockKey, cfg.LockTTL)
}
