// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"institute-discovery/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the catalog cache connection.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis builds a pooled client; read and write timeouts come from
// cfg.OpTimeout.
func NewRedis(cfg config.RedisConfig) *RedisClient {
	opTimeout := config.GetDuration(cfg.OpTimeout)
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	return &RedisClient{Client: rdb}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}
