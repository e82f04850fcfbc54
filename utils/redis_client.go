package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the shared Redis client. url may be a redis:// URL
// or a bare host:port; password and db only apply to the bare form, the
// URL form carries its own. A failed initial ping is logged, not fatal:
// rate limiting fails open without Redis, so the server still serves.
func NewRedisClient(url, password string, db, poolSize int) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{
			Addr:     url,
			Password: password,
			DB:       db,
		}
	}

	opts.PoolSize = poolSize
	opts.MinIdleConns = poolSize / 10
	opts.MaxRetries = 3

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s, rate limiting disabled until it recovers: %v", opts.Addr, err)
	} else {
		log.Printf("redis connected at %s", opts.Addr)
	}

	return client
}

// RedisHealthCheck pings Redis with a short deadline, for the health
// endpoint.
func RedisHealthCheck(client *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	return nil
}
