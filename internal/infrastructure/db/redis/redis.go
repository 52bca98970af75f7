// Package redis holds the Redis-backed adapters. Redis is optional: the
// service runs without it and only loses login throttling.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pingTimeout = 5 * time.Second
	opTimeout   = time.Second
)

// Config describes the optional Redis connection. An empty Addr means Redis
// is not configured.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether an address was configured.
func (c Config) Enabled() bool {
	return c.Addr != ""
}

// Connect dials Redis and pings it once. Reads and writes use short timeouts
// so a slow Redis degrades logins instead of stalling them.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("redis connect: no address configured")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  pingTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
