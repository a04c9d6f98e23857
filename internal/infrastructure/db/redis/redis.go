package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultIOTimeout   = 3 * time.Second
)

// Config describes the session Redis instance.
type Config struct {
	Addr     string
	Password string
	DB       int
	// PoolSize caps open connections; zero keeps the go-redis default.
	PoolSize int
	// DialTimeout bounds both dialing and the startup ping.
	DialTimeout time.Duration
}

func (c Config) options() *redis.Options {
	dial := c.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		DialTimeout:  dial,
		ReadTimeout:  defaultIOTimeout,
		WriteTimeout: defaultIOTimeout,
		// Honour request deadlines on every command.
		ContextTimeoutEnabled: true,
	}
}

// Connect opens the session store client and refuses to return one that
// cannot answer PING, so the server fails at startup instead of on first login.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := cfg.options()
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: ping: %w", cfg.Addr, err)
	}
	return client, nil
}
