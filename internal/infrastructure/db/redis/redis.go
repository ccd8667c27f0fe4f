// Package redis backs the two ephemeral stores of the system: session
// tokens and per-letter sync locks. This file holds the shared connection
// helper.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	clientName  = "letterdrive"
	pingTimeout = 5 * time.Second
)

type Config struct {
	Addr string
	DB   int
}

// Connect builds the Redis client and pings it once, so a misconfigured
// address surfaces at boot rather than on the first login.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		DB:         cfg.DB,
		ClientName: clientName,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
