// Package mongo is the MongoDB persistence layer: the connection helper
// plus the users and letters repositories.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	appName        = "letterdrive"
	connectTimeout = 10 * time.Second
	defaultTimeout = 10 * time.Second
)

type Config struct {
	URI      string
	Database string
}

// Connect dials MongoDB and verifies the connection with a ping before any
// repository is built, so a bad URI fails the boot instead of the first
// request. Returns the client (for shutdown) and the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
