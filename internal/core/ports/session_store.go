package ports

import (
	"context"
	"time"
)

// SessionStore maps opaque session tokens to user ids in durable shared
// storage, so any server instance can validate a cookie.
type SessionStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error

	// Get returns the user id bound to token, or domain.ErrSessionNotFound
	// when the token is unknown or expired.
	Get(ctx context.Context, token string) (string, error)

	// Delete invalidates token. Deleting an unknown token is a no-op.
	Delete(ctx context.Context, token string) error
}
