package ports

import (
	"context"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// Upsert resolves a Google profile to a local user. An existing record
	// (matched on google id) gets its cached tokens overwritten; otherwise a
	// new record is created. The boolean reports whether a record was
	// created, so callers never have to infer signup-vs-login from
	// timestamps.
	Upsert(ctx context.Context, profile domain.GoogleProfile, tokens domain.OAuthTokens) (*domain.User, bool, error)
}
