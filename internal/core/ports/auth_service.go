package ports

import (
	"context"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

type AuthService interface {
	// CompleteLogin upserts the local user for a finished Google login and
	// reports whether this was a signup (true) or a returning login (false).
	CompleteLogin(ctx context.Context, profile domain.GoogleProfile, tokens domain.OAuthTokens) (*domain.User, bool, error)

	// EstablishSession binds a fresh opaque token to the user.
	EstablishSession(ctx context.Context, userID string) (string, error)

	// CurrentUser resolves a session token to its user, or
	// domain.ErrUnauthenticated.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)

	EndSession(ctx context.Context, token string) error
}
