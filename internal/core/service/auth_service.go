package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devUbaid/LetterDrive-Backend/internal/api/metrics"
	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
	"github.com/devUbaid/LetterDrive-Backend/internal/core/ports"
)

// AuthService implements the session lifecycle around a completed Google
// login: user upsert, opaque session tokens in durable storage, resolution
// and invalidation.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, sessionTTL time.Duration, logger zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, sessionTTL: sessionTTL, logger: logger}
}

// CompleteLogin upserts the local user for a finished Google login. Calling
// it twice with the same Google id always resolves to the same user record;
// only the cached tokens change on repeat logins.
func (s *AuthService) CompleteLogin(ctx context.Context, profile domain.GoogleProfile, tokens domain.OAuthTokens) (*domain.User, bool, error) {
	user, isNew, err := s.users.Upsert(ctx, profile, tokens)
	if err != nil {
		s.logger.Error().Err(err).Str("google_id", profile.GoogleID).Msg("login upsert failed")
		return nil, false, err
	}

	kind := "login"
	if isNew {
		kind = "signup"
	}
	metrics.LoginsTotal.WithLabelValues(kind).Inc()
	s.logger.Info().Str("user_id", user.ID).Str("kind", kind).Msg("google login completed")

	return user, isNew, nil
}

// EstablishSession binds a fresh opaque token to the user in the shared
// session store, so the session survives restarts and is valid on any
// instance.
func (s *AuthService) EstablishSession(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.sessions.Save(ctx, token, userID, s.sessionTTL); err != nil {
		return "", fmt.Errorf("establish session: %w", err)
	}
	return token, nil
}

// CurrentUser resolves a session token to its user. Unknown or expired
// tokens, and tokens whose user vanished, all report ErrUnauthenticated.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) EndSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}
