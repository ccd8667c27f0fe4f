package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUnauthenticated = errors.New("unauthenticated")
var ErrSessionNotFound = errors.New("session not found")

// User models a local account backed by a Google identity. Exactly one
// record exists per Google account; GoogleID is the deduplication key.
type User struct {
	ID           string    `json:"id"`
	GoogleID     string    `json:"googleId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Picture      string    `json:"picture,omitempty"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// GoogleProfile carries the identity fields extracted from a completed
// Google login, decoupled from any OAuth library type.
type GoogleProfile struct {
	GoogleID string
	Name     string
	Email    string
	Picture  string
}

// OAuthTokens are the provider credentials cached on the User record and
// replayed against the Drive API on sync calls.
type OAuthTokens struct {
	AccessToken  string
	RefreshToken string
}
