// Package oauth wraps the Google authorization-code flow behind a small
// provider type so the rest of the system only ever sees domain profiles
// and cached tokens.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// driveFileScope grants access only to files this application creates.
const driveFileScope = "https://www.googleapis.com/auth/drive.file"

// GoogleProvider wraps golang.org/x/oauth2 for the Google web flow. The
// drive.file scope is requested up front so the cached tokens work for both
// identity and Drive sync.
type GoogleProvider struct {
	config *oauth2.Config
}

// NewGoogleProvider creates a provider. serverURL is the externally visible
// base of this backend; the registered redirect URI must match
// serverURL + "/api/auth/google/callback" exactly.
func NewGoogleProvider(clientID, clientSecret, serverURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  serverURL + "/api/auth/google/callback",
			Scopes:       []string{"profile", "email", driveFileScope},
			Endpoint:     endpoints.Google,
		},
	}
}

// AuthURL returns the Google consent page URL for the given CSRF state.
// Offline access plus a forced consent prompt makes Google return a refresh
// token, which is cached on the user record for later Drive calls.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades the authorization code for the user's profile and tokens.
// The profile is read from the OIDC id_token when present (it arrived over
// TLS straight from Google, so the signature is not re-verified here) and
// from the userinfo endpoint otherwise.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (domain.GoogleProfile, domain.OAuthTokens, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return domain.GoogleProfile{}, domain.OAuthTokens{}, fmt.Errorf("oauth: exchanging code: %w", err)
	}

	tokens := domain.OAuthTokens{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}

	if idToken, ok := token.Extra("id_token").(string); ok && idToken != "" {
		if profile, err := profileFromIDToken(idToken); err == nil {
			return profile, tokens, nil
		}
	}

	profile, err := p.fetchUserinfo(ctx, token)
	if err != nil {
		return domain.GoogleProfile{}, domain.OAuthTokens{}, err
	}
	return profile, tokens, nil
}

// Client returns an HTTP client that authenticates with the user's cached
// tokens. No expiry is recorded with the cached access token, so the oauth2
// transport never refreshes proactively; a rejected token fails the call.
func (p *GoogleProvider) Client(ctx context.Context, tokens domain.OAuthTokens) *http.Client {
	return p.config.Client(ctx, &oauth2.Token{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// profileFromIDToken decodes the OIDC id_token claims without signature
// verification.
func profileFromIDToken(idToken string) (domain.GoogleProfile, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return domain.GoogleProfile{}, fmt.Errorf("oauth: parsing id_token: %w", err)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return domain.GoogleProfile{}, fmt.Errorf("oauth: id_token missing sub claim")
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	picture, _ := claims["picture"].(string)

	return domain.GoogleProfile{
		GoogleID: sub,
		Name:     name,
		Email:    email,
		Picture:  picture,
	}, nil
}

func (p *GoogleProvider) fetchUserinfo(ctx context.Context, token *oauth2.Token) (domain.GoogleProfile, error) {
	resp, err := p.config.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		return domain.GoogleProfile{}, fmt.Errorf("oauth: calling userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.GoogleProfile{}, fmt.Errorf("oauth: userinfo returned status %d", resp.StatusCode)
	}

	var info struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return domain.GoogleProfile{}, fmt.Errorf("oauth: decoding userinfo: %w", err)
	}
	if info.ID == "" {
		return domain.GoogleProfile{}, fmt.Errorf("oauth: userinfo returned an empty user id")
	}

	return domain.GoogleProfile{
		GoogleID: info.ID,
		Name:     info.Name,
		Email:    info.Email,
		Picture:  info.Picture,
	}, nil
}
