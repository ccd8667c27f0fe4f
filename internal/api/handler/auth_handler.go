package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/devUbaid/LetterDrive-Backend/internal/api/middleware"
	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
	"github.com/devUbaid/LetterDrive-Backend/internal/core/ports"
)

const stateCookieName = "oauth_state"

// stateTTL bounds how long a pending OAuth redirect stays valid.
const stateTTL = 10 * time.Minute

// OAuthProvider is the slice of the Google OAuth flow the handler needs.
type OAuthProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (domain.GoogleProfile, domain.OAuthTokens, error)
}

// AuthHandler implements the login, callback, status, and logout routes.
type AuthHandler struct {
	auth          ports.AuthService
	provider      OAuthProvider
	clientURL     string
	sessionTTL    time.Duration
	secureCookies bool
	logger        zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, provider OAuthProvider, clientURL string, sessionTTL time.Duration, secureCookies bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:          auth,
		provider:      provider,
		clientURL:     clientURL,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// GoogleLogin starts the OAuth flow.
//
// @Summary      Redirect to Google's consent page
// @Tags         auth
// @Success      302
// @Router       /api/auth/google [get]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	state := xid.New().String()

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, h.provider.AuthURL(state))
}

// GoogleCallback completes the OAuth flow: state check, code exchange, user
// upsert, session establishment. Every failure redirects the browser to the
// client's login-failed page — the callback is a navigation, not an API call.
//
// @Summary      OAuth callback from Google
// @Tags         auth
// @Success      302
// @Router       /api/auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	failedURL := h.clientURL + "/login-failed"

	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || c.QueryParam("state") != stateCookie.Value {
		h.logger.Warn().Msg("oauth callback: state mismatch")
		return c.Redirect(http.StatusFound, failedURL)
	}

	// The state is single-use.
	c.SetCookie(&http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1})

	if errParam := c.QueryParam("error"); errParam != "" {
		h.logger.Info().Str("error", errParam).Msg("oauth callback: user denied authorization")
		return c.Redirect(http.StatusFound, failedURL)
	}

	code := c.QueryParam("code")
	if code == "" {
		h.logger.Warn().Msg("oauth callback: missing code")
		return c.Redirect(http.StatusFound, failedURL)
	}

	ctx := c.Request().Context()

	profile, tokens, err := h.provider.Exchange(ctx, code)
	if err != nil {
		h.logger.Error().Err(err).Msg("oauth callback: exchange failed")
		return c.Redirect(http.StatusFound, failedURL)
	}

	user, isNew, err := h.auth.CompleteLogin(ctx, profile, tokens)
	if err != nil {
		h.logger.Error().Err(err).Msg("oauth callback: login completion failed")
		return c.Redirect(http.StatusFound, failedURL)
	}

	token, err := h.auth.EstablishSession(ctx, user.ID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID).Msg("oauth callback: session establishment failed")
		return c.Redirect(http.StatusFound, failedURL)
	}

	c.SetCookie(h.sessionCookie(token))

	dashboardURL := h.clientURL + "/dashboard"
	if isNew {
		dashboardURL += "?newUser=true"
	}
	return c.Redirect(http.StatusFound, dashboardURL)
}

type statusUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

type statusResponse struct {
	IsAuthenticated bool        `json:"isAuthenticated"`
	User            *statusUser `json:"user,omitempty"`
}

// Status reports whether the caller holds a valid session.
//
// @Summary      Current authentication status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  statusResponse
// @Router       /api/auth/status [get]
func (h *AuthHandler) Status(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, statusResponse{IsAuthenticated: false})
	}

	user, err := h.auth.CurrentUser(c.Request().Context(), cookie.Value)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, statusResponse{IsAuthenticated: false})
	}

	return c.JSON(http.StatusOK, statusResponse{
		IsAuthenticated: true,
		User: &statusUser{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Picture: user.Picture,
		},
	})
}

// Logout invalidates the server-side session and expires the cookie.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.auth.EndSession(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	expired := h.sessionCookie("")
	expired.MaxAge = -1
	c.SetCookie(expired)

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// sessionCookie builds the session cookie. Cross-site deployments need
// SameSite=None, which browsers only accept together with Secure.
func (h *AuthHandler) sessionCookie(token string) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if h.secureCookies {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: sameSite,
	}
}
