package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
	"github.com/devUbaid/LetterDrive-Backend/internal/core/ports"
)

// SessionCookieName is the HTTP-only cookie carrying the opaque session token.
const SessionCookieName = "letterdrive_session"

// Context keys populated by the Session middleware.
const (
	ContextKeyUser         = "user"
	ContextKeySessionToken = "session_token"
)

// Session resolves the session cookie to a user and injects both into the
// request context. Requests without a valid session get 401 with the
// {"message":"Unauthorized"} envelope.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			user, err := auth.CurrentUser(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
				}
				return err
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeySessionToken, cookie.Value)

			return next(c)
		}
	}
}
