package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devUbaid/LetterDrive-Backend/internal/api/middleware"
	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

// currentUser extracts the authenticated user injected by the Session
// middleware. Its absence means the route was registered without the
// middleware — fail closed with 401 rather than panic.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextKeyUser).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return user, nil
}
