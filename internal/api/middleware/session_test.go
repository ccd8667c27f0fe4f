package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

type stubAuthService struct {
	currentUserFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuthService) CompleteLogin(context.Context, domain.GoogleProfile, domain.OAuthTokens) (*domain.User, bool, error) {
	panic("not used")
}

func (s *stubAuthService) EstablishSession(context.Context, string) (string, error) {
	panic("not used")
}

func (s *stubAuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	return s.currentUserFn(ctx, token)
}

func (s *stubAuthService) EndSession(context.Context, string) error {
	panic("not used")
}

func runSession(t *testing.T, svc *stubAuthService, cookie *http.Cookie) (echo.Context, error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/letters", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	next := func(c echo.Context) error {
		nextCalled = true
		return nil
	}

	err := Session(svc)(next)(c)
	return c, err, nextCalled
}

func TestSession_NoCookie(t *testing.T) {
	svc := &stubAuthService{
		currentUserFn: func(context.Context, string) (*domain.User, error) {
			t.Fatalf("auth service must not be called without a cookie")
			return nil, nil
		},
	}

	_, err, nextCalled := runSession(t, svc, nil)
	if nextCalled {
		t.Fatalf("next handler must not run")
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestSession_InvalidToken(t *testing.T) {
	svc := &stubAuthService{
		currentUserFn: func(_ context.Context, token string) (*domain.User, error) {
			return nil, domain.ErrUnauthenticated
		},
	}

	_, err, nextCalled := runSession(t, svc, &http.Cookie{Name: SessionCookieName, Value: "expired"})
	if nextCalled {
		t.Fatalf("next handler must not run")
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestSession_ValidTokenInjectsUser(t *testing.T) {
	user := &domain.User{ID: "user_1", Name: "Alice"}
	svc := &stubAuthService{
		currentUserFn: func(_ context.Context, token string) (*domain.User, error) {
			if token != "good-token" {
				t.Fatalf("unexpected token %q", token)
			}
			return user, nil
		},
	}

	c, err, nextCalled := runSession(t, svc, &http.Cookie{Name: SessionCookieName, Value: "good-token"})
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if !nextCalled {
		t.Fatalf("next handler did not run")
	}

	injected, ok := c.Get(ContextKeyUser).(*domain.User)
	if !ok || injected.ID != "user_1" {
		t.Fatalf("user not injected into context")
	}
	if token, _ := c.Get(ContextKeySessionToken).(string); token != "good-token" {
		t.Fatalf("session token not injected into context")
	}
}

func TestSession_StoreFailurePropagates(t *testing.T) {
	svc := &stubAuthService{
		currentUserFn: func(context.Context, string) (*domain.User, error) {
			return nil, errors.New("redis down")
		},
	}

	_, err, nextCalled := runSession(t, svc, &http.Cookie{Name: SessionCookieName, Value: "token"})
	if nextCalled {
		t.Fatalf("next handler must not run")
	}
	if err == nil || errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("store failure must propagate as-is, got %v", err)
	}
}
