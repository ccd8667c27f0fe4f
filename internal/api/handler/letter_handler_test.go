package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devUbaid/LetterDrive-Backend/internal/api/middleware"
	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
	"github.com/devUbaid/LetterDrive-Backend/internal/core/ports"
)

type stubLetterService struct {
	listFn   func(ctx context.Context, ownerID string) ([]domain.Letter, error)
	getFn    func(ctx context.Context, ownerID, id string) (*domain.Letter, error)
	createFn func(ctx context.Context, ownerID string, input ports.CreateLetterInput) (*domain.Letter, error)
	updateFn func(ctx context.Context, ownerID, id string, update ports.LetterUpdate) (*domain.Letter, error)
	deleteFn func(ctx context.Context, ownerID, id string) error
}

func (s *stubLetterService) List(ctx context.Context, ownerID string) ([]domain.Letter, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubLetterService) Get(ctx context.Context, ownerID, id string) (*domain.Letter, error) {
	return s.getFn(ctx, ownerID, id)
}

func (s *stubLetterService) Create(ctx context.Context, ownerID string, input ports.CreateLetterInput) (*domain.Letter, error) {
	return s.createFn(ctx, ownerID, input)
}

func (s *stubLetterService) Update(ctx context.Context, ownerID, id string, update ports.LetterUpdate) (*domain.Letter, error) {
	return s.updateFn(ctx, ownerID, id, update)
}

func (s *stubLetterService) Delete(ctx context.Context, ownerID, id string) error {
	return s.deleteFn(ctx, ownerID, id)
}

// newLetterContext builds an echo context with the authenticated user
// already injected, the way the Session middleware would.
func newLetterContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "owner_1", Name: "Alice"})
	return c, rec
}

func TestLetterHandler_Create_AppliesDefaults(t *testing.T) {
	stub := &stubLetterService{
		createFn: func(_ context.Context, ownerID string, input ports.CreateLetterInput) (*domain.Letter, error) {
			if ownerID != "owner_1" {
				t.Fatalf("unexpected owner %q", ownerID)
			}
			if input.Title == nil || *input.Title != "Hi" {
				t.Fatalf("expected title pointer to \"Hi\", got %v", input.Title)
			}
			if input.Content != nil {
				t.Fatalf("absent content must arrive as nil, got %q", *input.Content)
			}
			return &domain.Letter{ID: "letter_1", UserID: ownerID, Title: "Hi", Content: ""}, nil
		},
	}
	h := NewLetterHandler(stub)

	c, rec := newLetterContext(t, http.MethodPost, "/api/letters", `{"title":"Hi"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp domain.Letter
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Content != "" {
		t.Fatalf("expected empty content, got %q", resp.Content)
	}
}

func TestLetterHandler_Update_DistinguishesAbsentFromEmpty(t *testing.T) {
	stub := &stubLetterService{
		updateFn: func(_ context.Context, _, id string, update ports.LetterUpdate) (*domain.Letter, error) {
			if id != "letter_1" {
				t.Fatalf("unexpected id %q", id)
			}
			if update.Title != nil {
				t.Fatalf("absent title must arrive as nil")
			}
			if update.Content == nil || *update.Content != "" {
				t.Fatalf("explicit empty content must arrive as pointer to \"\"")
			}
			return &domain.Letter{ID: id, Content: ""}, nil
		},
	}
	h := NewLetterHandler(stub)

	c, rec := newLetterContext(t, http.MethodPut, "/api/letters/letter_1", `{"content":""}`)
	c.SetParamNames("id")
	c.SetParamValues("letter_1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestLetterHandler_Get_NotFoundPropagates(t *testing.T) {
	stub := &stubLetterService{
		getFn: func(_ context.Context, _, _ string) (*domain.Letter, error) {
			return nil, domain.ErrLetterNotFound
		},
	}
	h := NewLetterHandler(stub)

	c, _ := newLetterContext(t, http.MethodGet, "/api/letters/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrLetterNotFound) {
		t.Fatalf("expected ErrLetterNotFound to propagate to the error handler, got %v", err)
	}
}

func TestLetterHandler_List(t *testing.T) {
	stub := &stubLetterService{
		listFn: func(_ context.Context, ownerID string) ([]domain.Letter, error) {
			return []domain.Letter{{ID: "letter_1", UserID: ownerID}}, nil
		},
	}
	h := NewLetterHandler(stub)

	c, rec := newLetterContext(t, http.MethodGet, "/api/letters", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []domain.Letter
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "letter_1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestLetterHandler_Delete(t *testing.T) {
	deleted := false
	stub := &stubLetterService{
		deleteFn: func(_ context.Context, ownerID, id string) error {
			if ownerID != "owner_1" || id != "letter_1" {
				t.Fatalf("unexpected args %q %q", ownerID, id)
			}
			deleted = true
			return nil
		},
	}
	h := NewLetterHandler(stub)

	c, rec := newLetterContext(t, http.MethodDelete, "/api/letters/letter_1", "")
	c.SetParamNames("id")
	c.SetParamValues("letter_1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !deleted {
		t.Fatalf("service delete not invoked")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Letter deleted successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLetterHandler_MissingUserFailsClosed(t *testing.T) {
	h := NewLetterHandler(&stubLetterService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/letters", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError without session user, got %v", err)
	}
}
