package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/ports"
)

// LetterHandler handles HTTP requests for letter CRUD.
type LetterHandler struct {
	service ports.LetterService
}

func NewLetterHandler(service ports.LetterService) *LetterHandler {
	return &LetterHandler{service: service}
}

// letterRequest covers both create and update bodies. Pointer fields
// distinguish an absent key from an explicit empty string: absent fields
// keep defaults or prior values, an empty content is a real overwrite.
type letterRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// List handles GET /api/letters.
//
// @Summary      List the caller's letters, most recently updated first
// @Tags         letters
// @Produce      json
// @Success      200  {array}   domain.Letter
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/letters [get]
func (h *LetterHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	letters, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, letters)
}

// Get handles GET /api/letters/:id.
//
// @Summary      Get a single letter
// @Tags         letters
// @Produce      json
// @Param        id   path      string  true  "Letter id"
// @Success      200  {object}  domain.Letter
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/letters/{id} [get]
func (h *LetterHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	letter, err := h.service.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, letter)
}

// Create handles POST /api/letters. Absent fields are never rejected; the
// title defaults and the content starts empty.
//
// @Summary      Create a letter
// @Tags         letters
// @Accept       json
// @Produce      json
// @Param        body  body      letterRequest  true  "Optional title and content"
// @Success      201   {object}  domain.Letter
// @Failure      500   {object}  map[string]string
// @Router       /api/letters [post]
func (h *LetterHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req letterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	letter, err := h.service.Create(c.Request().Context(), user.ID, ports.CreateLetterInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, letter)
}

// Update handles PUT /api/letters/:id as a partial update.
//
// @Summary      Update a letter
// @Tags         letters
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Letter id"
// @Param        body  body      letterRequest  true  "Fields to change"
// @Success      200   {object}  domain.Letter
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/letters/{id} [put]
func (h *LetterHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req letterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	letter, err := h.service.Update(c.Request().Context(), user.ID, c.Param("id"), ports.LetterUpdate{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, letter)
}

// Delete handles DELETE /api/letters/:id. The remote Drive copy, if any, is
// deliberately left in place.
//
// @Summary      Delete a letter
// @Tags         letters
// @Produce      json
// @Param        id   path      string  true  "Letter id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/letters/{id} [delete]
func (h *LetterHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Letter deleted successfully"})
}
