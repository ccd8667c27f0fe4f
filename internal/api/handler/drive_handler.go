package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/ports"
)

// DriveHandler handles HTTP requests for the Drive sync operations.
type DriveHandler struct {
	service ports.DriveService
}

func NewDriveHandler(service ports.DriveService) *DriveHandler {
	return &DriveHandler{service: service}
}

type saveResponse struct {
	Message string `json:"message"`
	FileID  string `json:"fileId"`
}

// Save handles POST /api/drive/save/:id.
//
// @Summary      Save a letter to the caller's Google Drive
// @Tags         drive
// @Produce      json
// @Param        id   path      string  true  "Letter id"
// @Success      200  {object}  saveResponse
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/drive/save/{id} [post]
func (h *DriveHandler) Save(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	fileID, err := h.service.SaveLetter(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, saveResponse{
		Message: "Letter saved to Google Drive successfully",
		FileID:  fileID,
	})
}

// ListRemote handles GET /api/drive/letters. A user who never synced gets
// an empty array, not an error.
//
// @Summary      List the letters stored in the caller's Drive folder
// @Tags         drive
// @Produce      json
// @Success      200  {array}   domain.RemoteFile
// @Failure      500  {object}  map[string]string
// @Router       /api/drive/letters [get]
func (h *DriveHandler) ListRemote(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	files, err := h.service.ListRemote(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, files)
}

// DeleteRemote handles DELETE /api/drive/delete/:fileId.
//
// @Summary      Delete a file from the caller's Drive folder
// @Tags         drive
// @Produce      json
// @Param        fileId  path      string  true  "Drive file id"
// @Success      200     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/drive/delete/{fileId} [delete]
func (h *DriveHandler) DeleteRemote(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteRemote(c.Request().Context(), user, c.Param("fileId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "File deleted from Google Drive successfully"})
}
