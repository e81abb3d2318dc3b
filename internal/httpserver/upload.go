package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flashmarket/backend/internal/logging"
	"github.com/flashmarket/backend/internal/storage"
)

type UploadHTTP struct {
	Store *storage.FileStore
	// BaseURL prefixes returned file URLs, e.g. "http://localhost:9090".
	// Empty leaves the path relative.
	BaseURL string
}

func (h *UploadHTTP) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload.image")

	fh, err := c.FormFile("file")
	if err != nil {
		l.Warn("upload_error", "status", 400, "reason", "no file provided", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Please select a file to upload")
	}
	if fh.Size == 0 {
		l.Warn("upload_error", "status", 400, "reason", "file is empty")
		return echo.NewHTTPError(http.StatusBadRequest, "Please select a file to upload")
	}

	data, err := readFormFile(fh)
	if err != nil {
		l.Error("upload_error", "status", 500, "reason", "cannot read file", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload file")
	}

	path, err := h.Store.SaveUpload(data, fh.Filename)
	if err != nil {
		l.Error("upload_error", "status", 500, "reason", "cannot store file", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload file")
	}

	l.Info("upload_success", "path", path, "size", fh.Size)
	return c.JSON(http.StatusOK, echo.Map{"fileUrl": h.BaseURL + path})
}

func (h *UploadHTTP) GetImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload.get_image")

	data, err := h.Store.ReadFile(c.Param("filename"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			l.Warn("get_image_error", "status", 404, "reason", "file not found")
			return echo.NewHTTPError(http.StatusNotFound, "file not found")
		}
		l.Error("get_image_error", "status", 500, "reason", "cannot read file", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read file")
	}

	contentType := http.DetectContentType(data)
	return c.Blob(http.StatusOK, contentType, data)
}
