package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flashmarket/backend/internal/logging"
	"github.com/flashmarket/backend/internal/service"
	"github.com/flashmarket/backend/internal/transport"
)

type OwnerHTTP struct {
	Svc *service.OwnerService
}

func (h *OwnerHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "owner.register")

	var req transport.RegisterOwnerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	owner, err := h.Svc.Register(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("register_error", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("register_error", "status", 500, "reason", "cannot register owner", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot register owner")
	}

	l.Info("register_success", "owner_id", owner.ID)
	return c.JSON(http.StatusOK, owner)
}

func (h *OwnerHTTP) GetOwner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "owner.get")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("get_owner_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	owner, err := h.Svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_owner_error", "status", 404, "reason", "owner not found")
			return echo.NewHTTPError(http.StatusNotFound, "owner not found")
		}
		l.Error("get_owner_error", "status", 500, "reason", "cannot fetch owner", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch owner")
	}
	return c.JSON(http.StatusOK, owner)
}

func (h *OwnerHTTP) DeleteOwner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "owner.delete")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("delete_owner_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_owner_error", "status", 404, "reason", "owner not found")
			return echo.NewHTTPError(http.StatusNotFound, "owner not found")
		}
		l.Error("delete_owner_error", "status", 500, "reason", "cannot delete owner", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete owner")
	}

	l.Info("delete_owner_success", "owner_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Owner deleted successfully."})
}
