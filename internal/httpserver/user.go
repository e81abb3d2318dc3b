package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flashmarket/backend/internal/logging"
	"github.com/flashmarket/backend/internal/mykafka"
	"github.com/flashmarket/backend/internal/service"
	"github.com/flashmarket/backend/internal/transport"
)

type UserHTTP struct {
	Svc      *service.UserService
	Producer mykafka.Publisher
}

func (h *UserHTTP) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *UserHTTP) GetUserByEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_by_email")

	user, err := h.Svc.GetByEmail(ctx, c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_by_email_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("get_by_email_error", "status", 500, "reason", "cannot fetch user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch user")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req transport.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("register_error", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("register_error", "status", 500, "reason", "cannot register user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot register user")
	}

	h.publish(c, map[string]any{"type": "user_registered", "userID": user.ID})
	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) GetUserByID(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_by_id")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("get_by_id_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	user, err := h.Svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_by_id_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("get_by_id_error", "status", 500, "reason", "cannot fetch user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch user")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("update_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("update_error", "status", 500, "reason", "cannot update user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update user")
	}

	h.publish(c, map[string]any{"type": "user_updated", "userID": user.ID})
	l.Info("update_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

// GetProfile resolves the user from the caller-supplied X-User-ID header.
func (h *UserHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_profile")

	id, err := parseID(c.Request().Header.Get("X-User-ID"))
	if err != nil {
		l.Warn("get_profile_error", "status", 400, "reason", "missing or invalid X-User-ID")
		return echo.NewHTTPError(http.StatusBadRequest, "missing or invalid X-User-ID")
	}

	user, err := h.Svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_profile_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		l.Error("get_profile_error", "status", 500, "reason", "cannot fetch profile", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching profile")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_profile")

	id, err := parseID(c.Request().Header.Get("X-User-ID"))
	if err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "missing or invalid X-User-ID")
		return echo.NewHTTPError(http.StatusBadRequest, "missing or invalid X-User-ID")
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_profile_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		l.Error("update_profile_error", "status", 500, "reason", "cannot update profile", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating profile")
	}

	h.publish(c, map[string]any{"type": "user_profile_updated", "userID": user.ID})
	l.Info("update_profile_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}
