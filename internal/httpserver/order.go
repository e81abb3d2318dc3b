package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flashmarket/backend/internal/logging"
	"github.com/flashmarket/backend/internal/mykafka"
	"github.com/flashmarket/backend/internal/service"
	"github.com/flashmarket/backend/internal/transport"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer mykafka.Publisher
}

func (h *OrderHTTP) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["orderID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *OrderHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.add_to_cart")

	var req transport.OrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.AddToCart(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("add_to_cart_error", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("add_to_cart_error", "status", 500, "reason", "cannot add item to cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add item to cart")
	}

	h.publish(c, map[string]any{
		"type":     "cart_item_added",
		"orderID":  order.ID,
		"userID":   order.UserID,
		"quantity": order.Quantity,
	})
	l.Info("add_to_cart_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) GetCartItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_cart_items")

	userID, err := parseID(c.Param("userId"))
	if err != nil {
		l.Warn("get_cart_items_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	items, err := h.Svc.ListCartItems(ctx, userID)
	if err != nil {
		l.Error("get_cart_items_error", "status", 500, "reason", "cannot fetch cart items", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch cart items")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *OrderHTTP) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_cart_item")

	orderID, err := parseID(c.Param("orderId"))
	if err != nil {
		l.Warn("update_cart_item_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateCartQuantity(ctx, orderID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_cart_item_error", "status", 404, "reason", "cart item not found")
			return echo.NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		l.Error("update_cart_item_error", "status", 500, "reason", "cannot update cart item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update cart item")
	}

	h.publish(c, map[string]any{
		"type":         "cart_item_updated",
		"orderID":      order.ID,
		"new_quantity": order.Quantity,
	})
	l.Info("update_cart_item_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.remove_from_cart")

	orderID, err := parseID(c.Param("orderId"))
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.RemoveFromCart(ctx, orderID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("remove_from_cart_error", "status", 404, "reason", "cart item not found")
			return echo.NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		l.Error("remove_from_cart_error", "status", 500, "reason", "cannot remove cart item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove cart item")
	}

	h.publish(c, map[string]any{"type": "cart_item_removed", "orderID": orderID})
	l.Info("remove_from_cart_success", "order_id", orderID)
	return c.JSON(http.StatusOK, echo.Map{"message": "Item removed from cart."})
}

func (h *OrderHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.clear_cart")

	userID, err := parseID(c.Param("userId"))
	if err != nil {
		l.Warn("clear_cart_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		l.Error("clear_cart_error", "status", 500, "reason", "cannot clear cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot clear cart")
	}

	h.publish(c, map[string]any{"type": "cart_cleared", "userID": userID})
	l.Info("clear_cart_success", "user_id", userID)
	return c.JSON(http.StatusOK, echo.Map{"message": "Cart cleared successfully."})
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place_order")

	var req transport.OrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PlaceOrder(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("place_order_error", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("place_order_error", "status", 500, "reason", "cannot place order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot place order")
	}

	h.publish(c, map[string]any{
		"type":    "order_placed",
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
	})
	l.Info("place_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	orderID, err := parseID(c.Param("orderId"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	order, err := h.Svc.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_error", "status", 404, "reason", "order not found")
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_error", "status", 500, "reason", "cannot fetch order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch order")
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) GetOrdersByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders_by_user")

	userID, err := parseID(c.Param("userId"))
	if err != nil {
		l.Warn("get_orders_by_user_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	orders, err := h.Svc.ListByUser(ctx, userID)
	if err != nil {
		l.Error("get_orders_by_user_error", "status", 500, "reason", "cannot fetch orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch orders")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrdersByProductOwner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders_by_owner")

	ownerID, err := parseID(c.Param("ownerId"))
	if err != nil {
		l.Warn("get_orders_by_owner_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	orders, err := h.Svc.ListByProductOwner(ctx, ownerID)
	if err != nil {
		l.Error("get_orders_by_owner_error", "status", 500, "reason", "cannot fetch orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch orders")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_order_status")

	orderID, err := parseID(c.Param("orderId"))
	if err != nil {
		l.Warn("update_order_status_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateOrderStatus(ctx, orderID, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_order_status_error", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_order_status_error", "status", 404, "reason", "order not found")
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("update_order_status_error", "status", 500, "reason", "cannot update order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update order")
	}

	h.publish(c, map[string]any{
		"type":    "order_status_updated",
		"orderID": order.ID,
		"status":  order.Status,
	})
	l.Info("update_order_status_success", "order_id", order.ID, "order_status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel_order")

	orderID, err := parseID(c.Param("orderId"))
	if err != nil {
		l.Warn("cancel_order_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.CancelOrder(ctx, orderID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("cancel_order_error", "status", 404, "reason", "order not found")
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("cancel_order_error", "status", 500, "reason", "cannot cancel order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot cancel order")
	}

	h.publish(c, map[string]any{"type": "order_cancelled", "orderID": orderID})
	l.Info("cancel_order_success", "order_id", orderID)
	return c.JSON(http.StatusOK, echo.Map{"message": "Order cancelled successfully."})
}

func (h *OrderHTTP) GetAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_all_orders")

	orders, err := h.Svc.ListAll(ctx)
	if err != nil {
		l.Error("get_all_orders_error", "status", 500, "reason", "cannot fetch orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch orders")
	}
	return c.JSON(http.StatusOK, orders)
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}
