package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/flashmarket/backend/internal/models"
	"github.com/flashmarket/backend/internal/repo"
	"github.com/flashmarket/backend/internal/transport"
)

// OrderService owns the cart-to-order lifecycle. A cart item is just an
// order row with status "In Cart".
type OrderService struct {
	Repo *repo.GormRepo
	Now  func() time.Time
}

func NewOrderService(r *repo.GormRepo) *OrderService {
	return &OrderService{Repo: r, Now: time.Now}
}

// AddToCart creates an order forced into the "In Cart" status. Whatever
// status the caller supplied is ignored.
func (s *OrderService) AddToCart(ctx context.Context, req transport.OrderRequest) (*models.Order, error) {
	productID, userID, quantity, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ProductID: productID,
		UserID:    userID,
		Quantity:  quantity,
		Status:    models.OrderStatusInCart,
		OrderDate: s.Now(),
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, order.ID)
}

// PlaceOrder creates an order, flattening a caller-supplied shipping block
// onto the row. The status defaults to PENDING only when the caller did not
// provide one.
func (s *OrderService) PlaceOrder(ctx context.Context, req transport.OrderRequest) (*models.Order, error) {
	productID, userID, quantity, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}

	order := &models.Order{
		ProductID: productID,
		UserID:    userID,
		Quantity:  quantity,
		Status:    status,
		OrderDate: s.Now(),
	}
	if sd := req.ShippingDetails; sd != nil {
		order.ShippingFirstName = sd.FirstName
		order.ShippingLastName = sd.LastName
		order.ShippingAddress = sd.Address
		order.ShippingCity = sd.City
		order.ShippingState = sd.State
		order.ShippingZipCode = sd.ZipCode
		order.ShippingCountry = sd.Country
		order.ShippingPhone = sd.Phone
		order.PaymentMethod = sd.PaymentMethod
		order.CardLastFour = sd.CardLastFour
	}

	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, order.ID)
}

// UpdateCartQuantity overwrites the quantity unconditionally; the creation
// time minimum is not re-validated here.
func (s *OrderService) UpdateCartQuantity(ctx context.Context, id uint, quantity int) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Quantity = quantity
	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus overwrites the status with no allowed-transition check.
// The four well-known statuses are named in models; anything non-empty is
// accepted verbatim.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = status
	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CancelOrder deletes the order unconditionally once it resolves; there is no
// state guard, an ACCEPTED order deletes the same way a cart item does.
func (s *OrderService) CancelOrder(ctx context.Context, id uint) error {
	if _, err := s.GetOrder(ctx, id); err != nil {
		return err
	}
	return s.Repo.DeleteOrder(ctx, id)
}

// RemoveFromCart is CancelOrder under the cart vocabulary.
func (s *OrderService) RemoveFromCart(ctx context.Context, id uint) error {
	return s.CancelOrder(ctx, id)
}

// ClearCart deletes every "In Cart" order of the user. An empty cart is a
// successful no-op.
func (s *OrderService) ClearCart(ctx context.Context, userID uint) error {
	items, err := s.Repo.ListCartItems(ctx, userID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.Repo.DeleteOrder(ctx, item.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrdersByUser(ctx, userID)
}

func (s *OrderService) ListCartItems(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListCartItems(ctx, userID)
}

func (s *OrderService) ListByProductOwner(ctx context.Context, ownerID uint) ([]models.Order, error) {
	return s.Repo.ListOrdersByProductOwner(ctx, ownerID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListAllOrders(ctx)
}

// resolveRefs checks the product and user references and normalizes the
// quantity: absent or < 1 becomes 1.
func (s *OrderService) resolveRefs(ctx context.Context, req transport.OrderRequest) (uint, uint, int, error) {
	if req.Product == nil || req.Product.ID == 0 {
		return 0, 0, 0, fmt.Errorf("%w: product id is required", ErrValidation)
	}
	if req.User == nil || req.User.ID == 0 {
		return 0, 0, 0, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, req.Product.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, 0, fmt.Errorf("%w: product %d does not exist", ErrValidation, req.Product.ID)
		}
		return 0, 0, 0, err
	}
	if _, err := s.Repo.GetUser(ctx, req.User.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, 0, fmt.Errorf("%w: user %d does not exist", ErrValidation, req.User.ID)
		}
		return 0, 0, 0, err
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	return req.Product.ID, req.User.ID, quantity, nil
}
