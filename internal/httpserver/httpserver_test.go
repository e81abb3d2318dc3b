package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/flashmarket/backend/internal/config"
	"github.com/flashmarket/backend/internal/models"
	"github.com/flashmarket/backend/internal/repo"
	"github.com/flashmarket/backend/internal/service"
	"github.com/flashmarket/backend/internal/transport"
)

// fakePublisher records published events instead of talking to a broker.
type fakePublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	Topic string
	Key   string
	Event any
}

func (f *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	f.events = append(f.events, publishedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	DB       *gorm.DB
	Repo     *repo.GormRepo
	Orders   *OrderHTTP
	Products *ProductHTTP
	Users    *UserHTTP
	Owners   *OwnerHTTP
	Events   *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	r := repo.New(db)
	events := &fakePublisher{}

	return &testEnv{
		T:        t,
		E:        echo.New(),
		DB:       db,
		Repo:     r,
		Orders:   &OrderHTTP{Svc: service.NewOrderService(r), Producer: events},
		Products: &ProductHTTP{Svc: &service.CatalogService{Repo: r}, Producer: events},
		Users:    &UserHTTP{Svc: &service.UserService{Repo: r}, Producer: events},
		Owners:   &OwnerHTTP{Svc: &service.OwnerService{Repo: r}},
		Events:   events,
	}
}

func (env *testEnv) doJSONRequest(method, path string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seed(t *testing.T) (*models.ProductOwner, *models.User, *models.Product) {
	t.Helper()
	owner := &models.ProductOwner{Name: "o", Email: "o@example.com", Password: "x", Phone: "+1"}
	require.NoError(t, env.DB.Create(owner).Error)
	user := &models.User{Email: "u@example.com", Name: "u"}
	require.NoError(t, env.DB.Create(user).Error)
	product := &models.Product{Name: "p", Price: 10, ProductOwnerID: owner.ID}
	require.NoError(t, env.DB.Create(product).Error)
	return owner, user, product
}

func TestAddToCartHandler(t *testing.T) {
	env := newTestEnv(t)
	_, user, product := env.seed(t)

	load := map[string]any{
		"product":  map[string]any{"id": product.ID},
		"user":     map[string]any{"id": user.ID},
		"quantity": 2,
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/cart", load)
	require.NoError(t, env.Orders.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, models.OrderStatusInCart, resp.Status)
	require.Equal(t, 2, resp.Quantity)

	require.Len(t, env.Events.events, 1)
	require.Equal(t, "order_events", env.Events.events[0].Topic)
}

func TestAddToCartHandlerRejectsUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	_, user, _ := env.seed(t)

	load := map[string]any{
		"product": map[string]any{"id": 9999},
		"user":    map[string]any{"id": user.ID},
	}
	_, c := env.doJSONRequest(http.MethodPost, "/api/cart", load)

	err := env.Orders.AddToCart(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
	require.Empty(t, env.Events.events)
}

func TestPlaceOrderHandler(t *testing.T) {
	env := newTestEnv(t)
	_, user, product := env.seed(t)

	load := map[string]any{
		"product": map[string]any{"id": product.ID},
		"user":    map[string]any{"id": user.ID},
		"shippingDetails": map[string]any{
			"firstName": "Ada",
			"city":      "London",
		},
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/orders", load)
	require.NoError(t, env.Orders.PlaceOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, models.OrderStatusPending, resp.Status)
	require.Equal(t, "Ada", resp.ShippingFirstName)
	require.Equal(t, "London", resp.ShippingCity)
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	env := newTestEnv(t)
	_, user, product := env.seed(t)

	placed, err := env.Orders.Svc.PlaceOrder(context.Background(), orderReqFor(product.ID, user.ID))
	require.NoError(t, err)

	rec, c := env.doJSONRequest(http.MethodPut, "/api/orders/1", map[string]string{"status": "ACCEPTED"})
	c.SetParamNames("orderId")
	c.SetParamValues(fmt.Sprint(placed.ID))
	require.NoError(t, env.Orders.UpdateOrderStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ACCEPTED", resp.Status)
}

func TestCancelOrderHandlerNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	_, c := env.doJSONRequest(http.MethodDelete, "/api/orders/77", nil)
	c.SetParamNames("orderId")
	c.SetParamValues("77")

	err := env.Orders.CancelOrder(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestClearCartHandler(t *testing.T) {
	env := newTestEnv(t)
	_, user, product := env.seed(t)

	_, err := env.Orders.Svc.AddToCart(context.Background(), orderReqFor(product.ID, user.ID))
	require.NoError(t, err)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/cart/clear/1", nil)
	c.SetParamNames("userId")
	c.SetParamValues(fmt.Sprint(user.ID))
	require.NoError(t, env.Orders.ClearCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	items, err := env.Orders.Svc.ListCartItems(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestRegisterUserHandler(t *testing.T) {
	env := newTestEnv(t)

	load := map[string]string{"email": "new@example.com", "name": "New"}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/users/register", load)
	require.NoError(t, env.Users.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)
	require.Equal(t, "new@example.com", resp.Email)
	require.Len(t, env.Events.events, 1)
	require.Equal(t, "user_events", env.Events.events[0].Topic)
}

func TestGetProductHandlerProjectsImage(t *testing.T) {
	env := newTestEnv(t)
	owner, _, _ := env.seed(t)

	product := &models.Product{
		Name:           "img",
		Price:          5,
		ProductOwnerID: owner.ID,
		Image:          "https://images.unsplash.com/photo-1",
	}
	require.NoError(t, env.DB.Create(product).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(product.ID))
	require.NoError(t, env.Products.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t,
		"https://images.unsplash.com/photo-1?w=800&q=80&auto=format&fit=crop",
		resp["productImageBase64"],
	)
}

func TestApproveProductHandler(t *testing.T) {
	env := newTestEnv(t)
	_, _, product := env.seed(t)

	rec, c := env.doJSONRequest(http.MethodPut, "/api/products/1/approve", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(product.ID))
	require.NoError(t, env.Products.ApproveProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := env.Repo.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.True(t, got.Approved)
}

func TestRegisterOwnerHandler(t *testing.T) {
	env := newTestEnv(t)

	load := map[string]string{
		"productOwnerName":     "keeper",
		"productOwnerEmail":    "keeper@example.com",
		"productOwnerPassword": "pw",
		"productOwnerNumber":   "+7",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/owners/register", load)
	require.NoError(t, env.Owners.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "keeper", resp["productOwnerName"])
	// the credential never leaves the server
	require.NotContains(t, rec.Body.String(), "pw")
}

func orderReqFor(productID, userID uint) transport.OrderRequest {
	return transport.OrderRequest{
		Product: &transport.EntityRef{ID: productID},
		User:    &transport.EntityRef{ID: userID},
	}
}
