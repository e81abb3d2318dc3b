package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/flashmarket/backend/internal/middleware/auth"
	"github.com/flashmarket/backend/internal/middleware/csrf"
)

type Deps struct {
	DB             *gorm.DB
	ProductHandler *ProductHTTP
	OrderHandler   *OrderHTTP
	UserHandler    *UserHTTP
	OwnerHandler   *OwnerHTTP
	UploadHandler  *UploadHTTP
	SearchHandler  *SearchHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.GET("/search", d.SearchHandler.Search)

	cart := api.Group("/cart")
	cart.POST("", d.OrderHandler.AddToCart)
	cart.GET("/user/:userId", d.OrderHandler.GetCartItems)
	cart.PUT("/:orderId", d.OrderHandler.UpdateCartItem)
	cart.DELETE("/:orderId", d.OrderHandler.RemoveFromCart)
	cart.DELETE("/clear/:userId", d.OrderHandler.ClearCart)

	orders := api.Group("/orders")
	orders.POST("", d.OrderHandler.PlaceOrder)
	orders.GET("/:orderId", d.OrderHandler.GetOrder)
	orders.GET("/user/:userId", d.OrderHandler.GetOrdersByUser)
	orders.GET("/owner/:ownerId", d.OrderHandler.GetOrdersByProductOwner)
	orders.DELETE("/:orderId", d.OrderHandler.CancelOrder)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.GET("/approved", d.ProductHandler.GetApprovedProducts)
	products.GET("/owner/:ownerId", d.ProductHandler.GetProductsByOwner)
	products.POST("", d.ProductHandler.CreateProduct)
	products.POST("/upload", d.UploadHandler.UploadImage)
	products.GET("/uploads/:filename", d.UploadHandler.GetImage)

	users := api.Group("/users")
	users.GET("/email/:email", d.UserHandler.GetUserByEmail)
	users.POST("/register", d.UserHandler.Register)
	users.GET("/id/:id", d.UserHandler.GetUserByID)
	users.PUT("/update/:id", d.UserHandler.UpdateUser)
	users.GET("/profile", d.UserHandler.GetProfile)
	users.PUT("/profile", d.UserHandler.UpdateProfile)

	owners := api.Group("/owners")
	owners.POST("/register", d.OwnerHandler.Register)
	owners.GET("/:id", d.OwnerHandler.GetOwner)

	// Moderation surface: approve/delete products, run the order workflow.
	// Cookie-authenticated, so mutations also need the CSRF token.
	admin := api.Group("", csrf.Middleware(csrf.DefaultConfig()), auth.RequireAdmin(d.JWTSecret))
	admin.PUT("/products/:id/approve", d.ProductHandler.ApproveProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.PUT("/orders/:orderId", d.OrderHandler.UpdateOrderStatus)
	admin.GET("/orders", d.OrderHandler.GetAllOrders)
	admin.DELETE("/owners/:id", d.OwnerHandler.DeleteOwner)
}
