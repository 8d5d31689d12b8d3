package router

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every API handler the storefront exposes
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Promotion *handler.PromotionHandler
	Cover     *handler.CoverHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
	Review    *handler.ReviewHandler
	Customer  *handler.CustomerHandler
	Health    *handler.HealthHandler
}

// APIRoutes wires the storefront surface under the versioned API group.
// Catalog reads and carts are public, checkout and profiles need a
// token, mutations of the catalog and moderation need the operator gate.
type APIRoutes struct {
	handlers Handlers
}

// NewAPIRoutes creates the route registrar for the API surface
func NewAPIRoutes(handlers Handlers) *APIRoutes {
	return &APIRoutes{handlers: handlers}
}

// RegisterRoutes implements RouteRegistrar
func (r *APIRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	operator := middleware.RequireOperator()

	rg.GET("/health", r.handlers.Health.Health)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", r.handlers.Auth.Register)
		auth.POST("/login", r.handlers.Auth.Login)
		auth.POST("/refresh", r.handlers.Auth.Refresh)
	}

	products := rg.Group("/products")
	{
		products.GET("", r.handlers.Product.List)
		products.POST("", operator, r.handlers.Product.Create)
		products.GET("/:slug", r.handlers.Product.GetBySlug)
		products.PATCH("/:slug", operator, r.handlers.Product.Update)
		products.DELETE("/:slug", operator, r.handlers.Product.Delete)

		products.GET("/:slug/covers", r.handlers.Cover.List)
		products.POST("/:slug/covers", operator, r.handlers.Cover.Create)
		products.PATCH("/:slug/covers/:id", operator, r.handlers.Cover.Update)
		products.DELETE("/:slug/covers/:id", operator, r.handlers.Cover.Delete)

		products.GET("/:slug/reviews", r.handlers.Review.List)
		products.POST("/:slug/reviews", r.handlers.Review.Create)
		products.PATCH("/:slug/reviews/:id", operator, r.handlers.Review.SetVisibility)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", r.handlers.Category.List)
		categories.POST("", operator, r.handlers.Category.Create)
		categories.GET("/:id", r.handlers.Category.GetByID)
		categories.PATCH("/:id", operator, r.handlers.Category.Update)
		categories.DELETE("/:id", operator, r.handlers.Category.Delete)
	}

	promotions := rg.Group("/promotions", operator)
	{
		promotions.GET("", r.handlers.Promotion.List)
		promotions.POST("", r.handlers.Promotion.Create)
		promotions.GET("/:id", r.handlers.Promotion.GetByID)
		promotions.PATCH("/:id", r.handlers.Promotion.Update)
		promotions.DELETE("/:id", r.handlers.Promotion.Delete)
	}

	cart := rg.Group("/cart")
	{
		cart.POST("", r.handlers.Cart.Create)
		cart.GET("/:id", r.handlers.Cart.Get)
		cart.DELETE("/:id", r.handlers.Cart.Delete)
		cart.POST("/:id/items", r.handlers.Cart.AddItem)
		cart.PATCH("/:id/items/:productID", r.handlers.Cart.UpdateItem)
		cart.DELETE("/:id/items/:productID", r.handlers.Cart.RemoveItem)
	}

	orders := rg.Group("/orders")
	{
		orders.POST("", r.handlers.Order.Checkout)
		orders.GET("", r.handlers.Order.List)
		orders.GET("/:id", r.handlers.Order.Get)
		orders.PATCH("/:id", operator, r.handlers.Order.SetDelivered)
	}

	customer := rg.Group("/customer")
	{
		customer.GET("/me", r.handlers.Customer.GetMe)
		customer.PUT("/me", r.handlers.Customer.UpdateMe)
	}

	customers := rg.Group("/customers", operator)
	{
		customers.PATCH("/:id/tier", r.handlers.Customer.SetTier)
	}
}
