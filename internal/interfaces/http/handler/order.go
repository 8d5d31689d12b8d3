package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles checkout and order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService    *checkoutapp.OrderService
	customerService *identityapp.CustomerService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *checkoutapp.OrderService, customerService *identityapp.CustomerService) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		customerService: customerService,
	}
}

// CheckoutRequest represents a request to turn a cart into an order
type CheckoutRequest struct {
	CartID string `json:"cart_id" binding:"required,uuid"`
}

// SetDeliveredRequest represents a request to flag an order delivered
type SetDeliveredRequest struct {
	IsDelivered bool `json:"is_delivered"`
}

// resolveCustomerID maps the authenticated user to their customer
// profile ID
func (h *OrderHandler) resolveCustomerID(c *gin.Context) (uuid.UUID, error) {
	userID, err := getUserID(c)
	if err != nil {
		return uuid.Nil, err
	}

	customer, err := h.customerService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(customer.ID)
}

// Checkout converts a cart into an order. Line prices are frozen at
// checkout time and the cart is destroyed; on any failure the cart is
// left intact.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cartID, err := uuid.Parse(req.CartID)
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	customerID, err := h.resolveCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), cartID, customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

// Get retrieves an order. Customers only see their own orders;
// operators see all.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	customerID, err := h.resolveCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), orderID, customerID, middleware.IsOperator(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// List retrieves the caller's orders, or all orders for operators
func (h *OrderHandler) List(c *gin.Context) {
	var req checkoutapp.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}

	customerID, err := h.resolveCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), customerID, middleware.IsOperator(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// SetDelivered flags an order as delivered. The flag is one-way; a
// delivered order cannot be flagged again.
func (h *OrderHandler) SetDelivered(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req SetDeliveredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if !req.IsDelivered {
		h.BadRequest(c, "Delivery flag cannot be cleared")
		return
	}

	order, err := h.orderService.SetDelivered(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}
