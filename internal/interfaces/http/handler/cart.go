package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartapp "github.com/storefront/backend/internal/application/cart"
)

// CartHandler handles anonymous cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.Service) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// AddItemRequest represents a request to add a product to a cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

// UpdateItemRequest represents a request to set a cart line's quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

// Create opens a new empty cart. No authentication is required; the
// cart ID returned here is the only handle the client gets.
func (h *CartHandler) Create(c *gin.Context) {
	cart, err := h.cartService.Create(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, cart)
}

// Get retrieves a cart with its lines priced at current catalog prices
func (h *CartHandler) Get(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	cart, err := h.cartService.View(c.Request.Context(), cartID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem adds a product to the cart. Adding a product already in the
// cart increments the existing line instead of creating a duplicate.
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	item, err := h.cartService.Add(c.Request.Context(), cartID, productID, req.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// UpdateItem sets a cart line's quantity to an absolute value
func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.cartService.Update(c.Request.Context(), cartID, productID, req.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// RemoveItem deletes a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), cartID, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete discards a cart and all its lines
func (h *CartHandler) Delete(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	if err := h.cartService.Delete(c.Request.Context(), cartID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
