package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// PromotionHandler handles promotion API endpoints
type PromotionHandler struct {
	BaseHandler
	promotionService *catalogapp.PromotionService
}

// NewPromotionHandler creates a new PromotionHandler
func NewPromotionHandler(promotionService *catalogapp.PromotionService) *PromotionHandler {
	return &PromotionHandler{
		promotionService: promotionService,
	}
}

// CreatePromotionRequest represents a request to create a new promotion
type CreatePromotionRequest struct {
	Discount decimal.Decimal `json:"discount" binding:"required"`
}

// UpdatePromotionRequest represents a request to change a promotion's discount
type UpdatePromotionRequest struct {
	Discount decimal.Decimal `json:"discount" binding:"required"`
}

// Create adds a new promotion
func (h *PromotionHandler) Create(c *gin.Context) {
	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	promotion, err := h.promotionService.Create(c.Request.Context(), catalogapp.CreatePromotionRequest{
		Discount: req.Discount,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, promotion)
}

// GetByID retrieves a promotion by its ID
func (h *PromotionHandler) GetByID(c *gin.Context) {
	promotionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID format")
		return
	}

	promotion, err := h.promotionService.GetByID(c.Request.Context(), promotionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, promotion)
}

// List retrieves promotions with their product counts
func (h *PromotionHandler) List(c *gin.Context) {
	var req dto.ListRequest
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

	promotions, err := h.promotionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, promotions)
}

// Update changes a promotion's discount. Prices derived from the
// promotion change immediately; already placed orders keep their
// frozen prices.
func (h *PromotionHandler) Update(c *gin.Context) {
	promotionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID format")
		return
	}

	var req UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	promotion, err := h.promotionService.UpdateDiscount(c.Request.Context(), promotionID, req.Discount)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, promotion)
}

// Delete removes a promotion. Products referencing it fall back to
// their base price.
func (h *PromotionHandler) Delete(c *gin.Context) {
	promotionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID format")
		return
	}

	if err := h.promotionService.Delete(c.Request.Context(), promotionID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
