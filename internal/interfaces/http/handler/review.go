package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	reviewapp "github.com/storefront/backend/internal/application/review"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// ReviewHandler handles product review API endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService  *reviewapp.Service
	productService *catalogapp.ProductService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *reviewapp.Service, productService *catalogapp.ProductService) *ReviewHandler {
	return &ReviewHandler{
		reviewService:  reviewService,
		productService: productService,
	}
}

// CreateReviewRequest represents a review submission
type CreateReviewRequest struct {
	Description    string `json:"description" binding:"required,min=1,max=5000"`
	Recommendation string `json:"recommendation" binding:"required"`
}

// resolveProductID maps the slug in the route to a product ID
func (h *ReviewHandler) resolveProductID(c *gin.Context) (uuid.UUID, error) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(product.ID)
}

// Create submits a review for a product. New reviews start hidden and
// stay invisible until an operator approves them.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := h.resolveProductID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), userID, reviewapp.CreateReviewRequest{
		ProductID:      productID,
		Description:    req.Description,
		Recommendation: req.Recommendation,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, review)
}

// List retrieves a product's visible reviews. Operators may pass
// include_hidden to also see reviews pending moderation.
func (h *ReviewHandler) List(c *gin.Context) {
	productID, err := h.resolveProductID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

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

	includeHidden := middleware.IsOperator(c) && c.Query("include_hidden") == "true"

	reviews, err := h.reviewService.ListForProduct(c.Request.Context(), productID, includeHidden, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reviews)
}

// SetVisibility approves or hides a review
func (h *ReviewHandler) SetVisibility(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	var req reviewapp.SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.SetVisibility(c.Request.Context(), reviewID, req.IsVisible)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, review)
}
