package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// ProductHandler handles product API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	Title       string          `json:"title" binding:"required,min=1,max=200"`
	Slug        string          `json:"slug" binding:"omitempty,max=200"`
	Description string          `json:"description" binding:"max=5000"`
	PromotionID *string         `json:"promotion_id" binding:"omitempty,uuid"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Inventory   int             `json:"inventory" binding:"gte=0"`
}

// UpdateProductRequest represents a request to update a product.
// Omitted fields are left unchanged; an explicit empty promotion_id
// detaches the promotion.
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id" binding:"omitempty,uuid"`
	Title       *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	PromotionID *string          `json:"promotion_id"`
	Price       *decimal.Decimal `json:"price"`
	Inventory   *int             `json:"inventory" binding:"omitempty,gte=0"`
}

// ListProductsQuery represents product listing query parameters
type ListProductsQuery struct {
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	PriceGT    string `form:"price_gt"`
	PriceLT    string `form:"price_lt"`
	Search     string `form:"search"`
	InStock    bool   `form:"in_stock"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// Create adds a new product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	appReq := catalogapp.CreateProductRequest{
		CategoryID:  categoryID,
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Inventory:   req.Inventory,
	}

	if req.PromotionID != nil && *req.PromotionID != "" {
		promotionID, err := uuid.Parse(*req.PromotionID)
		if err != nil {
			h.BadRequest(c, "Invalid promotion ID format")
			return
		}
		appReq.PromotionID = &promotionID
	}

	product, err := h.productService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// GetBySlug retrieves a product by its slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// List retrieves products with optional category, price range and
// title prefix filters
func (h *ProductHandler) List(c *gin.Context) {
	var query ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	req := catalogapp.ListProductsRequest{
		TitlePrefix: query.Search,
		InStockOnly: query.InStock,
		Page:        query.Page,
		PageSize:    query.PageSize,
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	if query.CategoryID != "" {
		categoryID, err := uuid.Parse(query.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return
		}
		req.CategoryID = &categoryID
	}

	if query.PriceGT != "" {
		price, err := decimal.NewFromString(query.PriceGT)
		if err != nil {
			h.BadRequest(c, "Invalid price_gt value")
			return
		}
		req.PriceGT = &price
	}

	if query.PriceLT != "" {
		price, err := decimal.NewFromString(query.PriceLT)
		if err != nil {
			h.BadRequest(c, "Invalid price_lt value")
			return
		}
		req.PriceLT = &price
	}

	products, total, err := h.productService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, req.Page, req.PageSize)
}

// Update modifies a product identified by its slug
func (h *ProductHandler) Update(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := catalogapp.UpdateProductRequest{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Inventory:   req.Inventory,
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return
		}
		appReq.CategoryID = &categoryID
	}

	if req.PromotionID != nil {
		if *req.PromotionID == "" {
			appReq.ClearPromotion = true
		} else {
			promotionID, err := uuid.Parse(*req.PromotionID)
			if err != nil {
				h.BadRequest(c, "Invalid promotion ID format")
				return
			}
			appReq.PromotionID = &promotionID
		}
	}

	product, err := h.productService.Update(c.Request.Context(), c.Param("slug"), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a product from the catalog
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
