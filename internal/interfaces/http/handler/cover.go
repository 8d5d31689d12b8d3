package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// CoverHandler handles product cover image API endpoints
type CoverHandler struct {
	BaseHandler
	coverService *catalogapp.CoverService
}

// NewCoverHandler creates a new CoverHandler
func NewCoverHandler(coverService *catalogapp.CoverService) *CoverHandler {
	return &CoverHandler{
		coverService: coverService,
	}
}

// CreateCoverRequest represents a request to register a cover image
type CreateCoverRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required,gt=0"`
}

// UpdateCoverRequest represents a request to reorder a cover image
type UpdateCoverRequest struct {
	SortOrder int `json:"sort_order" binding:"gte=0"`
}

// Create registers a cover for a product and returns a presigned
// upload URL for the image bytes
func (h *CoverHandler) Create(c *gin.Context) {
	var req CreateCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.coverService.Create(c.Request.Context(), c.Param("slug"), catalogapp.CreateCoverRequest{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		FileSize:    req.FileSize,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// List retrieves a product's covers with presigned download URLs
func (h *CoverHandler) List(c *gin.Context) {
	covers, err := h.coverService.List(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, covers)
}

// Update changes a cover's sort order
func (h *CoverHandler) Update(c *gin.Context) {
	coverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cover ID format")
		return
	}

	var req UpdateCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cover, err := h.coverService.SetSortOrder(c.Request.Context(), c.Param("slug"), coverID, req.SortOrder)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cover)
}

// Delete removes a cover image
func (h *CoverHandler) Delete(c *gin.Context) {
	coverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cover ID format")
		return
	}

	if err := h.coverService.Delete(c.Request.Context(), c.Param("slug"), coverID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
