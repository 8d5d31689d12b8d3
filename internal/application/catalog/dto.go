package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateCategoryRequest carries the fields for a new category
type CreateCategoryRequest struct {
	Title    string
	IsActive bool
}

// UpdateCategoryRequest carries the mutable category fields
type UpdateCategoryRequest struct {
	Title    *string
	IsActive *bool
}

// CategoryResponse is the API view of a category
type CategoryResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	IsActive     bool      `json:"is_active"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreatePromotionRequest carries the discount for a new promotion
type CreatePromotionRequest struct {
	Discount decimal.Decimal
}

// PromotionResponse is the API view of a promotion
type PromotionResponse struct {
	ID           string          `json:"id"`
	Discount     decimal.Decimal `json:"discount"`
	Percent      string          `json:"percent"`
	ProductCount int64           `json:"product_count"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateProductRequest carries the fields for a new product
type CreateProductRequest struct {
	CategoryID  uuid.UUID
	Title       string
	Slug        string // optional; derived from Title when empty
	Description string
	PromotionID *uuid.UUID
	Price       decimal.Decimal
	Inventory   int
}

// UpdateProductRequest carries the mutable product fields.
// Nil pointers leave the field unchanged; PromotionID uses ClearPromotion
// to distinguish "unchanged" from "detach".
type UpdateProductRequest struct {
	CategoryID     *uuid.UUID
	Title          *string
	Description    *string
	PromotionID    *uuid.UUID
	ClearPromotion bool
	Price          *decimal.Decimal
	Inventory      *int
}

// ListProductsRequest narrows the product listing
type ListProductsRequest struct {
	CategoryID  *uuid.UUID
	PriceGT     *decimal.Decimal
	PriceLT     *decimal.Decimal
	TitlePrefix string
	InStockOnly bool
	Page        int
	PageSize    int
}

// ProductResponse is the API view of a product
type ProductResponse struct {
	ID          string                 `json:"id"`
	CategoryID  string                 `json:"category_id"`
	Title       string                 `json:"title"`
	Slug        string                 `json:"slug"`
	Description string                 `json:"description"`
	Promotion   *PromotionResponse     `json:"promotion,omitempty"`
	Price       decimal.Decimal        `json:"price"`
	FinalPrice  decimal.Decimal        `json:"final_price"`
	Inventory   int                    `json:"inventory"`
	Available   bool                   `json:"available"`
	Covers      []ProductCoverResponse `json:"covers,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ProductCoverResponse is the API view of a cover image
type ProductCoverResponse struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
	SortOrder   int    `json:"sort_order"`
	DownloadURL string `json:"download_url,omitempty"`
}

// ToCategoryResponse maps a domain category with its product count
func ToCategoryResponse(c *catalog.Category, productCount int64) *CategoryResponse {
	return &CategoryResponse{
		ID:           c.ID.String(),
		Title:        c.Title,
		IsActive:     c.IsActive,
		ProductCount: productCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToPromotionResponse maps a domain promotion with its product count
func ToPromotionResponse(p *catalog.Promotion, productCount int64) *PromotionResponse {
	return &PromotionResponse{
		ID:           p.ID.String(),
		Discount:     p.Discount,
		Percent:      p.Percent(),
		ProductCount: productCount,
		CreatedAt:    p.CreatedAt,
	}
}

// ToProductResponse maps a domain product
func ToProductResponse(p *catalog.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:          p.ID.String(),
		CategoryID:  p.CategoryID.String(),
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		FinalPrice:  p.FinalPrice(),
		Inventory:   p.Inventory,
		Available:   p.Available(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	if p.Promotion != nil {
		resp.Promotion = ToPromotionResponse(p.Promotion, 0)
	}

	for i := range p.Covers {
		resp.Covers = append(resp.Covers, *ToProductCoverResponse(&p.Covers[i], ""))
	}

	return resp
}

// ToProductCoverResponse maps a cover, optionally carrying a presigned URL
func ToProductCoverResponse(c *catalog.ProductCover, downloadURL string) *ProductCoverResponse {
	return &ProductCoverResponse{
		ID:          c.ID.String(),
		FileName:    c.FileName,
		ContentType: c.ContentType,
		FileSize:    c.FileSize,
		SortOrder:   c.SortOrder,
		DownloadURL: downloadURL,
	}
}
