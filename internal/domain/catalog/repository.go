package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductFilter narrows product list queries
type ProductFilter struct {
	shared.Filter
	CategoryID  *uuid.UUID
	PriceGT     *decimal.Decimal
	PriceLT     *decimal.Decimal
	TitlePrefix string
	InStockOnly bool
}

// CategoryProductCount pairs a category with the number of products in it
type CategoryProductCount struct {
	CategoryID   uuid.UUID
	ProductCount int64
}

// PromotionProductCount pairs a promotion with the number of products using it
type PromotionProductCount struct {
	PromotionID  uuid.UUID
	ProductCount int64
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	CountProducts(ctx context.Context, ids []uuid.UUID) ([]CategoryProductCount, error)
	Save(ctx context.Context, category *Category) error
	// Delete removes a category. It returns shared.ErrInUse when products
	// still reference the category.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PromotionRepository defines persistence operations for promotions
type PromotionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Promotion, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Promotion, error)
	CountProducts(ctx context.Context, ids []uuid.UUID) ([]PromotionProductCount, error)
	Save(ctx context.Context, promotion *Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, product *Product) error
	// Delete removes a product. It returns shared.ErrInUse when order
	// items still reference the product.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductCoverRepository defines persistence operations for cover images
type ProductCoverRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductCover, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductCover, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	Save(ctx context.Context, cover *ProductCover) error
	Delete(ctx context.Context, id uuid.UUID) error
}
