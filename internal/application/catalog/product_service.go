package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductCache is a read-through cache keyed by product ID. Implementations
// must treat cache failures as misses; correctness never depends on it.
type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Product, bool)
	Set(ctx context.Context, product *catalog.Product)
	Invalidate(ctx context.Context, id uuid.UUID)
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo   catalog.ProductRepository
	categoryRepo  catalog.CategoryRepository
	promotionRepo catalog.PromotionRepository
	cache         ProductCache
}

// NewProductService creates a new ProductService. The cache is optional.
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	promotionRepo catalog.PromotionRepository,
	cache ProductCache,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		promotionRepo: promotionRepo,
		cache:         cache,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category is not active")
	}

	slug := req.Slug
	if slug == "" {
		slug = catalog.Slugify(req.Title)
	}

	exists, err := s.productRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
	}

	product, err := catalog.NewProduct(req.CategoryID, req.Title, slug, req.Description, req.Price, req.Inventory)
	if err != nil {
		return nil, err
	}

	if req.PromotionID != nil {
		promotion, err := s.promotionRepo.FindByID(ctx, *req.PromotionID)
		if err != nil {
			return nil, err
		}
		product.SetPromotion(promotion)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// GetByID retrieves a product by ID, serving from the cache when possible
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	if s.cache != nil {
		if product, ok := s.cache.Get(ctx, id); ok {
			return ToProductResponse(product), nil
		}
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, product)
	}

	return ToProductResponse(product), nil
}

// GetBySlug retrieves a product by its URL slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, product)
	}

	return ToProductResponse(product), nil
}

// List retrieves products matching the filter, plus the total count
func (s *ProductService) List(ctx context.Context, req ListProductsRequest) ([]ProductResponse, int64, error) {
	filter := catalog.ProductFilter{
		Filter:      shared.DefaultFilter(),
		CategoryID:  req.CategoryID,
		PriceGT:     req.PriceGT,
		PriceLT:     req.PriceLT,
		TitlePrefix: req.TitlePrefix,
		InStockOnly: req.InStockOnly,
	}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *ToProductResponse(&products[i]))
	}
	return responses, total, nil
}

// Update updates a product identified by slug
func (s *ProductService) Update(ctx context.Context, slug string, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		if err := product.SetCategory(*req.CategoryID); err != nil {
			return nil, err
		}
	}

	title := product.Title
	if req.Title != nil {
		title = *req.Title
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	if req.Title != nil || req.Description != nil {
		if err := product.Update(title, description); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}

	if req.Inventory != nil {
		if err := product.SetInventory(*req.Inventory); err != nil {
			return nil, err
		}
	}

	switch {
	case req.ClearPromotion:
		product.SetPromotion(nil)
	case req.PromotionID != nil:
		promotion, err := s.promotionRepo.FindByID(ctx, *req.PromotionID)
		if err != nil {
			return nil, err
		}
		product.SetPromotion(promotion)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, product.ID)
	}

	return ToProductResponse(product), nil
}

// Delete removes a product by slug. Products referenced by order history
// cannot be deleted; the repository surfaces that as shared.ErrInUse.
func (s *ProductService) Delete(ctx context.Context, slug string) error {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, product.ID)
	}

	return nil
}
