package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Title)
	if err != nil {
		return nil, err
	}

	if req.IsActive {
		category.Activate()
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category, 0), nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.categoryRepo.CountProducts(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	return ToCategoryResponse(category, countFor(counts, id)), nil
}

// List retrieves all categories annotated with their product counts
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(categories))
	for i := range categories {
		ids[i] = categories[i].ID
	}

	counts, err := s.categoryRepo.CountProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *ToCategoryResponse(&categories[i], countFor(counts, categories[i].ID)))
	}
	return responses, nil
}

// Update updates a category's title or active flag
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := category.Update(*req.Title); err != nil {
			return nil, err
		}
	}

	if req.IsActive != nil {
		if *req.IsActive {
			category.Activate()
		} else {
			category.Deactivate()
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	counts, err := s.categoryRepo.CountProducts(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	return ToCategoryResponse(category, countFor(counts, id)), nil
}

// Delete removes a category. Deletion is blocked while products still
// reference it; the repository surfaces that as shared.ErrInUse.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, id)
}

func countFor(counts []catalog.CategoryProductCount, id uuid.UUID) int64 {
	for _, c := range counts {
		if c.CategoryID == id {
			return c.ProductCount
		}
	}
	return 0
}
