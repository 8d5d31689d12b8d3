package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// PromotionService handles promotion-related business operations
type PromotionService struct {
	promotionRepo catalog.PromotionRepository
}

// NewPromotionService creates a new PromotionService
func NewPromotionService(promotionRepo catalog.PromotionRepository) *PromotionService {
	return &PromotionService{promotionRepo: promotionRepo}
}

// Create creates a new promotion
func (s *PromotionService) Create(ctx context.Context, req CreatePromotionRequest) (*PromotionResponse, error) {
	promotion, err := catalog.NewPromotion(req.Discount)
	if err != nil {
		return nil, err
	}

	if err := s.promotionRepo.Save(ctx, promotion); err != nil {
		return nil, err
	}

	return ToPromotionResponse(promotion, 0), nil
}

// GetByID retrieves a promotion by ID
func (s *PromotionService) GetByID(ctx context.Context, id uuid.UUID) (*PromotionResponse, error) {
	promotion, err := s.promotionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.promotionRepo.CountProducts(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	return ToPromotionResponse(promotion, promoCountFor(counts, id)), nil
}

// List retrieves all promotions annotated with their product counts
func (s *PromotionService) List(ctx context.Context, filter shared.Filter) ([]PromotionResponse, error) {
	promotions, err := s.promotionRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(promotions))
	for i := range promotions {
		ids[i] = promotions[i].ID
	}

	counts, err := s.promotionRepo.CountProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]PromotionResponse, 0, len(promotions))
	for i := range promotions {
		responses = append(responses, *ToPromotionResponse(&promotions[i], promoCountFor(counts, promotions[i].ID)))
	}
	return responses, nil
}

// UpdateDiscount replaces a promotion's discount fraction
func (s *PromotionService) UpdateDiscount(ctx context.Context, id uuid.UUID, discount decimal.Decimal) (*PromotionResponse, error) {
	promotion, err := s.promotionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := promotion.UpdateDiscount(discount); err != nil {
		return nil, err
	}

	if err := s.promotionRepo.Save(ctx, promotion); err != nil {
		return nil, err
	}

	return ToPromotionResponse(promotion, 0), nil
}

// Delete removes a promotion. Products referencing it fall back to their
// base price (the foreign key nulls the reference).
func (s *PromotionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.promotionRepo.Delete(ctx, id)
}

func promoCountFor(counts []catalog.PromotionProductCount, id uuid.UUID) int64 {
	for _, c := range counts {
		if c.PromotionID == id {
			return c.ProductCount
		}
	}
	return 0
}
