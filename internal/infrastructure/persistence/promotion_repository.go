package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPromotionRepository implements catalog.PromotionRepository using GORM
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewGormPromotionRepository creates a new GormPromotionRepository
func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// FindByID finds a promotion by its ID
func (r *GormPromotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Promotion, error) {
	var promotion catalog.Promotion
	if err := r.db.WithContext(ctx).First(&promotion, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &promotion, nil
}

// FindAll finds promotions matching the filter
func (r *GormPromotionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Promotion, error) {
	var promotions []catalog.Promotion
	query := r.db.WithContext(ctx).Model(&catalog.Promotion{})

	if filter.Limit() > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	if err := query.Order("created_at DESC").Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

// CountProducts returns per-promotion product counts for the given IDs
func (r *GormPromotionRepository) CountProducts(ctx context.Context, ids []uuid.UUID) ([]catalog.PromotionProductCount, error) {
	if len(ids) == 0 {
		return []catalog.PromotionProductCount{}, nil
	}

	var counts []catalog.PromotionProductCount
	err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Select("promotion_id AS promotion_id, COUNT(*) AS product_count").
		Where("promotion_id IN ?", ids).
		Group("promotion_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// Save persists a promotion
func (r *GormPromotionRepository) Save(ctx context.Context, promotion *catalog.Promotion) error {
	return r.db.WithContext(ctx).Save(promotion).Error
}

// Delete removes a promotion. Products referencing it are detached
// first so they fall back to their base price.
func (r *GormPromotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&catalog.Product{}).
			Where("promotion_id = ?", id).
			Update("promotion_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&catalog.Promotion{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
