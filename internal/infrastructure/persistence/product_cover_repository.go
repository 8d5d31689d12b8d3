package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductCoverRepository implements catalog.ProductCoverRepository
// using GORM
type GormProductCoverRepository struct {
	db *gorm.DB
}

// NewGormProductCoverRepository creates a new GormProductCoverRepository
func NewGormProductCoverRepository(db *gorm.DB) *GormProductCoverRepository {
	return &GormProductCoverRepository{db: db}
}

// FindByID finds a cover by its ID
func (r *GormProductCoverRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductCover, error) {
	var cover catalog.ProductCover
	if err := r.db.WithContext(ctx).First(&cover, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cover, nil
}

// FindByProduct lists a product's covers in display order
func (r *GormProductCoverRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductCover, error) {
	var covers []catalog.ProductCover
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sort_order ASC").
		Find(&covers).Error
	if err != nil {
		return nil, err
	}
	return covers, nil
}

// CountByProduct counts a product's covers
func (r *GormProductCoverRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&catalog.ProductCover{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a cover
func (r *GormProductCoverRepository) Save(ctx context.Context, cover *catalog.ProductCover) error {
	return r.db.WithContext(ctx).Save(cover).Error
}

// Delete removes a cover
func (r *GormProductCoverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ProductCover{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
