package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Repository defines persistence operations for reviews
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	// FindByProduct lists reviews for one product. Hidden reviews are
	// included only when includeHidden is set (operator view).
	FindByProduct(ctx context.Context, productID uuid.UUID, includeHidden bool, filter shared.Filter) ([]Review, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindHiddenCreatedBefore returns reviews still hidden and older than
	// the cutoff, for the cleanup sweep.
	FindHiddenCreatedBefore(ctx context.Context, cutoff time.Time) ([]Review, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}
