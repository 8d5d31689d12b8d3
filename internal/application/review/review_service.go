package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/domain/shared"
)

// Notifier delivers a heads-up to the reviewer when a hidden review is
// purged. Delivery is best effort; failures must not block the purge.
type Notifier interface {
	NotifyReviewRemoved(ctx context.Context, userID, productID uuid.UUID) error
}

// Service handles review submission, moderation and the retention sweep
type Service struct {
	reviewRepo  review.Repository
	productRepo catalog.ProductRepository
	notifier    Notifier
	logger      *zap.Logger
}

// NewService creates a new review Service
func NewService(reviewRepo review.Repository, productRepo catalog.ProductRepository, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create submits a review. New reviews are hidden until an operator
// approves them.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product does not exist")
		}
		return nil, err
	}

	r, err := review.NewReview(userID, req.ProductID, req.Description, review.Recommendation(req.Recommendation))
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	return ToReviewResponse(r), nil
}

// ListForProduct returns a product's reviews. Hidden reviews are only
// included for operators.
func (s *Service) ListForProduct(ctx context.Context, productID uuid.UUID, includeHidden bool, filter shared.Filter) ([]ReviewResponse, error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, includeHidden, filter)
	if err != nil {
		return nil, err
	}
	return ToReviewResponses(reviews), nil
}

// SetVisibility applies a moderation decision to a review
func (s *Service) SetVisibility(ctx context.Context, reviewID uuid.UUID, visible bool) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	r.SetVisibility(visible)

	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	return ToReviewResponse(r), nil
}

// PurgeHidden deletes reviews that stayed hidden past the retention
// window and notifies each reviewer. Notification failures are logged
// and otherwise ignored so a down mail server never stalls the sweep.
func (s *Service) PurgeHidden(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-review.RetentionWindow)
	expired, err := s.reviewRepo.FindHiddenCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(expired))
	for i := range expired {
		ids = append(ids, expired[i].ID)
	}

	deleted, err := s.reviewRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	for i := range expired {
		r := &expired[i]
		if err := s.notifier.NotifyReviewRemoved(ctx, r.UserID, r.ProductID); err != nil {
			s.logger.Warn("review removal notification failed",
				zap.String("review_id", r.ID.String()),
				zap.String("user_id", r.UserID.String()),
				zap.Error(err))
		}
	}

	return deleted, nil
}
