package review

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// RetentionWindow is how long a review may stay hidden before the cleanup
// sweep removes it.
const RetentionWindow = 48 * time.Hour

// Recommendation is the reviewer's verdict on the product
type Recommendation string

const (
	RecommendationRecommend Recommendation = "recommend"
	RecommendationPoor      Recommendation = "poor"
	RecommendationNeutral   Recommendation = "neutral"
)

// IsValid checks if the recommendation is a known value
func (r Recommendation) IsValid() bool {
	switch r {
	case RecommendationRecommend, RecommendationPoor, RecommendationNeutral:
		return true
	default:
		return false
	}
}

// Review is a customer's product review. Reviews start hidden and become
// visible only through operator moderation; those left hidden past the
// retention window are purged by the cleanup sweep.
type Review struct {
	shared.BaseAggregateRoot
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Description    string         `gorm:"type:text;not null"`
	Recommendation Recommendation `gorm:"type:varchar(20);not null"`
	IsVisible      bool           `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a new hidden review
func NewReview(userID, productID uuid.UUID, description string, recommendation Recommendation) (*Review, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Review description cannot be empty")
	}
	if !recommendation.IsValid() {
		return nil, shared.NewDomainError("INVALID_RECOMMENDATION", "Recommendation must be recommend, poor or neutral")
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		ProductID:         productID,
		Description:       strings.TrimSpace(description),
		Recommendation:    recommendation,
		IsVisible:         false,
	}, nil
}

// SetVisibility flips the moderation flag
func (r *Review) SetVisibility(visible bool) {
	r.IsVisible = visible
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// ExpiredAt reports whether a still-hidden review has outlived the
// retention window at the given instant.
func (r *Review) ExpiredAt(now time.Time) bool {
	return !r.IsVisible && now.Sub(r.CreatedAt) > RetentionWindow
}
