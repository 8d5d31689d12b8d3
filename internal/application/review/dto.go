package review

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/review"
)

// CreateReviewRequest carries a new review submission
type CreateReviewRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	Description    string    `json:"description" binding:"required"`
	Recommendation string    `json:"recommendation" binding:"required"`
}

// SetVisibilityRequest carries a moderation decision
type SetVisibilityRequest struct {
	IsVisible bool `json:"is_visible"`
}

// ReviewResponse is the API view of a review
type ReviewResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	ProductID      string    `json:"product_id"`
	Description    string    `json:"description"`
	Recommendation string    `json:"recommendation"`
	IsVisible      bool      `json:"is_visible"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToReviewResponse maps a review to its API representation
func ToReviewResponse(r *review.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:             r.ID.String(),
		UserID:         r.UserID.String(),
		ProductID:      r.ProductID.String(),
		Description:    r.Description,
		Recommendation: string(r.Recommendation),
		IsVisible:      r.IsVisible,
		CreatedAt:      r.CreatedAt,
	}
}

// ToReviewResponses maps a slice of reviews
func ToReviewResponses(reviews []review.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *ToReviewResponse(&reviews[i]))
	}
	return responses
}
