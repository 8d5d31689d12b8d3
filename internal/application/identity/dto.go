package identity

import (
	"time"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
)

// RegisterRequest carries a new account registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateContactRequest carries a customer profile update
type UpdateContactRequest struct {
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
}

// SetTierRequest carries an operator tier change
type SetTierRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// UserResponse is the API view of a user account
type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsOperator bool      `json:"is_operator"`
	CreatedAt  time.Time `json:"created_at"`
}

// CustomerResponse is the API view of a customer profile
type CustomerResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Tier       string    `json:"tier"`
	Address    string    `json:"address"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginResult bundles the authenticated user with their tokens
type LoginResult struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ToUserResponse maps a user to its API representation
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Username:   u.Username,
		Email:      u.Email,
		IsOperator: u.IsOperator,
		CreatedAt:  u.CreatedAt,
	}
}

// ToCustomerResponse maps a customer to its API representation
func ToCustomerResponse(c *identity.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:         c.ID.String(),
		UserID:     c.UserID.String(),
		Tier:       string(c.Tier),
		Address:    c.Address,
		PostalCode: c.PostalCode,
		CreatedAt:  c.CreatedAt,
	}
}
