package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// MembershipTier is the customer's loyalty tier
type MembershipTier string

const (
	TierGold   MembershipTier = "gold"
	TierSilver MembershipTier = "silver"
	TierBronze MembershipTier = "bronze"
)

// IsValid checks if the tier is a known value
func (t MembershipTier) IsValid() bool {
	switch t {
	case TierGold, TierSilver, TierBronze:
		return true
	default:
		return false
	}
}

// Customer is the shopping profile attached one-to-one to a user account.
// It is provisioned synchronously when the account is created; the unique
// index on user_id keeps provisioning idempotent.
type Customer struct {
	shared.BaseAggregateRoot
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Tier       MembershipTier `gorm:"type:varchar(10);not null;default:'bronze'"`
	Address    string         `gorm:"type:varchar(512)"`
	PostalCode string         `gorm:"type:varchar(10)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new bronze-tier customer profile for a user
func NewCustomer(userID uuid.UUID) (*Customer, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User is required")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Tier:              TierBronze,
	}, nil
}

// UpdateContact replaces the shipping address and postal code
func (c *Customer) UpdateContact(address, postalCode string) error {
	address = strings.TrimSpace(address)
	postalCode = strings.TrimSpace(postalCode)

	if len(address) > 512 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 512 characters")
	}
	if len(postalCode) > 10 {
		return shared.NewDomainError("INVALID_POSTAL_CODE", "Postal code cannot exceed 10 characters")
	}

	c.Address = address
	c.PostalCode = postalCode
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetTier changes the membership tier (operator action)
func (c *Customer) SetTier(tier MembershipTier) error {
	if !tier.IsValid() {
		return shared.NewDomainError("INVALID_TIER", "Tier must be gold, silver or bronze")
	}

	c.Tier = tier
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}
