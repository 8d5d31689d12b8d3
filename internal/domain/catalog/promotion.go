package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Promotion represents a percentage discount that can be attached to products.
// The discount is stored as a fraction in [0, 1).
type Promotion struct {
	shared.BaseAggregateRoot
	Discount decimal.Decimal `gorm:"type:decimal(4,3);not null"`
}

// TableName returns the table name for GORM
func (Promotion) TableName() string {
	return "promotions"
}

// NewPromotion creates a new promotion
func NewPromotion(discount decimal.Decimal) (*Promotion, error) {
	if err := validateDiscount(discount); err != nil {
		return nil, err
	}

	return &Promotion{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Discount:          discount,
	}, nil
}

// UpdateDiscount replaces the discount fraction
func (p *Promotion) UpdateDiscount(discount decimal.Decimal) error {
	if err := validateDiscount(discount); err != nil {
		return err
	}

	p.Discount = discount
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Percent renders the discount as a whole percentage, e.g. "25%"
func (p *Promotion) Percent() string {
	return fmt.Sprintf("%s%%", p.Discount.Mul(decimal.NewFromInt(100)).Truncate(0).String())
}

func validateDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be less than 1")
	}
	return nil
}
