package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Product represents a sellable item in the catalog.
// It is the aggregate root for product-related operations.
type Product struct {
	shared.BaseAggregateRoot
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:varchar(255);not null"`
	Slug        string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string          `gorm:"type:text"`
	PromotionID *uuid.UUID      `gorm:"type:uuid;index"`
	Promotion   *Promotion      `gorm:"foreignKey:PromotionID"`
	Price       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Inventory   int             `gorm:"not null;default:0"`
	Covers      []ProductCover  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(categoryID uuid.UUID, title, slug, description string, price decimal.Decimal, inventory int) (*Product, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	if err := validateProductTitle(title); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateInventory(inventory); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CategoryID:        categoryID,
		Title:             strings.TrimSpace(title),
		Slug:              slug,
		Description:       description,
		Price:             price,
		Inventory:         inventory,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(title, description string) error {
	if err := validateProductTitle(title); err != nil {
		return err
	}

	p.Title = strings.TrimSpace(title)
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrice replaces the base price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}

	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetInventory replaces the on-hand inventory count
func (p *Product) SetInventory(inventory int) error {
	if err := validateInventory(inventory); err != nil {
		return err
	}

	p.Inventory = inventory
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCategory moves the product to another category
func (p *Product) SetCategory(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}

	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPromotion attaches a promotion, or detaches it when nil
func (p *Product) SetPromotion(promotion *Promotion) {
	p.Promotion = promotion
	if promotion != nil {
		p.PromotionID = &promotion.ID
	} else {
		p.PromotionID = nil
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Available reports whether the product can be added to a cart
func (p *Product) Available() bool {
	return p.Inventory > 0
}

// FinalPrice returns the price after the attached promotion, if any.
// The discounted price is floored to whole currency units, matching how
// the storefront has always displayed promotion pricing.
func (p *Product) FinalPrice() decimal.Decimal {
	if p.Promotion == nil {
		return p.Price
	}
	one := decimal.NewFromInt(1)
	return one.Sub(p.Promotion.Discount).Mul(p.Price).Floor()
}

func validateProductTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot exceed 255 characters")
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Product slug cannot be empty")
	}
	if len(slug) > 255 {
		return shared.NewDomainError("INVALID_SLUG", "Product slug cannot exceed 255 characters")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Product slug can only contain lowercase letters, digits and hyphens")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}
	return nil
}

func validateInventory(inventory int) error {
	if inventory < 0 {
		return shared.NewDomainError("INVALID_INVENTORY", "Inventory cannot be negative")
	}
	return nil
}

// Slugify derives a URL-safe slug from a product title
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
