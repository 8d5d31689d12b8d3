package catalog

import (
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// Category represents a product category in the catalog
type Category struct {
	shared.BaseAggregateRoot
	Title    string `gorm:"type:varchar(255);not null"`
	IsActive bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category. Categories start inactive and are
// activated by an operator once ready for the storefront.
func NewCategory(title string) (*Category, error) {
	if err := validateCategoryTitle(title); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		IsActive:          false,
	}, nil
}

// Update updates the category title
func (c *Category) Update(title string) error {
	if err := validateCategoryTitle(title); err != nil {
		return err
	}

	c.Title = strings.TrimSpace(title)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Activate makes the category visible for product assignment
func (c *Category) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Deactivate hides the category from product assignment
func (c *Category) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

func validateCategoryTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Category title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Category title cannot exceed 255 characters")
	}
	return nil
}
