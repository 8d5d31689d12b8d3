package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// Cart is an anonymous, identifier-addressed collection of product lines
// preceding purchase. The ID doubles as the opaque cart token handed to the
// client, so it must stay unguessable (random v4 UUID).
type Cart struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	Items     []Item    `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// Item is one (product, quantity) line within a cart.
// (cart_id, product_id) is unique: adding the same product again merges
// into the existing line instead of creating a duplicate.
type Item struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_cart_product,priority:1"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_cart_product,priority:2"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID"`
	Quantity  int              `gorm:"not null"`
	CreatedAt time.Time        `gorm:"not null"`
	UpdatedAt time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "cart_items"
}

// NewCart creates a new empty cart with a fresh unguessable identifier
func NewCart() *Cart {
	return &Cart{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
}

// NewItem creates a new cart line
func NewItem(cartID, productID uuid.UUID, quantity int) (*Item, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Item{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// LinePrice returns the live price of the line: final price times quantity.
// Pricing is never cached on the cart; the price lock happens at checkout.
func (i *Item) LinePrice() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.FinalPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ValidateQuantity enforces the minimum line quantity
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	return nil
}
