package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// Order is the durable, immutable record produced by checkout.
// After creation only the delivery flag ever changes, and only in one
// direction: placed -> delivered.
type Order struct {
	shared.BaseAggregateRoot
	// CustomerID is nullable so order history survives customer deletion.
	CustomerID  *uuid.UUID `gorm:"type:uuid;index"`
	IsDelivered bool       `gorm:"not null;default:false"`
	Items       []Item     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// Item is one frozen line of an order. UnitPrice is a copy taken at
// checkout time and is independent of later catalog changes.
type Item struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,3);not null"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// NewOrder creates a new undelivered order for a customer
func NewOrder(customerID uuid.UUID) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        &customerID,
		IsDelivered:       false,
	}, nil
}

// NewItemFromProduct freezes one cart line into an order line at the
// product's current promotion-adjusted price.
func NewItemFromProduct(orderID uuid.UUID, product *catalog.Product, quantity int) (*Item, error) {
	if product == nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	return &Item{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.FinalPrice(),
	}, nil
}

// LineTotal returns the frozen line price
func (i *Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums the frozen line prices
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal())
	}
	return total
}

// MarkDelivered records delivery. The reverse transition does not exist.
func (o *Order) MarkDelivered() error {
	if o.IsDelivered {
		return shared.NewDomainError("INVALID_STATE", "Order is already delivered")
	}

	o.IsDelivered = true
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// BelongsTo reports whether the order is owned by the given customer
func (o *Order) BelongsTo(customerID uuid.UUID) bool {
	return o.CustomerID != nil && *o.CustomerID == customerID
}
