package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Repository defines read and status-update operations for orders.
// Orders are only ever created through CheckoutRepository.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, customerID *uuid.UUID) (int64, error)
	Save(ctx context.Context, order *Order) error
}

// CheckoutRepository performs the one transaction that matters: it
// materializes a cart into an order atomically.
type CheckoutRepository interface {
	// CreateFromCart, inside a single database transaction:
	//   1. loads the cart's lines together with current product state,
	//   2. creates an order for the customer with one frozen line per
	//      cart line,
	//   3. deletes the cart and its lines.
	// Product prices are read inside the transaction so the frozen price
	// is the one in effect at commit time. On any failure the whole
	// transaction rolls back and the cart remains intact and retryable.
	// Returns shared.ErrNotFound for an unknown cart and a validation
	// error for an empty one.
	CreateFromCart(ctx context.Context, cartID, customerID uuid.UUID) (*Order, error)
}
