package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence operations for carts and their lines
type Repository interface {
	Create(ctx context.Context, cart *Cart) error
	// FindByID loads a cart with its lines, each line carrying the current
	// product state (including any promotion) for live pricing.
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// UpsertItem inserts a new line or, when a line for the product already
	// exists, increments its quantity by the given amount. The increment is
	// a single SQL update so concurrent adds to the same line never lose
	// updates. The resulting line is returned.
	UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*Item, error)
	FindItem(ctx context.Context, cartID, productID uuid.UUID) (*Item, error)
	UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*Item, error)
	// RemoveItem deletes one line. It returns shared.ErrNotFound when the
	// line does not exist.
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error
	// Delete removes the cart and cascades to its lines.
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteCreatedBefore removes carts abandoned before the cutoff and
	// returns how many were swept.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
