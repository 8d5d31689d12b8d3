package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads an order with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByCustomer lists a customer's orders, newest first
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID)

	if filter.Limit() > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll lists all orders, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.db.WithContext(ctx).Preload("Items")

	if filter.Limit() > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders, optionally scoped to one customer
func (r *GormOrderRepository) Count(ctx context.Context, customerID *uuid.UUID) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&order.Order{})
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists an order's mutable state (the delivery flag)
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Save(o).Error
}

// GormCheckoutRepository implements order.CheckoutRepository using GORM
type GormCheckoutRepository struct {
	db *gorm.DB
}

// NewGormCheckoutRepository creates a new GormCheckoutRepository
func NewGormCheckoutRepository(db *gorm.DB) *GormCheckoutRepository {
	return &GormCheckoutRepository{db: db}
}

// CreateFromCart materializes a cart into an order inside one
// transaction. Product prices are read here, inside the transaction,
// and copied into the order lines; the cart is destroyed on commit.
// Any failure rolls everything back and leaves the cart intact.
func (r *GormCheckoutRepository) CreateFromCart(ctx context.Context, cartID, customerID uuid.UUID) (*order.Order, error) {
	var created *order.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c cart.Cart
		err := tx.
			Preload("Items").
			Preload("Items.Product").
			Preload("Items.Product.Promotion").
			First(&c, "id = ?", cartID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if len(c.Items) == 0 {
			return shared.NewDomainError("EMPTY_CART", "Cart has no items to check out")
		}

		o, err := order.NewOrder(customerID)
		if err != nil {
			return err
		}

		for i := range c.Items {
			line := &c.Items[i]
			item, err := order.NewItemFromProduct(o.ID, line.Product, line.Quantity)
			if err != nil {
				return err
			}
			o.Items = append(o.Items, *item)
		}

		if err := tx.Create(o).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&cart.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&cart.Cart{}, "id = ?", cartID).Error; err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
