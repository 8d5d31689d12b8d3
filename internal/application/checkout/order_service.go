package checkout

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderService turns carts into orders and serves order history.
// Customers see only their own orders; operators see everything and are
// the only ones who can flip the delivery flag.
type OrderService struct {
	orderRepo    order.Repository
	checkoutRepo order.CheckoutRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository, checkoutRepo order.CheckoutRepository) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		checkoutRepo: checkoutRepo,
	}
}

// Checkout converts the cart into an order for the customer. The whole
// conversion is one transaction: on failure the cart is left untouched.
func (s *OrderService) Checkout(ctx context.Context, cartID, customerID uuid.UUID) (*OrderResponse, error) {
	o, err := s.checkoutRepo.CreateFromCart(ctx, cartID, customerID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// Get returns one order. Non-operators get NotFound for orders they do
// not own, so the endpoint does not leak which order IDs exist.
func (s *OrderService) Get(ctx context.Context, orderID, customerID uuid.UUID, isOperator bool) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isOperator && !o.BelongsTo(customerID) {
		return nil, shared.ErrNotFound
	}
	return ToOrderResponse(o), nil
}

// List returns the caller's order history, or all orders for operators
func (s *OrderService) List(ctx context.Context, customerID uuid.UUID, isOperator bool, filter shared.Filter) ([]OrderResponse, int64, error) {
	var (
		orders []order.Order
		err    error
	)
	if isOperator {
		orders, err = s.orderRepo.FindAll(ctx, filter)
	} else {
		orders, err = s.orderRepo.FindByCustomer(ctx, customerID, filter)
	}
	if err != nil {
		return nil, 0, err
	}

	var countFor *uuid.UUID
	if !isOperator {
		countFor = &customerID
	}
	total, err := s.orderRepo.Count(ctx, countFor)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// SetDelivered marks an order as delivered. Delivery is terminal, so a
// second call fails with an invalid state error.
func (s *OrderService) SetDelivered(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.MarkDelivered(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	return ToOrderResponse(o), nil
}
