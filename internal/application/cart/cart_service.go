package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// Service handles the pre-checkout shopping cart. Carts are anonymous:
// possession of the opaque cart ID is the only credential.
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
}

// NewService creates a new cart Service
func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Create persists a new empty cart and returns it
func (s *Service) Create(ctx context.Context) (*CartResponse, error) {
	c := cart.NewCart()
	if err := s.cartRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// Add puts quantity units of a product into the cart. Adding a product
// already in the cart merges into the existing line; the increment is
// atomic so concurrent adds never lose updates.
func (s *Service) Add(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*ItemResponse, error) {
	if err := cart.ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	exists, err := s.cartRepo.Exists(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product does not exist")
		}
		return nil, err
	}
	if !product.Available() {
		return nil, shared.NewDomainError("OUT_OF_STOCK", "Product is out of stock")
	}

	item, err := s.cartRepo.UpsertItem(ctx, cartID, productID, quantity)
	if err != nil {
		return nil, err
	}
	item.Product = product

	resp := ToItemResponse(item)
	return &resp, nil
}

// Update overwrites the quantity of an existing line
func (s *Service) Update(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*ItemResponse, error) {
	if err := cart.ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	item, err := s.cartRepo.UpdateItemQuantity(ctx, cartID, productID, quantity)
	if err != nil {
		return nil, err
	}

	if product, perr := s.productRepo.FindByID(ctx, productID); perr == nil {
		item.Product = product
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// Remove deletes one line. Removing a line that does not exist is
// NotFound: the endpoint is an explicit DELETE of a named resource.
func (s *Service) Remove(ctx context.Context, cartID, productID uuid.UUID) error {
	return s.cartRepo.RemoveItem(ctx, cartID, productID)
}

// View returns the cart with lines priced from the current catalog state
func (s *Service) View(ctx context.Context, cartID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// Delete abandons the cart, removing it and all its lines
func (s *Service) Delete(ctx context.Context, cartID uuid.UUID) error {
	return s.cartRepo.Delete(ctx, cartID)
}
