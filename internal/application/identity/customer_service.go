package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// CustomerService serves and mutates customer profiles
type CustomerService struct {
	customerRepo identity.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo identity.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// GetByUserID returns the profile belonging to a user account. Accounts
// created before profile provisioning existed get one lazily here.
func (s *CustomerService) GetByUserID(ctx context.Context, userID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.findOrProvision(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// UpdateContact replaces the caller's shipping address and postal code
func (s *CustomerService) UpdateContact(ctx context.Context, userID uuid.UUID, req UpdateContactRequest) (*CustomerResponse, error) {
	customer, err := s.findOrProvision(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := customer.UpdateContact(req.Address, req.PostalCode); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	return ToCustomerResponse(customer), nil
}

// SetTier changes a customer's membership tier (operator action)
func (s *CustomerService) SetTier(ctx context.Context, customerID uuid.UUID, tier string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.SetTier(identity.MembershipTier(tier)); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	return ToCustomerResponse(customer), nil
}

func (s *CustomerService) findOrProvision(ctx context.Context, userID uuid.UUID) (*identity.Customer, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	customer, err = identity.NewCustomer(userID)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return s.customerRepo.FindByUserID(ctx, userID)
		}
		return nil, err
	}
	return customer, nil
}
