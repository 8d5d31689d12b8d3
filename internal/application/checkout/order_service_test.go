package checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, customerID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockCheckoutRepository is a mock implementation of order.CheckoutRepository
type MockCheckoutRepository struct {
	mock.Mock
}

func (m *MockCheckoutRepository) CreateFromCart(ctx context.Context, cartID, customerID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, cartID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func newTestCustomerID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func createTestOrder(customerID uuid.UUID) *order.Order {
	o, _ := order.NewOrder(customerID)
	o.Items = []order.Item{
		{ID: uuid.New(), OrderID: o.ID, ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromInt(75)},
		{ID: uuid.New(), OrderID: o.ID, ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
	}
	return o
}

func TestOrderService_Checkout_Success(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCheckoutRepo := new(MockCheckoutRepository)
	service := NewOrderService(mockOrderRepo, mockCheckoutRepo)

	ctx := context.Background()
	cartID := uuid.New()
	customerID := newTestCustomerID()
	o := createTestOrder(customerID)

	mockCheckoutRepo.On("CreateFromCart", ctx, cartID, customerID).Return(o, nil)

	result, err := service.Checkout(ctx, cartID, customerID)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, customerID.String(), result.CustomerID)
	assert.False(t, result.IsDelivered)
	assert.Len(t, result.Items, 2)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(160)))
	mockCheckoutRepo.AssertExpectations(t)
}

func TestOrderService_Checkout_CartNotFound(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCheckoutRepo := new(MockCheckoutRepository)
	service := NewOrderService(mockOrderRepo, mockCheckoutRepo)

	ctx := context.Background()
	cartID := uuid.New()
	customerID := newTestCustomerID()

	mockCheckoutRepo.On("CreateFromCart", ctx, cartID, customerID).Return(nil, shared.ErrNotFound)

	result, err := service.Checkout(ctx, cartID, customerID)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockCheckoutRepo.AssertExpectations(t)
}

func TestOrderService_Get_OwnOrder(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCheckoutRepo := new(MockCheckoutRepository)
	service := NewOrderService(mockOrderRepo, mockCheckoutRepo)

	ctx := context.Background()
	customerID := newTestCustomerID()
	o := createTestOrder(customerID)

	mockOrderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

	result, err := service.Get(ctx, o.ID, customerID, false)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, o.ID.String(), result.ID)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_Get_ForeignOrderHidden(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCheckoutRepo := new(MockCheckoutRepository)
	service := NewOrderService(mockOrderRepo, mockCheckoutRepo)

	ctx := context.Background()
	owner := newTestCustomerID()
	stranger := uuid.New()
	o := createTestOrder(owner)

	mockOrderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

	result, err := service.Get(ctx, o.ID, stranger, false)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_Get_OperatorSeesAny(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCheckoutRepo := new(MockCheckoutRepository)
	service := NewOrderService(mockOrderRepo, mockCheckoutRepo)

	ctx := context.Background()
	owner := newTestCustomerID()
	o := createTestOrder(owner)

	mockOrderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

	result, err := service.Get(ctx, o.ID, uuid.New(), true)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_List_CustomerScoped(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCheckoutRepo := new(MockCheckoutRepository)
	service := NewOrderService(mockOrderRepo, mockCheckoutRepo)

	ctx := context.Background()
	customerID := newTestCustomerID()
	filter := shared.DefaultFilter()
	orders := []order.Order{*createTestOrder(customerID)}

	mockOrderRepo.On("FindByCustomer", ctx, customerID, filter).Return(orders, nil)
	mockOrderRepo.On("Count", ctx, &customerID).Return(int64(1), nil)

	result, total, err := service.List(ctx, customerID, false, filter)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, int64(1), total)
	mockOrderRepo.AssertExpectations(t)
	mockOrderRepo.AssertNotCalled(t, "FindAll")
}

func TestOrderService_List_OperatorSeesAll(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCheckoutRepo := new(MockCheckoutRepository)
	service := NewOrderService(mockOrderRepo, mockCheckoutRepo)

	ctx := context.Background()
	filter := shared.DefaultFilter()
	orders := []order.Order{*createTestOrder(newTestCustomerID()), *createTestOrder(uuid.New())}

	mockOrderRepo.On("FindAll", ctx, filter).Return(orders, nil)
	mockOrderRepo.On("Count", ctx, (*uuid.UUID)(nil)).Return(int64(2), nil)

	result, total, err := service.List(ctx, uuid.New(), true, filter)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, int64(2), total)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_SetDelivered_Success(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCheckoutRepo := new(MockCheckoutRepository)
	service := NewOrderService(mockOrderRepo, mockCheckoutRepo)

	ctx := context.Background()
	o := createTestOrder(newTestCustomerID())

	mockOrderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
	mockOrderRepo.On("Save", ctx, o).Return(nil)

	result, err := service.SetDelivered(ctx, o.ID)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.True(t, result.IsDelivered)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_SetDelivered_AlreadyDelivered(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCheckoutRepo := new(MockCheckoutRepository)
	service := NewOrderService(mockOrderRepo, mockCheckoutRepo)

	ctx := context.Background()
	o := createTestOrder(newTestCustomerID())
	o.IsDelivered = true

	mockOrderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

	result, err := service.SetDelivered(ctx, o.ID)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	mockOrderRepo.AssertNotCalled(t, "Save")
}
