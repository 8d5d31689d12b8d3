package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*cart.Item, error) {
	args := m.Called(ctx, cartID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartRepository) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*cart.Item, error) {
	args := m.Called(ctx, cartID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartRepository) UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*cart.Item, error) {
	args := m.Called(ctx, cartID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter catalog.ProductFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestCartID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func createTestProduct(inventory int) *catalog.Product {
	product, _ := catalog.NewProduct(uuid.New(), "Test Product", "test-product", "", decimal.NewFromInt(100), inventory)
	return product
}

func TestService_Create_Success(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := NewService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	mockCartRepo.On("Create", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil)

	result, err := service.Create(ctx)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.NotEmpty(t, result.ID)
	assert.Empty(t, result.Items)
	assert.True(t, result.TotalPrice.IsZero())
	mockCartRepo.AssertExpectations(t)
}

func TestService_Add_Success(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := NewService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	cartID := newTestCartID()
	product := createTestProduct(5)
	item := &cart.Item{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: product.ID,
		Quantity:  2,
	}

	mockCartRepo.On("Exists", ctx, cartID).Return(true, nil)
	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mockCartRepo.On("UpsertItem", ctx, cartID, product.ID, 2).Return(item, nil)

	result, err := service.Add(ctx, cartID, product.ID, 2)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 2, result.Quantity)
	assert.True(t, result.UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, result.LinePrice.Equal(decimal.NewFromInt(200)))
	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
}

func TestService_Add_CartNotFound(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := NewService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	cartID := newTestCartID()

	mockCartRepo.On("Exists", ctx, cartID).Return(false, nil)

	result, err := service.Add(ctx, cartID, uuid.New(), 1)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockCartRepo.AssertExpectations(t)
}

func TestService_Add_UnknownProduct(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := NewService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	cartID := newTestCartID()
	productID := uuid.New()

	mockCartRepo.On("Exists", ctx, cartID).Return(true, nil)
	mockProductRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

	result, err := service.Add(ctx, cartID, productID, 1)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PRODUCT", domainErr.Code)
	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
}

func TestService_Add_OutOfStock(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := NewService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	cartID := newTestCartID()
	product := createTestProduct(0)

	mockCartRepo.On("Exists", ctx, cartID).Return(true, nil)
	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	result, err := service.Add(ctx, cartID, product.ID, 1)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "OUT_OF_STOCK", domainErr.Code)
	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
}

func TestService_Add_InvalidQuantity(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := NewService(mockCartRepo, mockProductRepo)

	result, err := service.Add(context.Background(), newTestCartID(), uuid.New(), 0)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	mockCartRepo.AssertNotCalled(t, "UpsertItem")
}

func TestService_Update_Success(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := NewService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	cartID := newTestCartID()
	product := createTestProduct(5)
	item := &cart.Item{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: product.ID,
		Quantity:  7,
	}

	mockCartRepo.On("UpdateItemQuantity", ctx, cartID, product.ID, 7).Return(item, nil)
	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	result, err := service.Update(ctx, cartID, product.ID, 7)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 7, result.Quantity)
	assert.True(t, result.LinePrice.Equal(decimal.NewFromInt(700)))
	mockCartRepo.AssertExpectations(t)
}

func TestService_Update_LineNotFound(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := NewService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	cartID := newTestCartID()
	productID := uuid.New()

	mockCartRepo.On("UpdateItemQuantity", ctx, cartID, productID, 3).Return(nil, shared.ErrNotFound)

	result, err := service.Update(ctx, cartID, productID, 3)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockCartRepo.AssertExpectations(t)
}

func TestService_Remove_NotFound(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := NewService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	cartID := newTestCartID()
	productID := uuid.New()

	mockCartRepo.On("RemoveItem", ctx, cartID, productID).Return(shared.ErrNotFound)

	err := service.Remove(ctx, cartID, productID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockCartRepo.AssertExpectations(t)
}

func TestService_View_Success(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := NewService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	product := createTestProduct(5)
	c := cart.NewCart()
	c.Items = []cart.Item{
		{ID: uuid.New(), CartID: c.ID, ProductID: product.ID, Product: product, Quantity: 3},
	}

	mockCartRepo.On("FindByID", ctx, c.ID).Return(c, nil)

	result, err := service.View(ctx, c.ID)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Len(t, result.Items, 1)
	assert.True(t, result.TotalPrice.Equal(decimal.NewFromInt(300)))
	mockCartRepo.AssertExpectations(t)
}

func TestService_Delete_Success(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := NewService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	cartID := newTestCartID()

	mockCartRepo.On("Delete", ctx, cartID).Return(nil)

	err := service.Delete(ctx, cartID)

	assert.NoError(t, err)
	mockCartRepo.AssertExpectations(t)
}
