package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/domain/shared"
)

// MockReviewRepository is a mock implementation of review.Repository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, includeHidden bool, filter shared.Filter) ([]review.Review, error) {
	args := m.Called(ctx, productID, includeHidden, filter)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) FindHiddenCreatedBefore(ctx context.Context, cutoff time.Time) ([]review.Review, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
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

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyReviewRemoved(ctx context.Context, userID, productID uuid.UUID) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func newTestService(reviewRepo *MockReviewRepository, productRepo *MockProductRepository, notifier *MockNotifier) *Service {
	return NewService(reviewRepo, productRepo, notifier, zap.NewNop())
}

func createTestProduct() *catalog.Product {
	product, _ := catalog.NewProduct(uuid.New(), "Test Product", "test-product", "", decimal.NewFromInt(100), 5)
	return product
}

func createHiddenReview(age time.Duration) review.Review {
	r, _ := review.NewReview(uuid.New(), uuid.New(), "stale", review.RecommendationNeutral)
	r.CreatedAt = time.Now().Add(-age)
	return *r
}

func TestService_Create_Success(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockProductRepo := new(MockProductRepository)
	service := newTestService(mockReviewRepo, mockProductRepo, new(MockNotifier))

	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct()
	req := CreateReviewRequest{
		ProductID:      product.ID,
		Description:    "Solid build, arrived on time",
		Recommendation: "recommend",
	}

	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mockReviewRepo.On("Save", ctx, mock.AnythingOfType("*review.Review")).Return(nil)

	result, err := service.Create(ctx, userID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.False(t, result.IsVisible)
	assert.Equal(t, "recommend", result.Recommendation)
	mockReviewRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
}

func TestService_Create_UnknownProduct(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockProductRepo := new(MockProductRepository)
	service := newTestService(mockReviewRepo, mockProductRepo, new(MockNotifier))

	ctx := context.Background()
	productID := uuid.New()
	req := CreateReviewRequest{
		ProductID:      productID,
		Description:    "does not matter",
		Recommendation: "poor",
	}

	mockProductRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, uuid.New(), req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PRODUCT", domainErr.Code)
	mockReviewRepo.AssertNotCalled(t, "Save")
}

func TestService_Create_InvalidRecommendation(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockProductRepo := new(MockProductRepository)
	service := newTestService(mockReviewRepo, mockProductRepo, new(MockNotifier))

	ctx := context.Background()
	product := createTestProduct()
	req := CreateReviewRequest{
		ProductID:      product.ID,
		Description:    "fine",
		Recommendation: "amazing",
	}

	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	result, err := service.Create(ctx, uuid.New(), req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_RECOMMENDATION", domainErr.Code)
	mockReviewRepo.AssertNotCalled(t, "Save")
}

func TestService_SetVisibility_Approve(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockProductRepo := new(MockProductRepository)
	service := newTestService(mockReviewRepo, mockProductRepo, new(MockNotifier))

	ctx := context.Background()
	r, _ := review.NewReview(uuid.New(), uuid.New(), "ok", review.RecommendationNeutral)

	mockReviewRepo.On("FindByID", ctx, r.ID).Return(r, nil)
	mockReviewRepo.On("Save", ctx, r).Return(nil)

	result, err := service.SetVisibility(ctx, r.ID, true)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.True(t, result.IsVisible)
	mockReviewRepo.AssertExpectations(t)
}

func TestService_PurgeHidden_DeletesAndNotifies(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockProductRepo := new(MockProductRepository)
	mockNotifier := new(MockNotifier)
	service := newTestService(mockReviewRepo, mockProductRepo, mockNotifier)

	ctx := context.Background()
	now := time.Now()
	stale := []review.Review{
		createHiddenReview(72 * time.Hour),
		createHiddenReview(50 * time.Hour),
	}
	ids := []uuid.UUID{stale[0].ID, stale[1].ID}

	mockReviewRepo.On("FindHiddenCreatedBefore", ctx, mock.AnythingOfType("time.Time")).Return(stale, nil)
	mockReviewRepo.On("DeleteByIDs", ctx, ids).Return(int64(2), nil)
	mockNotifier.On("NotifyReviewRemoved", ctx, stale[0].UserID, stale[0].ProductID).Return(nil)
	mockNotifier.On("NotifyReviewRemoved", ctx, stale[1].UserID, stale[1].ProductID).Return(nil)

	purged, err := service.PurgeHidden(ctx, now)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), purged)
	mockReviewRepo.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestService_PurgeHidden_NotifierFailureIgnored(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockProductRepo := new(MockProductRepository)
	mockNotifier := new(MockNotifier)
	service := newTestService(mockReviewRepo, mockProductRepo, mockNotifier)

	ctx := context.Background()
	stale := []review.Review{createHiddenReview(72 * time.Hour)}

	mockReviewRepo.On("FindHiddenCreatedBefore", ctx, mock.AnythingOfType("time.Time")).Return(stale, nil)
	mockReviewRepo.On("DeleteByIDs", ctx, []uuid.UUID{stale[0].ID}).Return(int64(1), nil)
	mockNotifier.On("NotifyReviewRemoved", ctx, stale[0].UserID, stale[0].ProductID).
		Return(errors.New("smtp connect: connection refused"))

	purged, err := service.PurgeHidden(ctx, time.Now())

	assert.NoError(t, err)
	assert.Equal(t, int64(1), purged)
	mockReviewRepo.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestService_PurgeHidden_NothingExpired(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockProductRepo := new(MockProductRepository)
	mockNotifier := new(MockNotifier)
	service := newTestService(mockReviewRepo, mockProductRepo, mockNotifier)

	ctx := context.Background()

	mockReviewRepo.On("FindHiddenCreatedBefore", ctx, mock.AnythingOfType("time.Time")).Return([]review.Review{}, nil)

	purged, err := service.PurgeHidden(ctx, time.Now())

	assert.NoError(t, err)
	assert.Equal(t, int64(0), purged)
	mockReviewRepo.AssertNotCalled(t, "DeleteByIDs")
	mockNotifier.AssertNotCalled(t, "NotifyReviewRemoved")
}
