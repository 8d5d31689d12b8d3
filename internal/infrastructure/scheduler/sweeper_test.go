package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	reviewapp "github.com/storefront/backend/internal/application/review"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubCartRepository counts sweep calls; everything else is unused here
type stubCartRepository struct {
	sweeps atomic.Int64
}

func (s *stubCartRepository) Create(context.Context, *cart.Cart) error { return nil }
func (s *stubCartRepository) FindByID(context.Context, uuid.UUID) (*cart.Cart, error) {
	return nil, shared.ErrNotFound
}
func (s *stubCartRepository) Exists(context.Context, uuid.UUID) (bool, error) { return false, nil }
func (s *stubCartRepository) UpsertItem(context.Context, uuid.UUID, uuid.UUID, int) (*cart.Item, error) {
	return nil, shared.ErrNotFound
}
func (s *stubCartRepository) FindItem(context.Context, uuid.UUID, uuid.UUID) (*cart.Item, error) {
	return nil, shared.ErrNotFound
}
func (s *stubCartRepository) UpdateItemQuantity(context.Context, uuid.UUID, uuid.UUID, int) (*cart.Item, error) {
	return nil, shared.ErrNotFound
}
func (s *stubCartRepository) RemoveItem(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (s *stubCartRepository) Delete(context.Context, uuid.UUID) error                { return nil }
func (s *stubCartRepository) DeleteCreatedBefore(context.Context, time.Time) (int64, error) {
	s.sweeps.Add(1)
	return 0, nil
}

// stubReviewRepository reports no expired reviews
type stubReviewRepository struct {
	sweeps atomic.Int64
}

func (s *stubReviewRepository) FindByID(context.Context, uuid.UUID) (*review.Review, error) {
	return nil, shared.ErrNotFound
}
func (s *stubReviewRepository) FindByProduct(context.Context, uuid.UUID, bool, shared.Filter) ([]review.Review, error) {
	return nil, nil
}
func (s *stubReviewRepository) Save(context.Context, *review.Review) error   { return nil }
func (s *stubReviewRepository) Delete(context.Context, uuid.UUID) error      { return nil }
func (s *stubReviewRepository) FindHiddenCreatedBefore(context.Context, time.Time) ([]review.Review, error) {
	s.sweeps.Add(1)
	return nil, nil
}
func (s *stubReviewRepository) DeleteByIDs(context.Context, []uuid.UUID) (int64, error) {
	return 0, nil
}

type stubProductRepository struct{}

func (stubProductRepository) FindByID(context.Context, uuid.UUID) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}
func (stubProductRepository) FindBySlug(context.Context, string) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}
func (stubProductRepository) FindAll(context.Context, catalog.ProductFilter) ([]catalog.Product, error) {
	return nil, nil
}
func (stubProductRepository) Count(context.Context, catalog.ProductFilter) (int64, error) {
	return 0, nil
}
func (stubProductRepository) ExistsBySlug(context.Context, string) (bool, error) { return false, nil }
func (stubProductRepository) Save(context.Context, *catalog.Product) error       { return nil }
func (stubProductRepository) Delete(context.Context, uuid.UUID) error            { return nil }

type stubNotifier struct{}

func (stubNotifier) NotifyReviewRemoved(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func newTestSweeper(cartRepo *stubCartRepository, reviewRepo *stubReviewRepository) *Sweeper {
	reviewService := reviewapp.NewService(reviewRepo, stubProductRepository{}, stubNotifier{}, zap.NewNop())
	cfg := config.SchedulerConfig{
		Enabled:             true,
		ReviewSweepInterval: 10 * time.Millisecond,
		CartSweepInterval:   10 * time.Millisecond,
		CartMaxAge:          30 * 24 * time.Hour,
	}
	return NewSweeper(cfg, reviewService, cartRepo, zap.NewNop())
}

func TestSweeper_RunsBothSweeps(t *testing.T) {
	cartRepo := &stubCartRepository{}
	reviewRepo := &stubReviewRepository{}
	sweeper := newTestSweeper(cartRepo, reviewRepo)

	sweeper.Start(context.Background())

	assert.Eventually(t, func() bool {
		return cartRepo.sweeps.Load() >= 2 && reviewRepo.sweeps.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, sweeper.Stop(context.Background()))
}

func TestSweeper_StopHaltsSweeping(t *testing.T) {
	cartRepo := &stubCartRepository{}
	reviewRepo := &stubReviewRepository{}
	sweeper := newTestSweeper(cartRepo, reviewRepo)

	sweeper.Start(context.Background())
	require.NoError(t, sweeper.Stop(context.Background()))

	after := cartRepo.sweeps.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, cartRepo.sweeps.Load())
}

func TestSweeper_StartTwiceIsNoop(t *testing.T) {
	cartRepo := &stubCartRepository{}
	reviewRepo := &stubReviewRepository{}
	sweeper := newTestSweeper(cartRepo, reviewRepo)

	sweeper.Start(context.Background())
	sweeper.Start(context.Background())

	require.NoError(t, sweeper.Stop(context.Background()))
}

func TestSweeper_StopWithoutStart(t *testing.T) {
	sweeper := newTestSweeper(&stubCartRepository{}, &stubReviewRepository{})
	assert.NoError(t, sweeper.Stop(context.Background()))
}
