// Package scheduler runs the periodic background sweeps: purging hidden
// reviews past the retention window and deleting abandoned carts.
package scheduler

import (
	"context"
	"sync"
	"time"

	reviewapp "github.com/storefront/backend/internal/application/review"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Sweeper owns the background cleanup loops. Both sweeps are idempotent,
// so overlapping runs across instances are safe, just wasteful.
type Sweeper struct {
	cfg           config.SchedulerConfig
	reviewService *reviewapp.Service
	cartRepo      cart.Repository
	logger        *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewSweeper creates a sweeper from scheduler configuration
func NewSweeper(
	cfg config.SchedulerConfig,
	reviewService *reviewapp.Service,
	cartRepo cart.Repository,
	logger *zap.Logger,
) *Sweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{
		cfg:           cfg,
		reviewService: reviewService,
		cartRepo:      cartRepo,
		logger:        logger,
	}
}

// Start launches the sweep loops. It is a no-op when called twice.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(2)
	go s.runLoop(ctx, s.cfg.ReviewSweepInterval, s.sweepReviews)
	go s.runLoop(ctx, s.cfg.CartSweepInterval, s.sweepCarts)

	s.logger.Info("background sweeper started",
		zap.Duration("review_interval", s.cfg.ReviewSweepInterval),
		zap.Duration("cart_interval", s.cfg.CartSweepInterval),
		zap.Duration("cart_max_age", s.cfg.CartMaxAge),
	)
}

// Stop cancels the loops and waits for in-flight sweeps to finish,
// bounded by the given context
func (s *Sweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("background sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sweeper) runLoop(ctx context.Context, interval time.Duration, sweep func(context.Context)) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// One pass right away so a restart doesn't postpone overdue cleanup
	// by a full interval.
	s.runSweep(ctx, sweep)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runSweep(ctx, sweep)
		}
	}
}

// runSweep bounds a single pass so a stuck query cannot wedge the loop
func (s *Sweeper) runSweep(ctx context.Context, sweep func(context.Context)) {
	if s.cfg.SweepTimeout <= 0 {
		sweep(ctx)
		return
	}
	sweepCtx, cancel := context.WithTimeout(ctx, s.cfg.SweepTimeout)
	defer cancel()
	sweep(sweepCtx)
}

func (s *Sweeper) sweepReviews(ctx context.Context) {
	purged, err := s.reviewService.PurgeHidden(ctx, time.Now())
	if err != nil {
		s.logger.Error("review sweep failed", zap.Error(err))
		return
	}
	if purged > 0 {
		s.logger.Info("purged unapproved reviews", zap.Int64("count", purged))
	}
}

func (s *Sweeper) sweepCarts(ctx context.Context) {
	cutoff := time.Now().Add(-s.cfg.CartMaxAge)
	deleted, err := s.cartRepo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("cart sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.logger.Info("deleted abandoned carts", zap.Int64("count", deleted))
	}
}
