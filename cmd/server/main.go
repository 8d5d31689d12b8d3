package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	identityapp "github.com/storefront/backend/internal/application/identity"
	reviewapp "github.com/storefront/backend/internal/application/review"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/notification"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/scheduler"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, mapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	promotionRepo := persistence.NewGormPromotionRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	coverRepo := persistence.NewGormProductCoverRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	checkoutRepo := persistence.NewGormCheckoutRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)

	// Product read cache. The catalog stays fully functional without it,
	// so a missing Redis only costs latency.
	var productCache catalogapp.ProductCache
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisProductCache(cfg.Redis, cfg.Cache.ProductTTL, log)
		if err != nil {
			log.Warn("Redis unavailable, using in-process product cache", zap.Error(err))
			productCache = cache.NewInMemoryProductCache(cfg.Cache.ProductTTL)
		} else {
			defer func() {
				_ = redisCache.Close()
			}()
			productCache = redisCache
		}
	}

	// Object storage for cover images
	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := objectStorage.EnsureBucket(ctx); err != nil {
			log.Warn("Could not ensure storage bucket, cover uploads may fail", zap.Error(err))
		}
		cancel()
	}

	// Reviewer notifications
	var notifier reviewapp.Notifier = notification.NopNotifier{}
	if cfg.Mail.Enabled {
		notifier = notification.NewSMTPNotifier(cfg.Mail, userRepo, productRepo, log)
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, customerRepo, jwtService, log)
	customerService := identityapp.NewCustomerService(customerRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	promotionService := catalogapp.NewPromotionService(promotionRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, promotionRepo, productCache)
	coverService := catalogapp.NewCoverService(coverRepo, productRepo, objectStorage, catalogapp.CoverServiceConfig{
		UploadURLExpiry:     cfg.Storage.UploadURLTTL,
		DownloadURLExpiry:   cfg.Storage.DownloadURLTTL,
		MaxCoversPerProduct: catalogapp.DefaultCoverServiceConfig().MaxCoversPerProduct,
	})
	cartService := cartapp.NewService(cartRepo, productRepo)
	orderService := checkoutapp.NewOrderService(orderRepo, checkoutRepo)
	reviewService := reviewapp.NewService(reviewRepo, productRepo, notifier, log)

	// Background sweeps (review retention, abandoned carts)
	sweeper := scheduler.NewSweeper(cfg.Scheduler, reviewService, cartRepo, log)
	if cfg.Scheduler.Enabled {
		sweeper.Start(context.Background())
	}

	// HTTP engine and middleware chain
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log

	r := router.NewRouter(engine)
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	r.Register(router.NewAPIRoutes(router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Category:  handler.NewCategoryHandler(categoryService),
		Promotion: handler.NewPromotionHandler(promotionService),
		Cover:     handler.NewCoverHandler(coverService),
		Cart:      handler.NewCartHandler(cartService),
		Order:     handler.NewOrderHandler(orderService, customerService),
		Review:    handler.NewReviewHandler(reviewService, productService),
		Customer:  handler.NewCustomerHandler(customerService),
		Health:    handler.NewHealthHandler(db.DB),
	}))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sweeper.Stop(ctx); err != nil {
		log.Error("Sweeper shutdown timed out", zap.Error(err))
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func mapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
