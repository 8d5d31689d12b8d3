// Package integration exercises the full HTTP surface against an
// in-memory database: real handlers, services, repositories and
// middleware, with only mail and object storage stubbed out.
package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	identityapp "github.com/storefront/backend/internal/application/identity"
	reviewapp "github.com/storefront/backend/internal/application/review"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/notification"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"github.com/storefront/backend/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStorage hands out deterministic URLs instead of talking to S3
type fakeStorage struct{}

func (fakeStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://storage.test/upload/" + storageKey, time.Now().Add(expiresIn), nil
}

func (fakeStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://storage.test/download/" + storageKey, time.Now().Add(expiresIn), nil
}

func (fakeStorage) DeleteObject(context.Context, string) error { return nil }

// testServer bundles the wired engine with direct database access for
// seeding and assertions
type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&catalog.Category{},
		&catalog.Promotion{},
		&catalog.Product{},
		&catalog.ProductCover{},
		&cart.Cart{},
		&cart.Item{},
		&identity.User{},
		&identity.Customer{},
		&order.Order{},
		&order.Item{},
		&review.Review{},
	))

	log := zap.NewNop()

	categoryRepo := persistence.NewGormCategoryRepository(db)
	promotionRepo := persistence.NewGormPromotionRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	coverRepo := persistence.NewGormProductCoverRepository(db)
	cartRepo := persistence.NewGormCartRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	checkoutRepo := persistence.NewGormCheckoutRepository(db)
	reviewRepo := persistence.NewGormReviewRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-test-access-secret",
		RefreshSecret:          "integration-test-refresh-secret",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "storefront-test",
	})

	authService := identityapp.NewAuthService(userRepo, customerRepo, jwtService, log)
	customerService := identityapp.NewCustomerService(customerRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	promotionService := catalogapp.NewPromotionService(promotionRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, promotionRepo,
		cache.NewInMemoryProductCache(time.Minute))
	coverService := catalogapp.NewCoverService(coverRepo, productRepo, fakeStorage{},
		catalogapp.DefaultCoverServiceConfig())
	cartService := cartapp.NewService(cartRepo, productRepo)
	orderService := checkoutapp.NewOrderService(orderRepo, checkoutRepo)
	reviewService := reviewapp.NewService(reviewRepo, productRepo, notification.NopNotifier{}, log)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	r := router.NewRouter(engine)
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.DefaultJWTConfig(jwtService)))
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
		Health:    handler.NewHealthHandler(db),
	}))
	r.Setup()

	return &testServer{engine: engine, db: db}
}

var userSeq int

// registerCustomer registers a fresh customer through the API and
// returns its access token
func (s *testServer) registerCustomer(t *testing.T) string {
	t.Helper()

	userSeq++
	username := fmt.Sprintf("shopper%d", userSeq)
	password := "s3cretpassw0rd"

	rec := testutil.Request(t, s.engine, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
	}, "")
	testutil.RequireStatus(t, rec, http.StatusCreated)

	return s.login(t, username, password)
}

// seedOperator creates an operator account directly and logs it in
func (s *testServer) seedOperator(t *testing.T) string {
	t.Helper()

	userSeq++
	username := fmt.Sprintf("operator%d", userSeq)
	password := "s3cretpassw0rd"

	user, err := identity.NewUser(username, username+"@example.com", password)
	require.NoError(t, err)
	user.IsOperator = true
	require.NoError(t, persistence.NewGormUserRepository(s.db).Save(context.Background(), user))

	return s.login(t, username, password)
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()

	rec := testutil.Request(t, s.engine, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	testutil.RequireStatus(t, rec, http.StatusOK)

	var data struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	testutil.DecodeData(t, rec, &data)
	require.NotEmpty(t, data.Tokens.AccessToken)
	return data.Tokens.AccessToken
}

// seedCatalog creates a category and product through the operator API
// and returns the product slug
func (s *testServer) seedCatalog(t *testing.T, operatorToken, title, slug string, price int64, inventory int) string {
	t.Helper()

	rec := testutil.Request(t, s.engine, http.MethodPost, "/api/v1/categories", map[string]any{
		"title":     title + " category",
		"is_active": true,
	}, operatorToken)
	testutil.RequireStatus(t, rec, http.StatusCreated)

	var category struct {
		ID string `json:"id"`
	}
	testutil.DecodeData(t, rec, &category)

	rec = testutil.Request(t, s.engine, http.MethodPost, "/api/v1/products", map[string]any{
		"category_id": category.ID,
		"title":       title,
		"slug":        slug,
		"price":       price,
		"inventory":   inventory,
	}, operatorToken)
	testutil.RequireStatus(t, rec, http.StatusCreated)

	return slug
}
