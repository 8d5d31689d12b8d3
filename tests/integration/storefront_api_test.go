package integration

import (
	"net/http"
	"testing"

	"github.com/storefront/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartData struct {
	ID    string `json:"id"`
	Items []struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
		UnitPrice string `json:"unit_price"`
		LinePrice string `json:"line_price"`
	} `json:"items"`
	TotalPrice string `json:"total_price"`
}

type orderData struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id"`
	IsDelivered bool   `json:"is_delivered"`
	Items       []struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
		UnitPrice string `json:"unit_price"`
		LineTotal string `json:"line_total"`
	} `json:"items"`
	Total string `json:"total"`
}

type productData struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Price      string `json:"price"`
	FinalPrice string `json:"final_price"`
	Inventory  int    `json:"inventory"`
	Available  bool   `json:"available"`
}

type reviewData struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	IsVisible      bool   `json:"is_visible"`
}

func TestPurchaseFlow(t *testing.T) {
	srv := newTestServer(t)
	operator := srv.seedOperator(t)
	customer := srv.registerCustomer(t)

	slug := srv.seedCatalog(t, operator, "Walnut Desk", "walnut-desk", 450, 3)

	// the catalog is readable without a token
	rec := testutil.Request(t, srv.engine, http.MethodGet, "/api/v1/products/"+slug, nil, "")
	testutil.RequireStatus(t, rec, http.StatusOK)
	var product productData
	testutil.DecodeData(t, rec, &product)
	assert.Equal(t, "450", product.Price)
	assert.True(t, product.Available)

	// carts are anonymous
	rec = testutil.Request(t, srv.engine, http.MethodPost, "/api/v1/cart", nil, "")
	testutil.RequireStatus(t, rec, http.StatusCreated)
	var created cartData
	testutil.DecodeData(t, rec, &created)
	require.NotEmpty(t, created.ID)

	rec = testutil.Request(t, srv.engine, http.MethodPost, "/api/v1/cart/"+created.ID+"/items", map[string]any{
		"product_id": product.ID,
		"quantity":   2,
	}, "")
	testutil.RequireStatus(t, rec, http.StatusCreated)

	rec = testutil.Request(t, srv.engine, http.MethodGet, "/api/v1/cart/"+created.ID, nil, "")
	testutil.RequireStatus(t, rec, http.StatusOK)
	var loaded cartData
	testutil.DecodeData(t, rec, &loaded)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
	assert.Equal(t, "900", loaded.TotalPrice)

	// checkout needs a token
	rec = testutil.Request(t, srv.engine, http.MethodPost, "/api/v1/orders", map[string]any{
		"cart_id": created.ID,
	}, "")
	testutil.RequireStatus(t, rec, http.StatusUnauthorized)

	rec = testutil.Request(t, srv.engine, http.MethodPost, "/api/v1/orders", map[string]any{
		"cart_id": created.ID,
	}, customer)
	testutil.RequireStatus(t, rec, http.StatusCreated)
	var placed orderData
	testutil.DecodeData(t, rec, &placed)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, "450", placed.Items[0].UnitPrice)
	assert.Equal(t, "900", placed.Total)
	assert.False(t, placed.IsDelivered)

	// the cart is consumed by checkout
	rec = testutil.Request(t, srv.engine, http.MethodGet, "/api/v1/cart/"+created.ID, nil, "")
	testutil.RequireStatus(t, rec, http.StatusNotFound)

	// the order shows up in the customer's history
	rec = testutil.Request(t, srv.engine, http.MethodGet, "/api/v1/orders", nil, customer)
	testutil.RequireStatus(t, rec, http.StatusOK)
	var orders []orderData
	testutil.DecodeData(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)

	// marking delivery is operator-only
	rec = testutil.Request(t, srv.engine, http.MethodPatch, "/api/v1/orders/"+placed.ID, map[string]any{
		"is_delivered": true,
	}, customer)
	testutil.RequireStatus(t, rec, http.StatusForbidden)

	rec = testutil.Request(t, srv.engine, http.MethodPatch, "/api/v1/orders/"+placed.ID, map[string]any{
		"is_delivered": true,
	}, operator)
	testutil.RequireStatus(t, rec, http.StatusOK)
	var delivered orderData
	testutil.DecodeData(t, rec, &delivered)
	assert.True(t, delivered.IsDelivered)
}

func TestCheckoutPriceIgnoresLaterRepricing(t *testing.T) {
	srv := newTestServer(t)
	operator := srv.seedOperator(t)
	customer := srv.registerCustomer(t)

	slug := srv.seedCatalog(t, operator, "Oak Chair", "oak-chair", 120, 10)

	rec := testutil.Request(t, srv.engine, http.MethodGet, "/api/v1/products/"+slug, nil, "")
	testutil.RequireStatus(t, rec, http.StatusOK)
	var product productData
	testutil.DecodeData(t, rec, &product)

	rec = testutil.Request(t, srv.engine, http.MethodPost, "/api/v1/cart", nil, "")
	testutil.RequireStatus(t, rec, http.StatusCreated)
	var c cartData
	testutil.DecodeData(t, rec, &c)

	rec = testutil.Request(t, srv.engine, http.MethodPost, "/api/v1/cart/"+c.ID+"/items", map[string]any{
		"product_id": product.ID,
		"quantity":   1,
	}, "")
	testutil.RequireStatus(t, rec, http.StatusCreated)

	rec = testutil.Request(t, srv.engine, http.MethodPost, "/api/v1/orders", map[string]any{
		"cart_id": c.ID,
	}, customer)
	testutil.RequireStatus(t, rec, http.StatusCreated)
	var placed orderData
	testutil.DecodeData(t, rec, &placed)

	// repricing the product after checkout must not touch the order
	rec = testutil.Request(t, srv.engine, http.MethodPatch, "/api/v1/products/"+slug, map[string]any{
		"price": 999,
	}, operator)
	testutil.RequireStatus(t, rec, http.StatusOK)

	rec = testutil.Request(t, srv.engine, http.MethodGet, "/api/v1/orders/"+placed.ID, nil, customer)
	testutil.RequireStatus(t, rec, http.StatusOK)
	var reloaded orderData
	testutil.DecodeData(t, rec, &reloaded)
	assert.Equal(t, "120", reloaded.Items[0].UnitPrice)
	assert.Equal(t, "120", reloaded.Total)
}

func TestCheckoutEmptyCartFails(t *testing.T) {
	srv := newTestServer(t)
	customer := srv.registerCustomer(t)

	rec := testutil.Request(t, srv.engine, http.MethodPost, "/api/v1/cart", nil, "")
	testutil.RequireStatus(t, rec, http.StatusCreated)
	var c cartData
	testutil.DecodeData(t, rec, &c)

	rec = testutil.Request(t, srv.engine, http.MethodPost, "/api/v1/orders", map[string]any{
		"cart_id": c.ID,
	}, customer)
	testutil.RequireStatus(t, rec, http.StatusUnprocessableEntity)
	body := testutil.DecodeError(t, rec)
	assert.Equal(t, "EMPTY_CART", body.Code)

	// a failed checkout leaves the cart alone
	rec = testutil.Request(t, srv.engine, http.MethodGet, "/api/v1/cart/"+c.ID, nil, "")
	testutil.RequireStatus(t, rec, http.StatusOK)
}

func TestReviewModerationFlow(t *testing.T) {
	srv := newTestServer(t)
	operator := srv.seedOperator(t)
	customer := srv.registerCustomer(t)

	slug := srv.seedCatalog(t, operator, "Pine Shelf", "pine-shelf", 80, 5)
	reviewsPath := "/api/v1/products/" + slug + "/reviews"

	// submitting a review requires a token even though the path is public
	rec := testutil.Request(t, srv.engine, http.MethodPost, reviewsPath, map[string]any{
		"description":    "Solid and easy to assemble.",
		"recommendation": "recommend",
	}, "")
	testutil.RequireStatus(t, rec, http.StatusUnauthorized)

	rec = testutil.Request(t, srv.engine, http.MethodPost, reviewsPath, map[string]any{
		"description":    "Solid and easy to assemble.",
		"recommendation": "recommend",
	}, customer)
	testutil.RequireStatus(t, rec, http.StatusCreated)
	var submitted reviewData
	testutil.DecodeData(t, rec, &submitted)
	assert.False(t, submitted.IsVisible)

	// hidden reviews never show on the public listing
	rec = testutil.Request(t, srv.engine, http.MethodGet, reviewsPath, nil, "")
	testutil.RequireStatus(t, rec, http.StatusOK)
	var visible []reviewData
	testutil.DecodeData(t, rec, &visible)
	assert.Empty(t, visible)

	// include_hidden is ignored without the operator role
	rec = testutil.Request(t, srv.engine, http.MethodGet, reviewsPath+"?include_hidden=true", nil, customer)
	testutil.RequireStatus(t, rec, http.StatusOK)
	testutil.DecodeData(t, rec, &visible)
	assert.Empty(t, visible)

	rec = testutil.Request(t, srv.engine, http.MethodGet, reviewsPath+"?include_hidden=true", nil, operator)
	testutil.RequireStatus(t, rec, http.StatusOK)
	var pending []reviewData
	testutil.DecodeData(t, rec, &pending)
	require.Len(t, pending, 1)

	// moderation is operator-only
	rec = testutil.Request(t, srv.engine, http.MethodPatch, reviewsPath+"/"+submitted.ID, map[string]any{
		"is_visible": true,
	}, customer)
	testutil.RequireStatus(t, rec, http.StatusForbidden)

	rec = testutil.Request(t, srv.engine, http.MethodPatch, reviewsPath+"/"+submitted.ID, map[string]any{
		"is_visible": true,
	}, operator)
	testutil.RequireStatus(t, rec, http.StatusOK)

	rec = testutil.Request(t, srv.engine, http.MethodGet, reviewsPath, nil, "")
	testutil.RequireStatus(t, rec, http.StatusOK)
	testutil.DecodeData(t, rec, &visible)
	require.Len(t, visible, 1)
	assert.Equal(t, "Solid and easy to assemble.", visible[0].Description)
}

func TestCatalogMutationsAreOperatorOnly(t *testing.T) {
	srv := newTestServer(t)
	customer := srv.registerCustomer(t)

	rec := testutil.Request(t, srv.engine, http.MethodPost, "/api/v1/categories", map[string]any{
		"title":     "Lighting",
		"is_active": true,
	}, customer)
	testutil.RequireStatus(t, rec, http.StatusForbidden)

	rec = testutil.Request(t, srv.engine, http.MethodPost, "/api/v1/categories", map[string]any{
		"title":     "Lighting",
		"is_active": true,
	}, "")
	testutil.RequireStatus(t, rec, http.StatusUnauthorized)

	rec = testutil.Request(t, srv.engine, http.MethodGet, "/api/v1/promotions", nil, customer)
	testutil.RequireStatus(t, rec, http.StatusForbidden)
}

func TestCustomerProfile(t *testing.T) {
	srv := newTestServer(t)
	customer := srv.registerCustomer(t)

	rec := testutil.Request(t, srv.engine, http.MethodGet, "/api/v1/customer/me", nil, customer)
	testutil.RequireStatus(t, rec, http.StatusOK)
	var profile struct {
		ID   string `json:"id"`
		Tier string `json:"tier"`
	}
	testutil.DecodeData(t, rec, &profile)
	assert.Equal(t, "bronze", profile.Tier)

	rec = testutil.Request(t, srv.engine, http.MethodGet, "/api/v1/customer/me", nil, "")
	testutil.RequireStatus(t, rec, http.StatusUnauthorized)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := testutil.Request(t, srv.engine, http.MethodGet, "/api/v1/health", nil, "")
	testutil.RequireStatus(t, rec, http.StatusOK)
}
