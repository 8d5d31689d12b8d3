package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/catalog"
)

func TestNewCart(t *testing.T) {
	c := NewCart()
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.True(t, c.IsEmpty())
	assert.False(t, c.CreatedAt.IsZero())
}

func TestNewItem(t *testing.T) {
	cartID := uuid.New()
	productID := uuid.New()

	t.Run("creates line with valid quantity", func(t *testing.T) {
		item, err := NewItem(cartID, productID, 3)
		require.NoError(t, err)
		assert.Equal(t, cartID, item.CartID)
		assert.Equal(t, productID, item.ProductID)
		assert.Equal(t, 3, item.Quantity)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewItem(cartID, productID, 0)
		require.Error(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewItem(cartID, productID, -2)
		require.Error(t, err)
	})
}

func TestItemLinePrice(t *testing.T) {
	product, err := catalog.NewProduct(uuid.New(), "Dripper", "dripper", "", decimal.NewFromInt(20), 5)
	require.NoError(t, err)

	t.Run("multiplies final price by quantity", func(t *testing.T) {
		item, err := NewItem(uuid.New(), product.ID, 3)
		require.NoError(t, err)
		item.Product = product

		assert.True(t, item.LinePrice().Equal(decimal.NewFromInt(60)))
	})

	t.Run("uses promotion price when attached", func(t *testing.T) {
		promo, err := catalog.NewPromotion(decimal.RequireFromString("0.5"))
		require.NoError(t, err)
		product.SetPromotion(promo)
		defer product.SetPromotion(nil)

		item, err := NewItem(uuid.New(), product.ID, 2)
		require.NoError(t, err)
		item.Product = product

		assert.True(t, item.LinePrice().Equal(decimal.NewFromInt(20)))
	})

	t.Run("zero without loaded product", func(t *testing.T) {
		item, err := NewItem(uuid.New(), uuid.New(), 2)
		require.NoError(t, err)
		assert.True(t, item.LinePrice().IsZero())
	})
}
