package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
)

// ItemResponse is the API view of one cart line, priced live
type ItemResponse struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title,omitempty"`
	Slug      string          `json:"slug,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LinePrice decimal.Decimal `json:"line_price"`
}

// CartResponse is the API view of a cart with its computed total
type CartResponse struct {
	ID         string          `json:"id"`
	Items      []ItemResponse  `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToItemResponse maps one cart line
func ToItemResponse(item *cart.Item) ItemResponse {
	resp := ItemResponse{
		ProductID: item.ProductID.String(),
		Quantity:  item.Quantity,
		LinePrice: item.LinePrice(),
	}
	if item.Product != nil {
		resp.Title = item.Product.Title
		resp.Slug = item.Product.Slug
		resp.UnitPrice = item.Product.FinalPrice()
	}
	return resp
}

// ToCartResponse maps a cart, computing line prices and the total from the
// current catalog state.
func ToCartResponse(c *cart.Cart) *CartResponse {
	resp := &CartResponse{
		ID:         c.ID.String(),
		Items:      make([]ItemResponse, 0, len(c.Items)),
		TotalPrice: decimal.Zero,
		CreatedAt:  c.CreatedAt,
	}
	for i := range c.Items {
		item := ToItemResponse(&c.Items[i])
		resp.Items = append(resp.Items, item)
		resp.TotalPrice = resp.TotalPrice.Add(item.LinePrice)
	}
	return resp
}
