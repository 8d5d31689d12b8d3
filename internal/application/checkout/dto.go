package checkout

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/order"
)

// ItemResponse is the API view of one frozen order line
type ItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse is the API view of an order
type OrderResponse struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id,omitempty"`
	IsDelivered bool            `json:"is_delivered"`
	Items       []ItemResponse  `json:"items"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ListOrdersRequest carries pagination for order listings
type ListOrdersRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// ToOrderResponse maps an order to its API representation
func ToOrderResponse(o *order.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:          o.ID.String(),
		IsDelivered: o.IsDelivered,
		Items:       make([]ItemResponse, 0, len(o.Items)),
		Total:       o.Total(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if o.CustomerID != nil {
		resp.CustomerID = o.CustomerID.String()
	}
	for i := range o.Items {
		item := &o.Items[i]
		resp.Items = append(resp.Items, ItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal(),
		})
	}
	return resp
}

// ToOrderResponses maps a slice of orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, *ToOrderResponse(&orders[i]))
	}
	return responses
}
