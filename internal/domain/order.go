package domain

import "time"

const (
	OrderStatusSubmitted = "submitted"
	DefaultPaymentMethod = "cod"
)

// OrderLineItem is the product snapshot captured when the order was placed.
type OrderLineItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// BillingDetails is stored verbatim with the order and never recomputed on read.
type BillingDetails struct {
	Subtotal Money `json:"subtotal"`
	Shipping Money `json:"shipping"`
	Tax      Money `json:"tax"`
	Total    Money `json:"total"`
}

type Order struct {
	ID              int64           `json:"order_id"`
	UserID          int64           `json:"user_id"`
	CustomerName    string          `json:"customer_name"`
	ShippingAddress string          `json:"shipping_address"`
	Items           []OrderLineItem `json:"items"`
	Billing         *BillingDetails `json:"billing_details"`
	PaymentMethod   string          `json:"payment_method"`
	Status          string          `json:"status"`
	OrderDate       time.Time       `json:"order_date"`
}

// OrderFilter scopes ListOrders. A zero UserID lists every order.
type OrderFilter struct {
	UserID int64
}

// ProductIDs returns the distinct product ids of the order in item order.
func (o Order) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(o.Items))
	out := make([]int64, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		out = append(out, it.ProductID)
	}
	return out
}
