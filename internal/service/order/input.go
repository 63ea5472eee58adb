package order

import (
	"encoding/json"
	"strconv"

	"ecoshop/internal/domain"
	"github.com/shopspring/decimal"
)

// PlaceOrderInput is a checkout request.
type PlaceOrderInput struct {
	UserID          int64       `json:"user_id"`
	Items           []ItemInput `json:"items"`
	ShippingAddress string      `json:"shipping_address"`
	CustomerName    string      `json:"customer_name"`
	PaymentMethod   string      `json:"payment_method"`
}

// ItemInput is one requested line. ClientPrice is what the client believed the
// price to be; it is only compared against the catalog, never billed.
type ItemInput struct {
	ProductID   int64
	Quantity    int
	ClientPrice *decimal.Decimal
}

// UnmarshalJSON accepts product_id and quantity as numbers or numeric strings.
// Quantity falls back to the legacy "qty" key and then to 1.
func (in *ItemInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		ProductID json.Number  `json:"product_id"`
		Quantity  *json.Number `json:"quantity"`
		Qty       *json.Number `json:"qty"`
		Price     *json.Number `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Invalid("items", "malformed item: %v", err)
	}

	var out ItemInput
	if raw.ProductID != "" {
		id, err := strconv.ParseInt(raw.ProductID.String(), 10, 64)
		if err != nil {
			return domain.Invalid("product_id", "product_id %q is not an integer", raw.ProductID)
		}
		out.ProductID = id
	}

	out.Quantity = 1
	q := raw.Quantity
	if q == nil {
		q = raw.Qty
	}
	if q != nil && *q != "" {
		n, err := strconv.Atoi(q.String())
		if err != nil {
			return domain.Invalid("quantity", "quantity %q is not an integer", *q)
		}
		out.Quantity = n
	}

	if raw.Price != nil && *raw.Price != "" {
		if p, err := decimal.NewFromString(raw.Price.String()); err == nil {
			out.ClientPrice = &p
		}
	}

	*in = out
	return nil
}
