// Package pricing computes order totals from line items and a shipping/tax policy.
//
// Amounts are rounded half away from zero to two fractional digits. Subtotal,
// tax and total are each rounded independently, in that order, so
// total == round2(subtotal + shipping + tax) always holds.
package pricing

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

const scale = 2

// Policy carries the business inputs of the computation.
type Policy struct {
	FlatShippingFee       decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	TaxRate               decimal.Decimal
}

// LineItem is one priced quantity. Negative values are treated as 0.
type LineItem struct {
	Price    decimal.Decimal
	Quantity int64
}

// Totals is the billing breakdown of a set of line items.
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Round2 rounds d half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(scale)
}

// Compute returns the totals for items under p. It never fails: malformed
// prices and quantities contribute nothing. Shipping is only charged when at
// least one item has a positive quantity.
func Compute(items []LineItem, p Policy) Totals {
	raw := decimal.Zero
	shippable := false
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		shippable = true
		if it.Price.IsNegative() {
			continue
		}
		raw = raw.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}

	subtotal := Round2(raw)
	shipping := decimal.Zero
	if shippable && subtotal.LessThan(p.FreeShippingThreshold) {
		shipping = Round2(p.FlatShippingFee)
	}
	tax := Round2(subtotal.Mul(p.TaxRate))
	total := Round2(subtotal.Add(shipping).Add(tax))

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
	}
}

// UnmarshalJSON reads {"price": ..., "quantity": ...} leniently: numbers and
// numeric strings are accepted, anything else (including absence) becomes 0.
// The legacy "qty" key is honoured when "quantity" is absent.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*li = LineItem{}
		return nil
	}
	li.Price = coerceDecimal(raw["price"])
	q, ok := raw["quantity"]
	if !ok {
		q = raw["qty"]
	}
	li.Quantity = coerceDecimal(q).IntPart()
	return nil
}

func coerceDecimal(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return decimal.Zero
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero
		}
	} else {
		s = string(raw)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
