package domain

import (
	"bytes"
	"encoding/json"
)

// The products and billing_details columns of an order are written and read
// only through the functions in this file.

// EncodeOrderItems serializes line items for storage. A nil slice is stored as [].
func EncodeOrderItems(items []OrderLineItem) ([]byte, error) {
	if items == nil {
		items = []OrderLineItem{}
	}
	return json.Marshal(items)
}

// EncodeBilling serializes billing details for storage.
func EncodeBilling(b BillingDetails) ([]byte, error) {
	return json.Marshal(b)
}

// storedLineItem accepts the legacy "qty" spelling of quantity.
type storedLineItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	Quantity  *int   `json:"quantity"`
	Qty       *int   `json:"qty"`
}

// DecodeOrderItems parses a stored items column. Malformed or absent data
// yields an empty list instead of an error.
func DecodeOrderItems(raw []byte) []OrderLineItem {
	out := []OrderLineItem{}
	if isNullJSON(raw) {
		return out
	}
	var stored []storedLineItem
	if err := json.Unmarshal(raw, &stored); err != nil {
		return out
	}
	for _, s := range stored {
		item := OrderLineItem{ProductID: s.ProductID, Name: s.Name, Price: s.Price, Quantity: 1}
		switch {
		case s.Quantity != nil:
			item.Quantity = *s.Quantity
		case s.Qty != nil:
			item.Quantity = *s.Qty
		}
		out = append(out, item)
	}
	return out
}

// DecodeBilling parses a stored billing column. Malformed or absent data
// yields nil. Fields missing from older rows, shipping in particular, read as 0.
func DecodeBilling(raw []byte) *BillingDetails {
	if isNullJSON(raw) {
		return nil
	}
	var b BillingDetails
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil
	}
	return &b
}

func isNullJSON(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
