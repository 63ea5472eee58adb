package pricing

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPolicy() Policy {
	return Policy{
		FlatShippingFee:       decimal.NewFromInt(40),
		FreeShippingThreshold: decimal.NewFromInt(1000),
		TaxRate:               decimal.RequireFromString("0.02"),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertTotals(t *testing.T, got Totals, subtotal, shipping, tax, total string) {
	t.Helper()
	assert.Equal(t, subtotal, got.Subtotal.StringFixed(2), "subtotal")
	assert.Equal(t, shipping, got.Shipping.StringFixed(2), "shipping")
	assert.Equal(t, tax, got.Tax.StringFixed(2), "tax")
	assert.Equal(t, total, got.Total.StringFixed(2), "total")
}

func TestCompute_UnderThreshold(t *testing.T) {
	got := Compute([]LineItem{
		{Price: dec("100"), Quantity: 2},
		{Price: dec("50"), Quantity: 1},
	}, defaultPolicy())
	assertTotals(t, got, "250.00", "40.00", "5.00", "295.00")
}

func TestCompute_AtOrAboveThresholdShipsFree(t *testing.T) {
	got := Compute([]LineItem{{Price: dec("1200"), Quantity: 1}}, defaultPolicy())
	assertTotals(t, got, "1200.00", "0.00", "24.00", "1224.00")

	got = Compute([]LineItem{{Price: dec("500"), Quantity: 2}}, defaultPolicy())
	assertTotals(t, got, "1000.00", "0.00", "20.00", "1020.00")
}

func TestCompute_EmptyItemsShipFree(t *testing.T) {
	assertTotals(t, Compute(nil, defaultPolicy()), "0.00", "0.00", "0.00", "0.00")
	assertTotals(t, Compute([]LineItem{{Price: dec("10"), Quantity: 0}}, defaultPolicy()), "0.00", "0.00", "0.00", "0.00")
}

func TestCompute_IgnoresNegativeInputs(t *testing.T) {
	got := Compute([]LineItem{
		{Price: dec("-5"), Quantity: 3},
		{Price: dec("10"), Quantity: -2},
		{Price: dec("10"), Quantity: 1},
	}, defaultPolicy())
	assertTotals(t, got, "10.00", "40.00", "0.20", "50.20")
}

func TestCompute_RoundsEachStepHalfAwayFromZero(t *testing.T) {
	// 0.125 * 1 -> 0.13 subtotal; tax on the rounded subtotal.
	p := Policy{TaxRate: dec("0.5"), FreeShippingThreshold: decimal.Zero}
	got := Compute([]LineItem{{Price: dec("0.125"), Quantity: 1}}, p)
	assertTotals(t, got, "0.13", "0.00", "0.07", "0.20")

	// Tax rounding happens on its own, not at the end.
	p = Policy{TaxRate: dec("0.02"), FreeShippingThreshold: decimal.Zero}
	got = Compute([]LineItem{{Price: dec("0.25"), Quantity: 1}}, p)
	assertTotals(t, got, "0.25", "0.00", "0.01", "0.26")
}

func TestCompute_TotalIsRoundedSum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	policy := defaultPolicy()
	for i := 0; i < 500; i++ {
		n := rng.Intn(6)
		items := make([]LineItem, 0, n)
		for j := 0; j < n; j++ {
			cents := rng.Int63n(200000)
			items = append(items, LineItem{
				Price:    decimal.New(cents, -3),
				Quantity: rng.Int63n(5),
			})
		}
		got := Compute(items, policy)
		want := Round2(got.Subtotal.Add(got.Shipping).Add(got.Tax))
		require.True(t, got.Total.Equal(want), "iteration %d: total %s != %s", i, got.Total, want)
		require.False(t, got.Total.IsNegative())
		require.True(t, got.Subtotal.Equal(Round2(got.Subtotal)))
	}
}

func TestLineItemUnmarshal_Lenient(t *testing.T) {
	var items []LineItem
	require.NoError(t, json.Unmarshal([]byte(`[
		{"price": 100, "quantity": 2},
		{"price": "50.5", "qty": "1"},
		{"price": "abc", "quantity": 3},
		{"quantity": 4},
		{"price": 10},
		{"price": null, "quantity": true},
		"garbage"
	]`), &items))
	require.Len(t, items, 7)

	assert.Equal(t, "100", items[0].Price.String())
	assert.EqualValues(t, 2, items[0].Quantity)
	assert.Equal(t, "50.5", items[1].Price.String())
	assert.EqualValues(t, 1, items[1].Quantity)
	assert.True(t, items[2].Price.IsZero())
	assert.True(t, items[3].Price.IsZero())
	assert.EqualValues(t, 0, items[4].Quantity)
	for _, it := range items[5:] {
		assert.True(t, it.Price.IsZero())
		assert.Zero(t, it.Quantity)
	}

	got := Compute(items, defaultPolicy())
	assertTotals(t, got, "250.50", "40.00", "5.01", "295.51")
}
