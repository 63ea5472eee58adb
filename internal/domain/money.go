package domain

import "github.com/shopspring/decimal"

// Money is a non-negative currency amount. It is written to JSON as a number
// with exactly two fractional digits and reads numbers or numeric strings.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromString panics on malformed input; meant for constants and tests.
func MoneyFromString(s string) Money {
	return Money{Decimal: decimal.RequireFromString(s)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}
