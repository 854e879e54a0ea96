package market

import "github.com/shopspring/decimal"

// RoundCents rounds a dollar amount to two decimal places using decimal
// arithmetic, so values like 0.1+0.2 land on an exact cent instead of a
// float artifact. Half-away-from-zero, matching brokerage notionals.
func RoundCents(x float64) float64 {
	v, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return v
}

// Proceeds returns the cash realized by selling qty shares at price,
// rounded to cents.
func Proceeds(qty, price float64) float64 {
	v, _ := decimal.NewFromFloat(qty).
		Mul(decimal.NewFromFloat(price)).
		Round(2).
		Float64()
	return v
}
