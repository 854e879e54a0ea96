package risk

import "github.com/rustyeddy/reinvestor/market"

// MinNotional is the smallest market buy worth submitting; the
// brokerage rejects fractional notionals below one dollar.
const MinNotional = 1.00

// Notional sizes a new position as a fixed fraction of total buying
// power, rounded to cents. Buying power is read once per run and shared
// across all signals; fills are asynchronous, so it is not decremented
// per submission.
func Notional(buyingPower, fraction float64) float64 {
	return market.RoundCents(fraction * buyingPower)
}

// ShouldLiquidate reports whether a position's gain has reached the
// profit target.
func ShouldLiquidate(p market.Position, target float64) bool {
	if p.Qty <= 0 {
		return false
	}
	return p.Gain() >= target
}
