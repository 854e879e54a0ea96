package market

import "time"

// OrderSide is the direction of an order.
type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

// OrderStatus mirrors the brokerage's order lifecycle states. Only Open
// matters to the engine; everything else is carried for reporting.
type OrderStatus string

const (
	StatusOpen     OrderStatus = "open"
	StatusFilled   OrderStatus = "filled"
	StatusCanceled OrderStatus = "canceled"
	StatusRejected OrderStatus = "rejected"
)

// Signal is a candidate symbol surfaced by the screener as eligible for
// acquisition. Signals are rebuilt fresh each run and have no identity
// beyond the symbol.
type Signal struct {
	Symbol string
	// RefPrice is the screener's reference price, nil when the price
	// column was blank or unparsable.
	RefPrice *float64
}

// Position is a currently held quantity of a symbol in the brokerage
// account. The engine never mutates a position directly, only via
// submitted orders observed again on the next run.
type Position struct {
	Symbol        string
	Qty           float64
	AvgEntryPrice float64
	CurrentPrice  float64
}

// Gain returns the fractional gain of the position over its average entry
// price, e.g. 0.05 for +5%.
func (p Position) Gain() float64 {
	if p.AvgEntryPrice == 0 {
		return 0
	}
	return (p.CurrentPrice - p.AvgEntryPrice) / p.AvgEntryPrice
}

// Order is a brokerage order, either one we just submitted or an open
// order reported by the account snapshot.
type Order struct {
	ID        string
	Symbol    string
	Side      OrderSide
	Status    OrderStatus
	Submitted time.Time
}
