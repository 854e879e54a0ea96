package broker

import (
	"context"
	"errors"

	"github.com/rustyeddy/reinvestor/market"
)

// ErrNoPosition is returned by GetPosition when the account holds no
// position in the requested symbol.
var ErrNoPosition = errors.New("no position")

type Broker interface {
	GetAccount(ctx context.Context) (Account, error)
	ListPositions(ctx context.Context) ([]market.Position, error)
	GetPosition(ctx context.Context, symbol string) (market.Position, error)
	// ListOpenOrders returns open orders for symbol, optionally filtered
	// by side ("" matches both sides).
	ListOpenOrders(ctx context.Context, symbol string, side market.OrderSide) ([]market.Order, error)
	SubmitMarketOrder(ctx context.Context, req MarketOrderRequest) (market.Order, error)
}

type Account struct {
	ID          string
	Currency    string
	Cash        float64
	BuyingPower float64
	Equity      float64
}

// MarketOrderRequest is a day market order. Buys are sized by Notional
// (dollars), sells by Qty (shares); exactly one of the two is set.
type MarketOrderRequest struct {
	Symbol   string
	Side     market.OrderSide
	Notional float64
	Qty      float64
}

// HasOpenBuyOrder reports whether the account has an open buy order for
// symbol. Shared by the reinvestment and acquisition dedup checks.
func HasOpenBuyOrder(ctx context.Context, b Broker, symbol string) (bool, error) {
	orders, err := b.ListOpenOrders(ctx, symbol, market.Buy)
	if err != nil {
		return false, err
	}
	return len(orders) > 0, nil
}
