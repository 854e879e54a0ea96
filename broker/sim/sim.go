// Package sim is an in-memory broker for tests and dry runs. It holds
// a seeded account snapshot and records every submitted order instead
// of sending it anywhere.
package sim

import (
	"context"
	"fmt"

	"github.com/rustyeddy/reinvestor/broker"
	"github.com/rustyeddy/reinvestor/market"
	"github.com/rustyeddy/reinvestor/pkg/id"
)

type Broker struct {
	Account    broker.Account
	Positions  []market.Position
	OpenOrders []market.Order

	// FailSymbols maps a symbol to the error message its submissions
	// fail with. Submissions for other symbols succeed.
	FailSymbols map[string]string

	// Submitted accumulates every order request, failed ones included.
	Submitted []broker.MarketOrderRequest

	// AccountErr, PositionsErr and OrdersErr force the corresponding
	// reads to fail.
	AccountErr   error
	PositionsErr error
	OrdersErr    error
}

func New(account broker.Account) *Broker {
	return &Broker{Account: account}
}

func (b *Broker) GetAccount(ctx context.Context) (broker.Account, error) {
	if b.AccountErr != nil {
		return broker.Account{}, b.AccountErr
	}
	return b.Account, nil
}

func (b *Broker) ListPositions(ctx context.Context) ([]market.Position, error) {
	if b.PositionsErr != nil {
		return nil, b.PositionsErr
	}
	return b.Positions, nil
}

func (b *Broker) GetPosition(ctx context.Context, symbol string) (market.Position, error) {
	if b.PositionsErr != nil {
		return market.Position{}, b.PositionsErr
	}
	for _, p := range b.Positions {
		if p.Symbol == symbol {
			return p, nil
		}
	}
	return market.Position{}, broker.ErrNoPosition
}

func (b *Broker) ListOpenOrders(ctx context.Context, symbol string, side market.OrderSide) ([]market.Order, error) {
	if b.OrdersErr != nil {
		return nil, b.OrdersErr
	}
	var orders []market.Order
	for _, o := range b.OpenOrders {
		if symbol != "" && o.Symbol != symbol {
			continue
		}
		if side != "" && o.Side != side {
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (b *Broker) SubmitMarketOrder(ctx context.Context, req broker.MarketOrderRequest) (market.Order, error) {
	b.Submitted = append(b.Submitted, req)

	if msg, ok := b.FailSymbols[req.Symbol]; ok {
		return market.Order{}, fmt.Errorf("%s", msg)
	}

	return market.Order{
		ID:     id.New(),
		Symbol: req.Symbol,
		Side:   req.Side,
		Status: market.StatusOpen,
	}, nil
}
