package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rustyeddy/reinvestor/broker"
	"github.com/rustyeddy/reinvestor/journal"
	"github.com/rustyeddy/reinvestor/market"
	"github.com/rustyeddy/reinvestor/risk"
)

// liquidate sells every position whose gain has reached the profit
// target, adding realized proceeds to the ledger value it returns. The
// dividend instrument is exempt no matter how far it has run. One audit
// row is written per submission attempt, success or fail.
func (e *Engine) liquidate(ctx context.Context, log *zap.Logger, runID string, funds float64, rep *Report) (float64, error) {
	positions, err := e.broker.ListPositions(ctx)
	if err != nil {
		return funds, fmt.Errorf("list positions: %w", err)
	}

	for _, pos := range positions {
		if pos.Symbol == e.params.DividendSymbol {
			continue
		}
		if !risk.ShouldLiquidate(pos, e.params.ProfitTarget) {
			continue
		}

		log.Info("liquidating position",
			zap.String("symbol", pos.Symbol),
			zap.Float64("qty", pos.Qty),
			zap.Float64("price", pos.CurrentPrice),
			zap.Float64("gain", pos.Gain()))

		order, err := e.broker.SubmitMarketOrder(ctx, broker.MarketOrderRequest{
			Symbol: pos.Symbol,
			Side:   market.Sell,
			Qty:    pos.Qty,
		})

		price := pos.CurrentPrice
		rec := journal.OrderRecord{
			Time:   e.now(),
			Symbol: pos.Symbol,
			Side:   string(market.Sell),
			Price:  &price,
			RunID:  runID,
		}
		if err != nil {
			rec.ErrText = err.Error()
			rep.SellFailures++
			log.Warn("sell failed", zap.String("symbol", pos.Symbol), zap.Error(err))
		} else {
			rec.OrderID = order.ID
			rec.Success = true
			funds += market.Proceeds(pos.Qty, pos.CurrentPrice)
			rep.Sold++
		}

		if jerr := e.journal.RecordOrder(rec); jerr != nil {
			log.Warn("audit append failed", zap.Error(jerr))
		}

		e.pacer.Pause(ctx)
	}

	return funds, nil
}
