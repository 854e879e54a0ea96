package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/rustyeddy/reinvestor/broker"
	"github.com/rustyeddy/reinvestor/journal"
	"github.com/rustyeddy/reinvestor/market"
)

// reinvest redeploys the accumulated ledger balance into the dividend
// instrument once it reaches the minimum threshold. The ledger only
// resets to zero on a successful submission; a failed or skipped buy
// leaves the full balance to be retried next run.
func (e *Engine) reinvest(ctx context.Context, log *zap.Logger, runID string, funds float64, rep *Report) float64 {
	if funds < e.params.MinReinvest {
		return funds
	}

	open, err := broker.HasOpenBuyOrder(ctx, e.broker, e.params.DividendSymbol)
	if err != nil {
		// Can't tell whether a prior buy is still resolving; skipping
		// avoids a duplicate and keeps the funds for next run.
		log.Warn("open-order lookup failed, skipping reinvestment", zap.Error(err))
		return funds
	}
	if open {
		log.Info("skipping reinvestment: buy order still outstanding",
			zap.String("symbol", e.params.DividendSymbol))
		return funds
	}

	notional := market.RoundCents(funds)
	log.Info("reinvesting accumulated profit",
		zap.String("symbol", e.params.DividendSymbol),
		zap.Float64("notional", notional))

	order, err := e.broker.SubmitMarketOrder(ctx, broker.MarketOrderRequest{
		Symbol:   e.params.DividendSymbol,
		Side:     market.Buy,
		Notional: notional,
	})

	rec := journal.OrderRecord{
		Time:     e.now(),
		Symbol:   e.params.DividendSymbol,
		Side:     string(market.Buy),
		Notional: &notional,
		RunID:    runID,
	}
	if err != nil {
		rec.ErrText = err.Error()
		log.Warn("reinvestment buy failed", zap.Error(err))
	} else {
		rec.OrderID = order.ID
		rec.Success = true
		rep.Reinvested = notional
		funds = 0
	}

	if jerr := e.journal.RecordOrder(rec); jerr != nil {
		log.Warn("audit append failed", zap.Error(jerr))
	}

	return funds
}
