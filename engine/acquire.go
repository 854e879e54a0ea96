package engine

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/rustyeddy/reinvestor/broker"
	"github.com/rustyeddy/reinvestor/journal"
	"github.com/rustyeddy/reinvestor/market"
	"github.com/rustyeddy/reinvestor/risk"
)

// acquire opens a position for each eligible signal, in feed order.
// Every buy in the run is sized from the same buying-power reading.
// Symbols already held, or with a buy order still outstanding, are
// skipped so a signal repeated across runs never doubles up.
func (e *Engine) acquire(ctx context.Context, log *zap.Logger, runID string, picks []market.Signal, buyingPower float64, rep *Report) {
	notional := risk.Notional(buyingPower, e.params.SizingFraction)

	for _, sig := range picks {
		// The dividend instrument is only ever bought by reinvestment.
		if sig.Symbol == "" || sig.Symbol == e.params.DividendSymbol {
			continue
		}

		if notional < risk.MinNotional {
			rep.Skipped++
			log.Warn("skipping signal: notional below minimum",
				zap.String("symbol", sig.Symbol),
				zap.Float64("notional", notional))
			continue
		}

		if e.alreadyHeld(ctx, log, sig.Symbol) {
			rep.Skipped++
			log.Info("skipping signal: already held", zap.String("symbol", sig.Symbol))
			continue
		}

		open, err := broker.HasOpenBuyOrder(ctx, e.broker, sig.Symbol)
		if err != nil {
			rep.Skipped++
			log.Warn("open-order lookup failed, skipping signal",
				zap.String("symbol", sig.Symbol), zap.Error(err))
			continue
		}
		if open {
			rep.Skipped++
			log.Info("skipping signal: buy order still outstanding",
				zap.String("symbol", sig.Symbol))
			continue
		}

		log.Info("buying signal",
			zap.String("symbol", sig.Symbol),
			zap.Float64("notional", notional))

		order, err := e.broker.SubmitMarketOrder(ctx, broker.MarketOrderRequest{
			Symbol:   sig.Symbol,
			Side:     market.Buy,
			Notional: notional,
		})

		amt := notional
		rec := journal.OrderRecord{
			Time:     e.now(),
			Symbol:   sig.Symbol,
			Side:     string(market.Buy),
			Notional: &amt,
			Price:    sig.RefPrice,
			RunID:    runID,
		}
		if err != nil {
			rec.ErrText = err.Error()
			rep.BuyFailures++
			log.Warn("buy failed", zap.String("symbol", sig.Symbol), zap.Error(err))
		} else {
			rec.OrderID = order.ID
			rec.Success = true
			rep.Bought++
		}

		if jerr := e.journal.RecordOrder(rec); jerr != nil {
			log.Warn("audit append failed", zap.Error(jerr))
		}

		e.pacer.Pause(ctx)
	}
}

// alreadyHeld reports whether the account holds a positive quantity of
// symbol. A lookup failure counts as not held, the safe-to-trade
// default, since the open-order check still guards against duplicates.
func (e *Engine) alreadyHeld(ctx context.Context, log *zap.Logger, symbol string) bool {
	pos, err := e.broker.GetPosition(ctx, symbol)
	if err != nil {
		if !errors.Is(err, broker.ErrNoPosition) {
			log.Warn("position lookup failed, assuming none",
				zap.String("symbol", symbol), zap.Error(err))
		}
		return false
	}
	return pos.Qty > 0
}
