// Package engine holds the trading decision logic: liquidate winners,
// reinvest accumulated profit into the dividend instrument, then open
// new positions from the screener feed. One Run per invocation; the
// only state that survives between runs is the profit ledger.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/reinvestor/broker"
	"github.com/rustyeddy/reinvestor/journal"
	"github.com/rustyeddy/reinvestor/market"
	"github.com/rustyeddy/reinvestor/pkg/id"
	"github.com/rustyeddy/reinvestor/screener"
)

// Params are the engine's tuning knobs. Zero values are not usable;
// start from DefaultParams.
type Params struct {
	// DividendSymbol is the instrument accumulated profit is redeployed
	// into. It is never sold and never bought via the signal path.
	DividendSymbol string
	// ProfitTarget is the fractional gain at which a position is
	// liquidated, e.g. 0.05 for +5%.
	ProfitTarget float64
	// SizingFraction of total buying power allocated to each new
	// position.
	SizingFraction float64
	// MinReinvest is the ledger balance at which a reinvestment buy is
	// triggered.
	MinReinvest float64
}

func DefaultParams() Params {
	return Params{
		DividendSymbol: "VIG",
		ProfitTarget:   0.05,
		SizingFraction: 0.05,
		MinReinvest:    1.00,
	}
}

// Report summarizes one run for console output.
type Report struct {
	RunID        string
	LedgerBefore float64
	LedgerAfter  float64
	Sold         int
	SellFailures int
	// Reinvested is the notional successfully redeployed into the
	// dividend instrument, 0 when reinvestment did not fire.
	Reinvested  float64
	Bought      int
	BuyFailures int
	Skipped     int
}

type Engine struct {
	broker  broker.Broker
	journal journal.Journal
	signals screener.Source
	params  Params
	log     *zap.Logger

	pacer Pacer
	now   func() time.Time
}

func New(b broker.Broker, jnl journal.Journal, src screener.Source, p Params, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		broker:  b,
		journal: jnl,
		signals: src,
		params:  p,
		log:     log,
		pacer:   FixedDelay(DefaultOrderPause),
		now:     time.Now,
	}
}

// SetPacer replaces the inter-order pacing policy. Tests use None.
func (e *Engine) SetPacer(p Pacer) { e.pacer = p }

// SetClock replaces the timestamp source for audit records.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// Run executes one full decision cycle: account snapshot, liquidation,
// reinvestment, acquisition, then a single ledger write. The ledger is
// read once at the start and persisted exactly once at the end, after
// all steps have completed, so a failed run never leaves it half
// written.
func (e *Engine) Run(ctx context.Context) (Report, error) {
	runID := id.New()
	log := e.log.With(zap.String("run", runID))

	acct, err := e.broker.GetAccount(ctx)
	if err != nil {
		return Report{RunID: runID}, fmt.Errorf("read account: %w", err)
	}
	log.Info("account snapshot",
		zap.String("account", acct.ID),
		zap.Float64("buying_power", acct.BuyingPower))

	funds, err := e.journal.Funds()
	if err != nil {
		log.Warn("ledger read failed, assuming zero accumulated funds", zap.Error(err))
		funds = 0
	}

	rep := Report{RunID: runID, LedgerBefore: funds}

	funds, err = e.liquidate(ctx, log, runID, funds, &rep)
	if err != nil {
		return rep, err
	}

	// Reinvestment must see this run's liquidation proceeds, so it
	// runs on the threaded ledger value, not a re-read.
	funds = e.reinvest(ctx, log, runID, funds, &rep)

	picks, err := e.signals.Picks(ctx)
	if err != nil {
		log.Warn("screener unavailable, no signals this run", zap.Error(err))
		picks = nil
	}
	log.Info("screener picks", zap.Int("eligible", len(picks)))

	// Acquisition sizes every buy from the buying power read before
	// any of this run's orders; fills are asynchronous and have not
	// settled yet.
	e.acquire(ctx, log, runID, picks, acct.BuyingPower, &rep)

	funds = market.RoundCents(funds)
	if err := e.journal.SetFunds(funds); err != nil {
		return rep, fmt.Errorf("persist ledger: %w", err)
	}
	rep.LedgerAfter = funds

	log.Info("run complete",
		zap.Int("sold", rep.Sold),
		zap.Int("bought", rep.Bought),
		zap.Float64("reinvested", rep.Reinvested),
		zap.Float64("ledger", rep.LedgerAfter))
	return rep, nil
}
