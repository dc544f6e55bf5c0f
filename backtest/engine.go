// Package backtest simulates a single-position crossover strategy over a
// candle series and aggregates the outcome into summary metrics.
//
// The engine is a pure function of (series, params): no I/O, no hidden
// state, bit-identical results across runs. That is what makes parameter
// sweeps trivially parallel (see Sweep).
package backtest

import (
	"fmt"
	"time"

	"github.com/gasterbin/market-lab/market"
	"github.com/gasterbin/market-lab/strategies"
)

// Params configures one backtest run.
type Params struct {
	Fast           int
	Slow           int
	InitialCapital float64
}

// DefaultParams mirrors the classic MACD periods with normalized capital.
func DefaultParams() Params {
	return Params{Fast: 12, Slow: 26, InitialCapital: 1.0}
}

func (p Params) String() string {
	return fmt.Sprintf("fast=%d slow=%d capital=%g", p.Fast, p.Slow, p.InitialCapital)
}

// Trade is one closed long round trip. Exit reasons: "cross" when the signal
// reverted, "end-of-data" for the forced close on the final candle.
type Trade struct {
	EntryIndex int
	EntryTime  time.Time
	EntryPrice float64
	ExitIndex  int
	ExitTime   time.Time
	ExitPrice  float64
	PnL        float64
	ReturnPct  float64
	Reason     string
}

// EquityPoint is the simulated capital after a candle, one per input candle.
type EquityPoint struct {
	Time  time.Time
	Value float64
}

// Result bundles everything one run produces.
type Result struct {
	Params Params
	Signal []strategies.Position
	Trades []Trade
	Equity []EquityPoint
	Report Report
}

// Run simulates holding the instrument according to the EMA crossover
// signal with a one-bar execution lag: the stance during bar i is
// signal[i-1], so a cross observed at the close of bar i can only earn
// returns from bar i+1 on.
//
// Execution-price convention: a position entered via signal[i-1] is priced
// at the close of bar i-1, and exits at the close of the last bar held
// (the final close when data runs out while long). Under this convention
// each trade's return equals the compounded equity change over the bars it
// was held, so the trade log exactly decomposes the equity curve.
func Run(series market.Series, p Params) (Result, error) {
	if p.InitialCapital <= 0 {
		return Result{}, fmt.Errorf("%w: initial capital %g must be > 0",
			market.ErrInvalidParameter, p.InitialCapital)
	}
	n := series.Len()
	if n < 2 {
		return Result{}, fmt.Errorf("%w: need at least 2 candles, got %d",
			market.ErrInsufficientData, n)
	}

	strat := strategies.EMACross{Fast: p.Fast, Slow: p.Slow}
	signal, err := strat.Signal(series)
	if err != nil {
		return Result{}, err
	}

	closes := series.Closes()

	equity := make([]EquityPoint, n)
	equity[0] = EquityPoint{Time: series.At(0).Time, Value: p.InitialCapital}

	var trades []Trade
	open := false
	entryIdx := 0

	for i := 1; i < n; i++ {
		long := signal[i-1] == strategies.Long

		switch {
		case long && !open:
			open = true
			entryIdx = i - 1
		case !long && open:
			trades = append(trades, closeTrade(series, closes, entryIdx, i-1, "cross"))
			open = false
		}

		r := 0.0
		if long {
			r = closes[i]/closes[i-1] - 1
		}
		equity[i] = EquityPoint{
			Time:  series.At(i).Time,
			Value: equity[i-1].Value * (1 + r),
		}
	}

	// Force-close so every opened position resolves to exactly one trade.
	if open {
		trades = append(trades, closeTrade(series, closes, entryIdx, n-1, "end-of-data"))
	}

	report, err := BuildReport(equity, trades)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Params: p,
		Signal: signal,
		Trades: trades,
		Equity: equity,
		Report: report,
	}, nil
}

func closeTrade(series market.Series, closes []float64, entryIdx, exitIdx int, reason string) Trade {
	entry := closes[entryIdx]
	exit := closes[exitIdx]
	return Trade{
		EntryIndex: entryIdx,
		EntryTime:  series.At(entryIdx).Time,
		EntryPrice: entry,
		ExitIndex:  exitIdx,
		ExitTime:   series.At(exitIdx).Time,
		ExitPrice:  exit,
		PnL:        exit - entry,
		ReturnPct:  (exit - entry) / entry,
		Reason:     reason,
	}
}
