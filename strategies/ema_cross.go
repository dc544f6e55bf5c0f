// Package strategies turns indicator series into discrete position signals.
package strategies

import (
	"fmt"

	"github.com/gasterbin/market-lab/indicators"
	"github.com/gasterbin/market-lab/market"
)

// Position is the stance the strategy wants: fully invested or out.
type Position int8

const (
	Flat Position = iota
	Long
)

func (p Position) String() string {
	if p == Long {
		return "LONG"
	}
	return "FLAT"
}

// CrossSignal derives the position signal from a fast/slow EMA pair: Long at
// index i when fast[i] > slow[i] strictly, Flat otherwise. Ties resolve to
// Flat, and warm-up NaN entries compare false, so the signal stays Flat until
// both averages are defined. The signal at i uses only values available at i;
// the backtest engine applies the one-bar execution lag.
func CrossSignal(fastEMA, slowEMA []float64) ([]Position, error) {
	if len(fastEMA) != len(slowEMA) {
		return nil, fmt.Errorf("%w: fast/slow length mismatch %d != %d",
			market.ErrInvalidParameter, len(fastEMA), len(slowEMA))
	}

	out := make([]Position, len(fastEMA))
	for i := range fastEMA {
		if fastEMA[i] > slowEMA[i] {
			out[i] = Long
		}
	}
	return out, nil
}

// EMACross is the fast/slow EMA crossover strategy.
type EMACross struct {
	Fast int
	Slow int
}

// NewEMACross validates the periods: both positive, fast strictly below slow.
func NewEMACross(fast, slow int) (EMACross, error) {
	if fast <= 0 || slow <= 0 {
		return EMACross{}, fmt.Errorf("%w: periods must be > 0, got fast=%d slow=%d",
			market.ErrInvalidParameter, fast, slow)
	}
	if fast >= slow {
		return EMACross{}, fmt.Errorf("%w: fast period %d must be < slow period %d",
			market.ErrInvalidParameter, fast, slow)
	}
	return EMACross{Fast: fast, Slow: slow}, nil
}

func (s EMACross) Name() string {
	return fmt.Sprintf("EMA-Cross(%d,%d)", s.Fast, s.Slow)
}

// Signal computes the position signal for the series, one entry per candle.
func (s EMACross) Signal(series market.Series) ([]Position, error) {
	if _, err := NewEMACross(s.Fast, s.Slow); err != nil {
		return nil, err
	}

	closes := series.Closes()
	fast, err := indicators.EMA(closes, s.Fast)
	if err != nil {
		return nil, err
	}
	slow, err := indicators.EMA(closes, s.Slow)
	if err != nil {
		return nil, err
	}
	return CrossSignal(fast, slow)
}
