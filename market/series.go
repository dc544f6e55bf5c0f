package market

import (
	"fmt"
	"math"
	"time"
)

// Series is an ordered candle sequence, immutable once built. NewSeries is
// the only constructor; everything downstream may assume its invariants:
// strictly increasing timestamps, finite values, positive prices,
// non-negative volume. Gaps between candles are permitted.
type Series struct {
	candles []Candle
}

// NewSeries validates raw candles and returns the canonical series. The
// input slice is copied so later mutation by the caller cannot reach the
// series. Validation failures wrap ErrMalformedInput and name the first
// offending row.
func NewSeries(candles []Candle) (Series, error) {
	cs := make([]Candle, len(candles))
	copy(cs, candles)

	var prev time.Time
	for i, c := range cs {
		if c.Time.IsZero() {
			return Series{}, fmt.Errorf("%w: candle %d: missing timestamp", ErrMalformedInput, i)
		}
		if i > 0 && !c.Time.After(prev) {
			return Series{}, fmt.Errorf("%w: candle %d: timestamp %s not after %s",
				ErrMalformedInput, i, c.Time.Format(time.RFC3339), prev.Format(time.RFC3339))
		}
		prev = c.Time

		for _, p := range []struct {
			name string
			v    float64
		}{
			{"open", c.Open}, {"high", c.High}, {"low", c.Low}, {"close", c.Close},
		} {
			if !isFinite(p.v) || p.v <= 0 {
				return Series{}, fmt.Errorf("%w: candle %d: %s price %v", ErrMalformedInput, i, p.name, p.v)
			}
		}
		if !isFinite(c.Volume) || c.Volume < 0 {
			return Series{}, fmt.Errorf("%w: candle %d: volume %v", ErrMalformedInput, i, c.Volume)
		}
	}

	return Series{candles: cs}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Len returns the number of candles.
func (s Series) Len() int { return len(s.candles) }

// At returns the candle at index i.
func (s Series) At(i int) Candle { return s.candles[i] }

// First returns the earliest candle. Panics on an empty series.
func (s Series) First() Candle { return s.candles[0] }

// Last returns the latest candle. Panics on an empty series.
func (s Series) Last() Candle { return s.candles[len(s.candles)-1] }

// Closes returns a fresh slice of closing prices.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.candles))
	for i, c := range s.candles {
		out[i] = c.Close
	}
	return out
}

// Candles returns a copy of the underlying candles.
func (s Series) Candles() []Candle {
	out := make([]Candle, len(s.candles))
	copy(out, s.candles)
	return out
}
