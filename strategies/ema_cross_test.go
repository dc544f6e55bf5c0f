package strategies

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gasterbin/market-lab/market"
)

func TestCrossSignal_StrictComparison(t *testing.T) {
	nan := math.NaN()
	fast := []float64{nan, 1.0, 2.0, 2.0, 3.0}
	slow := []float64{nan, nan, 1.5, 2.0, 3.5}

	sig, err := CrossSignal(fast, slow)
	require.NoError(t, err)
	require.Len(t, sig, 5)

	assert.Equal(t, Flat, sig[0], "NaN vs NaN")
	assert.Equal(t, Flat, sig[1], "defined vs NaN stays flat")
	assert.Equal(t, Long, sig[2])
	assert.Equal(t, Flat, sig[3], "tie resolves to flat")
	assert.Equal(t, Flat, sig[4])
}

func TestCrossSignal_LengthMismatch(t *testing.T) {
	_, err := CrossSignal([]float64{1, 2}, []float64{1})
	require.ErrorIs(t, err, market.ErrInvalidParameter)
}

func TestNewEMACross_Validation(t *testing.T) {
	_, err := NewEMACross(12, 26)
	require.NoError(t, err)

	for _, tc := range [][2]int{{5, 5}, {26, 12}, {0, 26}, {12, 0}, {-1, 26}} {
		_, err := NewEMACross(tc[0], tc[1])
		assert.ErrorIs(t, err, market.ErrInvalidParameter, "fast=%d slow=%d", tc[0], tc[1])
	}
}

func TestEMACross_SignalScenario(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	closes := []float64{10, 11, 9, 12, 15}
	candles := make([]market.Candle, len(closes))
	for i, c := range closes {
		candles[i] = market.Candle{
			Time: t0.Add(time.Duration(i) * time.Hour),
			Open: c, High: c, Low: c, Close: c, Volume: 1,
		}
	}
	s, err := market.NewSeries(candles)
	require.NoError(t, err)

	strat := EMACross{Fast: 2, Slow: 3}
	sig, err := strat.Signal(s)
	require.NoError(t, err)

	// fast EMA: [_, 10.5, 9.5, 11.1667, 13.7222]
	// slow EMA: [_, _, 10, 11, 13]
	assert.Equal(t, []Position{Flat, Flat, Flat, Long, Long}, sig)
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "LONG", Long.String())
	assert.Equal(t, "FLAT", Flat.String())
}
