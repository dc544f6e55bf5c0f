package backtest

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gasterbin/market-lab/market"
)

func equityCurve(values ...float64) []EquityPoint {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]EquityPoint, len(values))
	for i, v := range values {
		out[i] = EquityPoint{Time: t0.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return out
}

func TestBuildReport_Metrics(t *testing.T) {
	eq := equityCurve(1.0, 1.2, 0.9, 1.1, 1.5)
	trades := []Trade{
		{PnL: 2, ReturnPct: 0.2},
		{PnL: -1, ReturnPct: -0.1},
		{PnL: 0, ReturnPct: 0},
	}

	rep, err := BuildReport(eq, trades)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, rep.TotalReturn, 1e-9)
	assert.Equal(t, 3, rep.NumTrades)
	assert.InDelta(t, 1.0/3.0, rep.WinRate, 1e-9, "only pnl > 0 counts as a win")
	assert.InDelta(t, (1.2-0.9)/1.2, rep.MaxDrawdown, 1e-9)
	assert.InDelta(t, 1.5, rep.FinalEquity, 1e-9)
}

func TestBuildReport_NoTrades(t *testing.T) {
	rep, err := BuildReport(equityCurve(1, 1, 1), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, rep.NumTrades)
	assert.Equal(t, 0.0, rep.WinRate, "defined as 0, not NaN")
	assert.Equal(t, 0.0, rep.TotalReturn)
	assert.Equal(t, 0.0, rep.MaxDrawdown)
}

func TestBuildReport_EmptyCurve(t *testing.T) {
	_, err := BuildReport(nil, nil)
	require.ErrorIs(t, err, market.ErrInsufficientData)
}

func TestBuildReport_WinRateBounds(t *testing.T) {
	allWins := []Trade{{PnL: 1}, {PnL: 2}}
	rep, err := BuildReport(equityCurve(1, 2), allWins)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rep.WinRate)

	allLosses := []Trade{{PnL: -1}, {PnL: -2}}
	rep, err = BuildReport(equityCurve(1, 0.5), allLosses)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rep.WinRate)
}

func TestWriteReport_RendersSummary(t *testing.T) {
	s := series(t, 10, 11, 9, 12, 15)
	res, err := Run(s, Params{Fast: 2, Slow: 3, InitialCapital: 1})
	require.NoError(t, err)

	sum := Summarize("01JRUN", "candles.csv", "BTCUSDT", "1h", s, res)
	assert.Equal(t, 1, sum.Wins)
	assert.Equal(t, 0, sum.Losses)
	assert.Equal(t, 5, sum.Bars)
	assert.Equal(t, s.First().Time, sum.Start)
	assert.Equal(t, s.Last().Time, sum.End)

	var buf bytes.Buffer
	WriteReport(&buf, sum)
	out := buf.String()

	assert.Contains(t, out, "Run ID:        01JRUN")
	assert.Contains(t, out, "Strategy:      EMA-Cross(2,3)")
	assert.Contains(t, out, "Symbol:        BTCUSDT")
	assert.Contains(t, out, "Trades:        1")
	assert.Contains(t, out, "Total Return:  25.00%")
	assert.Contains(t, out, "Max Drawdown:  0.00%")
}
