package backtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gasterbin/market-lab/market"
)

func TestGrid_KeepsOnlyCrossablePairs(t *testing.T) {
	grid := Grid([]int{8, 26}, []int{26, 50}, 1.0)

	require.Len(t, grid, 3, "26x26 cannot form a pair")
	assert.Contains(t, grid, Params{Fast: 8, Slow: 26, InitialCapital: 1.0})
	assert.Contains(t, grid, Params{Fast: 8, Slow: 50, InitialCapital: 1.0})
	assert.Contains(t, grid, Params{Fast: 26, Slow: 50, InitialCapital: 1.0})
}

func TestSweep_MatchesIndividualRuns(t *testing.T) {
	s := series(t, 10, 11, 9, 12, 15, 14, 16, 13, 17, 18, 12, 11, 19, 20)
	grid := Grid([]int{2, 3}, []int{4, 6}, 1.0)

	results, err := Sweep(context.Background(), s, grid)
	require.NoError(t, err)
	require.Len(t, results, len(grid))

	for _, sr := range results {
		single, err := Run(s, sr.Params)
		require.NoError(t, err)
		assert.Equal(t, single.Report, sr.Report, "params %s", sr.Params)
	}

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Report.TotalReturn, results[i].Report.TotalReturn,
			"results sorted by descending total return")
	}
}

func TestSweep_PropagatesRunErrors(t *testing.T) {
	s := series(t, 10, 11, 12, 13, 14)
	bad := []Params{{Fast: 2, Slow: 3, InitialCapital: 1}, {Fast: 2, Slow: 3, InitialCapital: -1}}

	_, err := Sweep(context.Background(), s, bad)
	require.ErrorIs(t, err, market.ErrInvalidParameter)
}

func TestSweep_CancelledContext(t *testing.T) {
	s := series(t, 10, 11, 12, 13, 14)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sweep(ctx, s, Grid([]int{2}, []int{3}, 1.0))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSweep_EmptyGrid(t *testing.T) {
	s := series(t, 10, 11, 12)
	results, err := Sweep(context.Background(), s, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
