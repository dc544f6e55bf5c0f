package backtest

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/gasterbin/market-lab/market"
)

// SweepResult pairs one parameter combination with its report.
type SweepResult struct {
	Params Params
	Report Report
}

// Grid builds the parameter grid for a sweep: the cross product of the fast
// and slow period lists at the given capital, keeping only combinations with
// fast < slow (the rest cannot form a crossover pair).
func Grid(fasts, slows []int, capital float64) []Params {
	var out []Params
	for _, f := range fasts {
		for _, s := range slows {
			if f < s {
				out = append(out, Params{Fast: f, Slow: s, InitialCapital: capital})
			}
		}
	}
	return out
}

// Sweep runs an independent backtest per parameter combination. Runs are
// side-effect-free, so they execute in parallel, bounded by GOMAXPROCS.
// Cancellation is cooperative between runs: a run never stops mid-way, but
// once ctx is done no further run starts. The first failing run aborts the
// sweep. Results come back sorted by descending total return.
func Sweep(ctx context.Context, series market.Series, grid []Params) ([]SweepResult, error) {
	results := make([]SweepResult, len(grid))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, p := range grid {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Run(series, p)
			if err != nil {
				return err
			}
			results[i] = SweepResult{Params: p, Report: res.Report}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Report.TotalReturn > results[b].Report.TotalReturn
	})
	return results, nil
}
