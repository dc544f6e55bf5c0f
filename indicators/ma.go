// Package indicators provides the moving averages and return series that
// feed crossover signal generation.
//
// All vector indicators return a slice the same length as the input. Entries
// before the warm-up completes are NaN ("no value yet"); callers that compare
// indicator values get FLAT-ish behavior for free because any comparison with
// NaN is false.
package indicators

import (
	"fmt"
	"math"

	"github.com/gasterbin/market-lab/market"
)

// SMA computes the simple moving average over the closes. The first
// period-1 entries are NaN.
func SMA(closes []float64, period int) ([]float64, error) {
	if err := checkArgs(closes, period); err != nil {
		return nil, err
	}

	out := nanSlice(len(closes))
	sum := 0.0
	for i, v := range closes {
		sum += v
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out, nil
}

// EMA computes the exponential moving average over the closes with smoothing
// factor alpha = 2/(period+1).
//
// Seeding policy: the first defined value, at index period-1, is the simple
// average of the first period closes; entries before it are NaN. If the
// series is shorter than the period, the single defined value is the simple
// average of all closes, at the final index.
func EMA(closes []float64, period int) ([]float64, error) {
	if err := checkArgs(closes, period); err != nil {
		return nil, err
	}

	n := len(closes)
	out := nanSlice(n)

	if n < period {
		out[n-1] = mean(closes)
		return out, nil
	}

	alpha := 2.0 / float64(period+1)
	ema := mean(closes[:period])
	out[period-1] = ema
	for i := period; i < n; i++ {
		ema = closes[i]*alpha + ema*(1-alpha)
		out[i] = ema
	}
	return out, nil
}

// Returns computes per-bar simple returns of the closes. Index 0 is 0: there
// is no prior close to compare against.
func Returns(closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		out[i] = closes[i]/closes[i-1] - 1
	}
	return out
}

// CumReturns compounds per-bar returns into a cumulative return series.
func CumReturns(returns []float64) []float64 {
	out := make([]float64, len(returns))
	acc := 1.0
	for i, r := range returns {
		acc *= 1 + r
		out[i] = acc - 1
	}
	return out
}

func checkArgs(closes []float64, period int) error {
	if period <= 0 {
		return fmt.Errorf("%w: period %d must be > 0", market.ErrInvalidParameter, period)
	}
	if len(closes) == 0 {
		return fmt.Errorf("%w: empty close series", market.ErrInvalidParameter)
	}
	return nil
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
