package indicators

import (
	"fmt"
	"time"

	"github.com/gasterbin/market-lab/market"
)

// Row is one time-aligned entry of the indicator table.
type Row struct {
	Time      time.Time
	Close     float64
	Return    float64
	CumReturn float64
	Fast      float64 // fast EMA, NaN during warm-up
	Slow      float64 // slow EMA, NaN during warm-up
}

// Table holds the fast/slow EMA pair plus return columns, aligned 1:1 with
// the series it was computed from.
type Table struct {
	FastPeriod int
	SlowPeriod int
	Rows       []Row
}

// Compute builds the indicator table for the series. It fails with
// market.ErrInvalidParameter when fast >= slow, either period is
// non-positive, or the series is empty.
func Compute(series market.Series, fast, slow int) (Table, error) {
	if fast >= slow {
		return Table{}, fmt.Errorf("%w: fast period %d must be < slow period %d",
			market.ErrInvalidParameter, fast, slow)
	}

	closes := series.Closes()

	fastEMA, err := EMA(closes, fast)
	if err != nil {
		return Table{}, err
	}
	slowEMA, err := EMA(closes, slow)
	if err != nil {
		return Table{}, err
	}

	rets := Returns(closes)
	cum := CumReturns(rets)

	rows := make([]Row, series.Len())
	for i := range rows {
		rows[i] = Row{
			Time:      series.At(i).Time,
			Close:     closes[i],
			Return:    rets[i],
			CumReturn: cum[i],
			Fast:      fastEMA[i],
			Slow:      slowEMA[i],
		}
	}

	return Table{FastPeriod: fast, SlowPeriod: slow, Rows: rows}, nil
}

// FastSlow returns the EMA columns as slices, aligned with the table rows.
func (t Table) FastSlow() (fast, slow []float64) {
	fast = make([]float64, len(t.Rows))
	slow = make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		fast[i] = r.Fast
		slow[i] = r.Slow
	}
	return fast, slow
}
