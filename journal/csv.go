// Package journal reads and writes the pipeline's flat-file artifacts:
// candle CSVs, indicator tables, trade logs, and equity curves. It is the
// boundary translator between files and the canonical market.Series; all
// parse failures classify as market.ErrMalformedInput.
package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/gasterbin/market-lab/backtest"
	"github.com/gasterbin/market-lab/indicators"
	"github.com/gasterbin/market-lab/market"
)

var candleHeader = []string{"time", "open", "high", "low", "close", "volume"}

// WriteCandlesCSV writes the series as a candle CSV with an RFC3339 time
// column.
func WriteCandlesCSV(path string, series market.Series) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write(candleHeader); err != nil {
			return err
		}
		for i := 0; i < series.Len(); i++ {
			c := series.At(i)
			err := w.Write([]string{
				c.Time.UTC().Format(time.RFC3339),
				f(c.Open), f(c.High), f(c.Low), f(c.Close), f(c.Volume),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadCandlesCSV loads a candle CSV written by WriteCandlesCSV (or any file
// with the same header). Paths ending in .xz are decompressed transparently.
// Time cells accept RFC3339 or millisecond epoch integers. Missing fields,
// non-numeric cells, and non-monotonic timestamps fail with
// market.ErrMalformedInput naming the offending row.
func ReadCandlesCSV(path string) (market.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return market.Series{}, err
	}
	defer file.Close()

	var src io.Reader = file
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(file)
		if err != nil {
			return market.Series{}, fmt.Errorf("%w: %s: %v", market.ErrMalformedInput, path, err)
		}
		src = xr
	}

	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	var candles []market.Candle
	row := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return market.Series{}, fmt.Errorf("%w: row %d: %v", market.ErrMalformedInput, row+1, err)
		}
		row++

		if row == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "time") {
			continue
		}
		if len(rec) < len(candleHeader) {
			return market.Series{}, fmt.Errorf("%w: row %d: need %d columns, got %d",
				market.ErrMalformedInput, row, len(candleHeader), len(rec))
		}

		c, err := parseCandleRow(rec)
		if err != nil {
			return market.Series{}, fmt.Errorf("row %d: %w", row, err)
		}
		candles = append(candles, c)
	}

	return market.NewSeries(candles)
}

func parseCandleRow(rec []string) (market.Candle, error) {
	ts, err := parseTime(strings.TrimSpace(rec[0]))
	if err != nil {
		return market.Candle{}, err
	}
	c := market.Candle{Time: ts}

	for i, dst := range []*float64{&c.Open, &c.High, &c.Low, &c.Close, &c.Volume} {
		raw := strings.TrimSpace(rec[i+1])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return market.Candle{}, fmt.Errorf("%w: %s %q is not numeric",
				market.ErrMalformedInput, candleHeader[i+1], raw)
		}
		*dst = v
	}
	return c, nil
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: bad time %q", market.ErrMalformedInput, s)
}

// WriteIndicatorsCSV writes the indicator table; warm-up NaN entries become
// empty cells.
func WriteIndicatorsCSV(path string, table indicators.Table) error {
	header := []string{
		"time", "close", "return", "cum_return",
		fmt.Sprintf("ema_%d", table.FastPeriod),
		fmt.Sprintf("ema_%d", table.SlowPeriod),
	}
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write(header); err != nil {
			return err
		}
		for _, r := range table.Rows {
			err := w.Write([]string{
				r.Time.UTC().Format(time.RFC3339),
				f(r.Close), f(r.Return), f(r.CumReturn), f(r.Fast), f(r.Slow),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteTradesCSV writes the trade log.
func WriteTradesCSV(path string, trades []backtest.Trade) error {
	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{
			"entry_index", "entry_time", "entry_price",
			"exit_index", "exit_time", "exit_price",
			"pnl", "return_pct", "reason",
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, t := range trades {
			err := w.Write([]string{
				strconv.Itoa(t.EntryIndex),
				t.EntryTime.UTC().Format(time.RFC3339),
				f(t.EntryPrice),
				strconv.Itoa(t.ExitIndex),
				t.ExitTime.UTC().Format(time.RFC3339),
				f(t.ExitPrice),
				f(t.PnL), f(t.ReturnPct), t.Reason,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteEquityCSV writes the equity curve.
func WriteEquityCSV(path string, equity []backtest.EquityPoint) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"time", "equity"}); err != nil {
			return err
		}
		for _, e := range equity {
			if err := w.Write([]string{e.Time.UTC().Format(time.RFC3339), f(e.Value)}); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCSV(path string, fill func(*csv.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := fill(w); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Close()
}

func f(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
