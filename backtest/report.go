package backtest

import (
	"fmt"
	"io"
	"time"

	"github.com/gasterbin/market-lab/market"
)

// Report is the read-only performance summary of one run.
type Report struct {
	TotalReturn float64
	NumTrades   int
	WinRate     float64 // 0 when there are no trades
	MaxDrawdown float64 // non-negative fraction of the running peak
	FinalEquity float64
}

// BuildReport aggregates the equity curve and trade log. It fails with
// market.ErrInsufficientData on an empty curve; there are no other error
// conditions.
func BuildReport(equity []EquityPoint, trades []Trade) (Report, error) {
	if len(equity) == 0 {
		return Report{}, fmt.Errorf("%w: empty equity curve", market.ErrInsufficientData)
	}

	wins := 0
	for _, t := range trades {
		if t.PnL > 0 {
			wins++
		}
	}
	winRate := 0.0
	if len(trades) > 0 {
		winRate = float64(wins) / float64(len(trades))
	}

	peak := equity[0].Value
	maxDD := 0.0
	for _, e := range equity {
		if e.Value > peak {
			peak = e.Value
		}
		if dd := (peak - e.Value) / peak; dd > maxDD {
			maxDD = dd
		}
	}

	last := equity[len(equity)-1].Value
	return Report{
		TotalReturn: last/equity[0].Value - 1,
		NumTrades:   len(trades),
		WinRate:     winRate,
		MaxDrawdown: maxDD,
		FinalEquity: last,
	}, nil
}

// Summary is the run description handed to report writers: the Report plus
// everything needed to label it.
type Summary struct {
	RunID    string
	Dataset  string
	Symbol   string
	Interval string

	Start time.Time
	End   time.Time
	Bars  int

	Params Params

	Wins   int
	Losses int

	Report Report
}

// Summarize labels a result for reporting. Dataset names the input (a file
// path or "binance"); symbol/interval may be empty for local files.
func Summarize(runID, dataset, symbol, interval string, series market.Series, res Result) Summary {
	wins, losses := 0, 0
	for _, t := range res.Trades {
		switch {
		case t.PnL > 0:
			wins++
		case t.PnL < 0:
			losses++
		}
	}

	return Summary{
		RunID:    runID,
		Dataset:  dataset,
		Symbol:   symbol,
		Interval: interval,
		Start:    series.First().Time,
		End:      series.Last().Time,
		Bars:     series.Len(),
		Params:   res.Params,
		Wins:     wins,
		Losses:   losses,
		Report:   res.Report,
	}
}

// WriteReport renders the textual summary block.
func WriteReport(w io.Writer, s Summary) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	if s.RunID != "" {
		fmt.Fprintf(w, "Run ID:        %s\n", s.RunID)
	}
	fmt.Fprintf(w, "Strategy:      EMA-Cross(%d,%d)\n", s.Params.Fast, s.Params.Slow)
	if s.Symbol != "" {
		fmt.Fprintf(w, "Symbol:        %s\n", s.Symbol)
	}
	if s.Interval != "" {
		fmt.Fprintf(w, "Interval:      %s\n", s.Interval)
	}
	if s.Dataset != "" {
		fmt.Fprintf(w, "Dataset:       %s\n", s.Dataset)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Period")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start:         %s\n", s.Start.Format(time.RFC3339))
	fmt.Fprintf(w, "End:           %s\n", s.End.Format(time.RFC3339))
	fmt.Fprintf(w, "Bars:          %d\n", s.Bars)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", s.Report.NumTrades)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.Report.WinRate*100)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Capital: %.4f\n", s.Params.InitialCapital)
	fmt.Fprintf(w, "Final Equity:  %.4f\n", s.Report.FinalEquity)
	fmt.Fprintf(w, "Total Return:  %.2f%%\n", s.Report.TotalReturn*100)
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", s.Report.MaxDrawdown*100)
	fmt.Fprintln(w)
}
