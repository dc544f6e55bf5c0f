package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gasterbin/market-lab/backtest"
	"github.com/gasterbin/market-lab/journal"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run an EMA-crossover backtest over a candle CSV",
	Long: `Backtest replays a candle CSV through the EMA-crossover strategy with a
one-bar execution lag and prints the resulting performance numbers.

With --sweep-fast and --sweep-slow it instead runs every fast < slow
combination of the two lists and prints a table sorted by total return.

Examples:
  market-lab backtest --in candles.csv --fast 12 --slow 26
  market-lab backtest --in candles.csv --sweep-fast 5,9,12 --sweep-slow 21,26,50`,
	RunE: runBacktest,
}

var (
	btIn        string
	btFast      int
	btSlow      int
	btCapital   float64
	btTradesOut string
	btEquityOut string
	btSweepFast []int
	btSweepSlow []int
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVar(&btIn, "in", "", "input candle CSV (required; .xz accepted)")
	backtestCmd.Flags().IntVar(&btFast, "fast", 12, "fast EMA period")
	backtestCmd.Flags().IntVar(&btSlow, "slow", 26, "slow EMA period")
	backtestCmd.Flags().Float64Var(&btCapital, "capital", 1.0, "starting capital")
	backtestCmd.Flags().StringVar(&btTradesOut, "trades-out", "", "write the trade log CSV here")
	backtestCmd.Flags().StringVar(&btEquityOut, "equity-out", "", "write the equity curve CSV here")
	backtestCmd.Flags().IntSliceVar(&btSweepFast, "sweep-fast", nil, "fast periods to sweep (comma separated)")
	backtestCmd.Flags().IntSliceVar(&btSweepSlow, "sweep-slow", nil, "slow periods to sweep (comma separated)")

	backtestCmd.MarkFlagRequired("in")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("fast") {
		btFast = cfg.Strategy.Fast
	}
	if !cmd.Flags().Changed("slow") {
		btSlow = cfg.Strategy.Slow
	}
	if !cmd.Flags().Changed("capital") {
		btCapital = cfg.Backtest.InitialCapital
	}

	series, err := journal.ReadCandlesCSV(btIn)
	if err != nil {
		return err
	}

	if len(btSweepFast) > 0 || len(btSweepSlow) > 0 {
		if len(btSweepFast) == 0 || len(btSweepSlow) == 0 {
			return fmt.Errorf("--sweep-fast and --sweep-slow must be given together")
		}
		grid := backtest.Grid(btSweepFast, btSweepSlow, btCapital)
		if len(grid) == 0 {
			return fmt.Errorf("sweep grid is empty: no fast < slow combination")
		}
		results, err := backtest.Sweep(cmd.Context(), series, grid)
		if err != nil {
			return err
		}
		fmt.Printf("%-6s %-6s %10s %8s %10s %10s\n",
			"fast", "slow", "return", "trades", "win rate", "max dd")
		for _, r := range results {
			fmt.Printf("%-6d %-6d %9.2f%% %8d %9.2f%% %9.2f%%\n",
				r.Params.Fast, r.Params.Slow,
				r.Report.TotalReturn*100, r.Report.NumTrades,
				r.Report.WinRate*100, r.Report.MaxDrawdown*100)
		}
		return nil
	}

	res, err := backtest.Run(series, backtest.Params{
		Fast:           btFast,
		Slow:           btSlow,
		InitialCapital: btCapital,
	})
	if err != nil {
		return err
	}

	fmt.Printf("EMA-Cross(%d,%d) over %d candles\n", btFast, btSlow, series.Len())
	fmt.Printf("  Trades:       %d\n", res.Report.NumTrades)
	fmt.Printf("  Win Rate:     %.2f%%\n", res.Report.WinRate*100)
	fmt.Printf("  Total Return: %.2f%%\n", res.Report.TotalReturn*100)
	fmt.Printf("  Max Drawdown: %.2f%%\n", res.Report.MaxDrawdown*100)
	fmt.Printf("  Final Equity: %.4f\n", res.Report.FinalEquity)

	if btTradesOut != "" {
		if err := journal.WriteTradesCSV(btTradesOut, res.Trades); err != nil {
			return err
		}
		fmt.Printf("  Trades saved: %s\n", btTradesOut)
	}
	if btEquityOut != "" {
		if err := journal.WriteEquityCSV(btEquityOut, res.Equity); err != nil {
			return err
		}
		fmt.Printf("  Equity saved: %s\n", btEquityOut)
	}
	return nil
}
