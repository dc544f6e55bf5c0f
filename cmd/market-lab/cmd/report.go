package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gasterbin/market-lab/backtest"
	"github.com/gasterbin/market-lab/journal"
	"github.com/gasterbin/market-lab/pkg/id"
	"github.com/gasterbin/market-lab/visual"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run a backtest and print the full report",
	Long: `Report runs the EMA-crossover backtest and prints the full labelled
summary block, optionally rendering the equity curve to an HTML chart.

Example:
  market-lab report --in candles.csv --fast 12 --slow 26 --chart equity.html`,
	RunE: runReport,
}

var (
	repIn        string
	repFast      int
	repSlow      int
	repCapital   float64
	repSymbol    string
	repInterval  string
	repChart     string
	repTradesOut string
	repEquityOut string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&repIn, "in", "", "input candle CSV (required; .xz accepted)")
	reportCmd.Flags().IntVar(&repFast, "fast", 12, "fast EMA period")
	reportCmd.Flags().IntVar(&repSlow, "slow", 26, "slow EMA period")
	reportCmd.Flags().Float64Var(&repCapital, "capital", 1.0, "starting capital")
	reportCmd.Flags().StringVarP(&repSymbol, "symbol", "s", "", "symbol label for the report")
	reportCmd.Flags().StringVarP(&repInterval, "interval", "i", "", "interval label for the report")
	reportCmd.Flags().StringVar(&repChart, "chart", "", "render the equity curve to this HTML file")
	reportCmd.Flags().StringVar(&repTradesOut, "trades-out", "", "write the trade log CSV here")
	reportCmd.Flags().StringVar(&repEquityOut, "equity-out", "", "write the equity curve CSV here")

	reportCmd.MarkFlagRequired("in")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("fast") {
		repFast = cfg.Strategy.Fast
	}
	if !cmd.Flags().Changed("slow") {
		repSlow = cfg.Strategy.Slow
	}
	if !cmd.Flags().Changed("capital") {
		repCapital = cfg.Backtest.InitialCapital
	}

	series, err := journal.ReadCandlesCSV(repIn)
	if err != nil {
		return err
	}

	res, err := backtest.Run(series, backtest.Params{
		Fast:           repFast,
		Slow:           repSlow,
		InitialCapital: repCapital,
	})
	if err != nil {
		return err
	}

	sum := backtest.Summarize(id.New(), repIn, repSymbol, repInterval, series, res)
	backtest.WriteReport(os.Stdout, sum)

	if repTradesOut != "" {
		if err := journal.WriteTradesCSV(repTradesOut, res.Trades); err != nil {
			return err
		}
		fmt.Printf("Trades saved: %s\n", repTradesOut)
	}
	if repEquityOut != "" {
		if err := journal.WriteEquityCSV(repEquityOut, res.Equity); err != nil {
			return err
		}
		fmt.Printf("Equity saved: %s\n", repEquityOut)
	}
	if repChart != "" {
		title := fmt.Sprintf("EMA-Cross(%d,%d) equity", repFast, repSlow)
		if err := visual.EquityChartHTML(repChart, title, res.Equity); err != nil {
			return err
		}
		fmt.Printf("Chart saved:  %s\n", repChart)
	}
	return nil
}
