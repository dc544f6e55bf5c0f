package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gasterbin/market-lab/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "market-lab",
	Short: "Fetch crypto candlesticks and backtest an EMA crossover strategy",
	Long: `market-lab is a research tool for EMA crossover strategies on crypto pairs.

It provides commands for:
  - Fetching OHLCV candles from the Binance public API or monthly archives
  - Deriving fast/slow EMA indicator tables
  - Backtesting the crossover strategy, single runs or parameter sweeps
  - Rendering performance reports and equity-curve charts

All output lands in flat CSV/HTML files suitable for further analysis.`,
	SilenceUsage: true,
}

// Execute runs the root command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
}

// loadConfig returns the defaults, overridden by --config when given.
// Individual flags the user set still win over the file; commands check
// cmd.Flags().Changed before applying file values.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgFile)
}
