package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gasterbin/market-lab/indicators"
	"github.com/gasterbin/market-lab/journal"
)

var indicatorsCmd = &cobra.Command{
	Use:   "indicators",
	Short: "Compute the fast/slow EMA table for a candle CSV",
	Long: `Indicators loads a candle CSV and writes it back with per-bar returns,
cumulative return, and the fast/slow EMA columns appended.

Example:
  market-lab indicators --in candles.csv --fast 12 --slow 26 --out indicators.csv`,
	RunE: runIndicators,
}

var (
	indIn   string
	indFast int
	indSlow int
	indOut  string
)

func init() {
	rootCmd.AddCommand(indicatorsCmd)

	indicatorsCmd.Flags().StringVar(&indIn, "in", "", "input candle CSV (required; .xz accepted)")
	indicatorsCmd.Flags().IntVar(&indFast, "fast", 12, "fast EMA period")
	indicatorsCmd.Flags().IntVar(&indSlow, "slow", 26, "slow EMA period")
	indicatorsCmd.Flags().StringVarP(&indOut, "out", "o", "indicators.csv", "output CSV path")

	indicatorsCmd.MarkFlagRequired("in")
}

func runIndicators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("fast") {
		indFast = cfg.Strategy.Fast
	}
	if !cmd.Flags().Changed("slow") {
		indSlow = cfg.Strategy.Slow
	}

	series, err := journal.ReadCandlesCSV(indIn)
	if err != nil {
		return err
	}

	table, err := indicators.Compute(series, indFast, indSlow)
	if err != nil {
		return err
	}

	if err := journal.WriteIndicatorsCSV(indOut, table); err != nil {
		return err
	}

	fmt.Printf("Computed EMA(%d)/EMA(%d) over %d candles\n", indFast, indSlow, series.Len())
	fmt.Printf("  Saved: %s\n", indOut)
	return nil
}
