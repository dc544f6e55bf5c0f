package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gasterbin/market-lab/binance"
	"github.com/gasterbin/market-lab/journal"
	"github.com/gasterbin/market-lab/market"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch OHLCV candles from Binance into a CSV file",
	Long: `Fetch downloads candlestick data for a trading pair.

By default it calls the public spot klines endpoint. With --month it imports
the monthly historical dump from data.binance.vision instead, which is the
cheaper route for long backfills.

Examples:
  market-lab fetch --symbol BTCUSDT --interval 1h --limit 500 --out candles.csv
  market-lab fetch --symbol ETHUSDT --interval 4h --month 2026-07 --out candles.csv`,
	RunE: runFetch,
}

var (
	fetchSymbol   string
	fetchInterval string
	fetchLimit    int
	fetchStart    string
	fetchEnd      string
	fetchMonth    string
	fetchCacheDir string
	fetchOut      string
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&fetchSymbol, "symbol", "s", "BTCUSDT", "trading pair symbol")
	fetchCmd.Flags().StringVarP(&fetchInterval, "interval", "i", "1h", "kline interval (1m, 5m, 1h, 4h, 1d, ...)")
	fetchCmd.Flags().IntVarP(&fetchLimit, "limit", "l", 200, "number of candles to fetch (max 1000)")
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "optional start time (RFC3339)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "optional end time (RFC3339)")
	fetchCmd.Flags().StringVar(&fetchMonth, "month", "", "import a monthly archive instead (YYYY-MM)")
	fetchCmd.Flags().StringVar(&fetchCacheDir, "cache-dir", "./archives", "download cache for monthly archives")
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "o", "candles.csv", "output CSV path")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("symbol") {
		fetchSymbol = cfg.Market.Symbol
	}
	if !cmd.Flags().Changed("interval") {
		fetchInterval = cfg.Market.Interval
	}
	if !cmd.Flags().Changed("limit") {
		fetchLimit = cfg.Market.Limit
	}

	ctx := cmd.Context()

	var series market.Series
	if fetchMonth != "" {
		month, err := time.Parse("2006-01", fetchMonth)
		if err != nil {
			return fmt.Errorf("%w: bad --month %q, want YYYY-MM", market.ErrInvalidParameter, fetchMonth)
		}
		series, err = binance.FetchMonthlyArchive(ctx, fetchSymbol, fetchInterval,
			month.Year(), month.Month(), fetchCacheDir)
		if err != nil {
			return err
		}
	} else {
		req := binance.KlinesRequest{
			Symbol:   fetchSymbol,
			Interval: fetchInterval,
			Limit:    fetchLimit,
		}
		if req.Start, err = parseTimeFlag(fetchStart); err != nil {
			return err
		}
		if req.End, err = parseTimeFlag(fetchEnd); err != nil {
			return err
		}
		series, err = binance.NewClient().Klines(ctx, req)
		if err != nil {
			return err
		}
	}

	if err := journal.WriteCandlesCSV(fetchOut, series); err != nil {
		return err
	}

	fmt.Printf("Fetched %d candles %s %s\n", series.Len(), fetchSymbol, fetchInterval)
	if series.Len() > 0 {
		fmt.Printf("  Range: %s -> %s\n",
			series.First().Time.Format(time.RFC3339),
			series.Last().Time.Format(time.RFC3339))
	}
	fmt.Printf("  Saved: %s\n", fetchOut)
	return nil
}

func parseTimeFlag(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad time %q, want RFC3339", market.ErrInvalidParameter, s)
	}
	return t.UnixMilli(), nil
}
