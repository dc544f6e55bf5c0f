package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the market-lab CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("market-lab version %s\n", version)
		fmt.Println("EMA-crossover backtesting over Binance candle data")
		fmt.Println("https://github.com/gasterbin/market-lab")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
