package main

import (
	"os"

	"github.com/gasterbin/market-lab/cmd/market-lab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
