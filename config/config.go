// Package config holds the run configuration. Everything here is explicit:
// entry points receive a Config value, never ambient defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete CLI configuration.
type Config struct {
	Market   MarketConfig   `json:"market" yaml:"market"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Output   OutputConfig   `json:"output" yaml:"output"`
}

// MarketConfig selects what to fetch.
type MarketConfig struct {
	Symbol   string `json:"symbol" yaml:"symbol"`
	Interval string `json:"interval" yaml:"interval"`
	Limit    int    `json:"limit" yaml:"limit"`
}

// StrategyConfig holds the crossover periods.
type StrategyConfig struct {
	Fast int `json:"fast" yaml:"fast"`
	Slow int `json:"slow" yaml:"slow"`
}

// BacktestConfig holds simulation parameters.
type BacktestConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

// OutputConfig names where artifacts land.
type OutputConfig struct {
	Dir string `json:"dir" yaml:"dir"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Market:   MarketConfig{Symbol: "BTCUSDT", Interval: "1h", Limit: 200},
		Strategy: StrategyConfig{Fast: 12, Slow: 26},
		Backtest: BacktestConfig{InitialCapital: 1.0},
		Output:   OutputConfig{Dir: "."},
	}
}

// LoadFromFile loads configuration from a YAML or JSON file, validated.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration before any entry point sees it.
func (c *Config) Validate() error {
	if c.Market.Symbol == "" {
		return fmt.Errorf("market.symbol is required")
	}
	if c.Market.Interval == "" {
		return fmt.Errorf("market.interval is required")
	}
	if c.Market.Limit <= 0 {
		return fmt.Errorf("market.limit must be positive")
	}
	if c.Strategy.Fast <= 0 || c.Strategy.Slow <= 0 {
		return fmt.Errorf("strategy periods must be positive")
	}
	if c.Strategy.Fast >= c.Strategy.Slow {
		return fmt.Errorf("strategy.fast (%d) must be below strategy.slow (%d)",
			c.Strategy.Fast, c.Strategy.Slow)
	}
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be positive")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	return nil
}
