package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "BTCUSDT", cfg.Market.Symbol)
	assert.Equal(t, 12, cfg.Strategy.Fast)
	assert.Equal(t, 26, cfg.Strategy.Slow)
	assert.Equal(t, 1.0, cfg.Backtest.InitialCapital)
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
market:
  symbol: ETHUSDT
  interval: 4h
  limit: 500
strategy:
  fast: 9
  slow: 21
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ETHUSDT", cfg.Market.Symbol)
	assert.Equal(t, "4h", cfg.Market.Interval)
	assert.Equal(t, 500, cfg.Market.Limit)
	assert.Equal(t, 9, cfg.Strategy.Fast)
	assert.Equal(t, 21, cfg.Strategy.Slow)
	assert.Equal(t, 1.0, cfg.Backtest.InitialCapital, "unset sections keep defaults")
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"strategy": {"fast": 5, "slow": 20}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Strategy.Fast)
	assert.Equal(t, 20, cfg.Strategy.Slow)
}

func TestLoadFromFile_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "strategy:\n  fast: 26\n  slow: 12\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fast")
}

func TestValidate_Failures(t *testing.T) {
	cases := map[string]func(*Config){
		"empty symbol":      func(c *Config) { c.Market.Symbol = "" },
		"empty interval":    func(c *Config) { c.Market.Interval = "" },
		"zero limit":        func(c *Config) { c.Market.Limit = 0 },
		"zero fast":         func(c *Config) { c.Strategy.Fast = 0 },
		"fast equals slow":  func(c *Config) { c.Strategy.Fast = c.Strategy.Slow },
		"zero capital":      func(c *Config) { c.Backtest.InitialCapital = 0 },
		"empty output dir":  func(c *Config) { c.Output.Dir = "" },
	}

	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}
