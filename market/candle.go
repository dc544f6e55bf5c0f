// Package market defines the canonical OHLCV series that every pipeline
// stage consumes and produces.
package market

import "time"

// Candle represents one OHLCV (Open, High, Low, Close, Volume) candlestick.
// Time is the candle open time in UTC.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
