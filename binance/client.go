// Package binance fetches OHLCV klines from the Binance public spot API and
// from the data.binance.vision historical archives. It is the only pipeline
// component that touches the network; everything it returns has already
// passed market.NewSeries validation.
package binance

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	gobinance "github.com/adshao/go-binance/v2"
	"golang.org/x/time/rate"

	"github.com/gasterbin/market-lab/market"
)

const (
	defaultLimit = 200
	maxLimit     = 1000

	maxRetries     = 3
	initialBackoff = 250 * time.Millisecond
)

// Client wraps the public spot REST API. Kline data needs no API keys. All
// requests go through a shared rate limiter so bursts of fetches stay under
// the exchange's request weight limits.
type Client struct {
	api     *gobinance.Client
	limiter *rate.Limiter
}

// NewClient builds a client for public market data.
func NewClient() *Client {
	return &Client{
		api:     gobinance.NewClient("", ""),
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// KlinesRequest parameterizes one klines call. Start/End are optional
// millisecond epoch bounds, as the API expects.
type KlinesRequest struct {
	Symbol   string
	Interval string
	Limit    int
	Start    int64
	End      int64
}

// Klines fetches candlesticks and normalizes them into a canonical series.
// Transient API errors are retried with exponential backoff; malformed
// numeric fields in the response surface as market.ErrMalformedInput.
func (c *Client) Klines(ctx context.Context, req KlinesRequest) (market.Series, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return market.Series{}, fmt.Errorf("%w: symbol is required", market.ErrInvalidParameter)
	}
	interval := strings.TrimSpace(req.Interval)
	if interval == "" {
		return market.Series{}, fmt.Errorf("%w: interval is required", market.ErrInvalidParameter)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var klines []*gobinance.Kline
	backoff := initialBackoff
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return market.Series{}, err
		}

		svc := c.api.NewKlinesService().Symbol(symbol).Interval(interval).Limit(limit)
		if req.Start > 0 {
			svc = svc.StartTime(req.Start)
		}
		if req.End > 0 {
			svc = svc.EndTime(req.End)
		}

		var err error
		klines, err = svc.Do(ctx)
		if err == nil {
			break
		}
		if attempt == maxRetries {
			return market.Series{}, fmt.Errorf("fetch klines %s %s: %w", symbol, interval, err)
		}

		wait := time.Duration(math.Pow(2, float64(attempt))) * backoff
		select {
		case <-ctx.Done():
			return market.Series{}, ctx.Err()
		case <-time.After(wait):
		}
	}

	return klinesToSeries(klines)
}

func klinesToSeries(klines []*gobinance.Kline) (market.Series, error) {
	candles := make([]market.Candle, 0, len(klines))
	for i, kl := range klines {
		if kl == nil {
			continue
		}
		c, err := klineToCandle(kl)
		if err != nil {
			return market.Series{}, fmt.Errorf("kline %d: %w", i, err)
		}
		candles = append(candles, c)
	}
	return market.NewSeries(candles)
}

func klineToCandle(kl *gobinance.Kline) (market.Candle, error) {
	c := market.Candle{Time: time.UnixMilli(kl.OpenTime).UTC()}

	for _, f := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"open", kl.Open, &c.Open},
		{"high", kl.High, &c.High},
		{"low", kl.Low, &c.Low},
		{"close", kl.Close, &c.Close},
		{"volume", kl.Volume, &c.Volume},
	} {
		v, err := strconv.ParseFloat(f.raw, 64)
		if err != nil {
			return market.Candle{}, fmt.Errorf("%w: %s %q is not numeric",
				market.ErrMalformedInput, f.name, f.raw)
		}
		*f.dst = v
	}
	return c, nil
}
