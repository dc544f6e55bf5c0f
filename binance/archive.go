package binance

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xyproto/unzip"

	"github.com/gasterbin/market-lab/market"
)

// visionBase serves Binance's historical data dumps: monthly kline CSVs
// packed one file per ZIP archive.
const visionBase = "https://data.binance.vision/data/spot/monthly/klines"

// FetchMonthlyArchive downloads the monthly kline dump for symbol/interval
// into dir (skipping the download when the archive is already present),
// extracts it, and parses the rows into a canonical series.
func FetchMonthlyArchive(ctx context.Context, symbol, interval string, year int, month time.Month, dir string) (market.Series, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return market.Series{}, fmt.Errorf("%w: symbol is required", market.ErrInvalidParameter)
	}
	interval = strings.TrimSpace(interval)
	if interval == "" {
		return market.Series{}, fmt.Errorf("%w: interval is required", market.ErrInvalidParameter)
	}

	name := fmt.Sprintf("%s-%s-%04d-%02d", symbol, interval, year, month)
	url := fmt.Sprintf("%s/%s/%s/%s.zip", visionBase, symbol, interval, name)
	zipPath := filepath.Join(dir, name+".zip")

	if err := downloadIfMissing(ctx, url, zipPath); err != nil {
		return market.Series{}, err
	}
	if err := unzip.Extract(zipPath, dir); err != nil {
		return market.Series{}, fmt.Errorf("extract %s: %w", zipPath, err)
	}

	return ReadArchiveCSV(filepath.Join(dir, name+".csv"))
}

func downloadIfMissing(ctx context.Context, url, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("archive not published: %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: status %d", url, resp.StatusCode)
	}

	// Write to a temp file first so an interrupted download never leaves a
	// truncated archive behind.
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// ReadArchiveCSV parses an extracted Vision kline CSV. Rows carry the raw
// kline columns without a header:
//
//	openTime,open,high,low,close,volume,closeTime,quoteVolume,trades,...
//
// Bad rows surface as market.ErrMalformedInput with their row number.
func ReadArchiveCSV(path string) (market.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return market.Series{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var candles []market.Candle
	row := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return market.Series{}, fmt.Errorf("%w: row %d: %v", market.ErrMalformedInput, row, err)
		}
		row++

		// Some dumps ship with a header row; skip it.
		if row == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "open_time") {
			continue
		}
		if len(rec) < 6 {
			return market.Series{}, fmt.Errorf("%w: row %d: need 6 columns, got %d",
				market.ErrMalformedInput, row, len(rec))
		}

		c, err := parseArchiveRow(rec)
		if err != nil {
			return market.Series{}, fmt.Errorf("row %d: %w", row, err)
		}
		candles = append(candles, c)
	}

	return market.NewSeries(candles)
}

func parseArchiveRow(rec []string) (market.Candle, error) {
	ts, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
	if err != nil {
		return market.Candle{}, fmt.Errorf("%w: open time %q is not numeric",
			market.ErrMalformedInput, rec[0])
	}
	c := market.Candle{Time: epochToTime(ts)}

	for _, f := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"open", rec[1], &c.Open},
		{"high", rec[2], &c.High},
		{"low", rec[3], &c.Low},
		{"close", rec[4], &c.Close},
		{"volume", rec[5], &c.Volume},
	} {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.raw), 64)
		if err != nil {
			return market.Candle{}, fmt.Errorf("%w: %s %q is not numeric",
				market.ErrMalformedInput, f.name, f.raw)
		}
		*f.dst = v
	}
	return c, nil
}

// epochToTime handles both timestamp units found in the dumps: milliseconds
// historically, microseconds since the 2025 format change.
func epochToTime(ts int64) time.Time {
	if ts >= 1e15 {
		return time.UnixMicro(ts).UTC()
	}
	return time.UnixMilli(ts).UTC()
}
