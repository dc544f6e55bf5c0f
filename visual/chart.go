// Package visual renders report artifacts as standalone HTML charts.
package visual

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gasterbin/market-lab/backtest"
	"github.com/gasterbin/market-lab/market"
)

// EquityChartHTML writes the equity curve as a self-contained HTML line
// chart.
func EquityChartHTML(path, title string, equity []backtest.EquityPoint) error {
	if len(equity) == 0 {
		return fmt.Errorf("%w: empty equity curve", market.ErrInsufficientData)
	}

	xAxis := make([]string, len(equity))
	data := make([]opts.LineData, len(equity))
	for i, e := range equity {
		xAxis[i] = e.Time.UTC().Format("2006-01-02 15:04")
		data[i] = opts.LineData{Value: e.Value}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "equity", Scale: opts.Bool(true)}),
	)
	line.SetXAxis(xAxis)
	line.AddSeries("equity", data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	)

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := line.Render(file); err != nil {
		return err
	}
	return file.Close()
}
