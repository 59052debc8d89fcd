// Package charts renders dataset tables as PNG bar charts.
package charts

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/Zachkp/analyst-dashboard/internal/gateway"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("charts: no data to plot")

// Bar is one labelled value.
type Bar struct {
	Label string
	Value float64
}

const (
	chartWidth  = 1024
	chartHeight = 480
	barWidth    = 60
	barSpacing  = 20
)

// BarPNG writes a bar chart of bars to w. Positive bars are green, negative red.
func BarPNG(w io.Writer, title string, bars []Bar) error {
	if len(bars) == 0 {
		return ErrNoData
	}

	values := make([]chart.Value, 0, len(bars))
	lo, hi := 0.0, 0.0
	for _, b := range bars {
		color := chart.ColorGreen
		if b.Value < 0 {
			color = chart.ColorRed
		}
		values = append(values, chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
		})
		lo = math.Min(lo, b.Value)
		hi = math.Max(hi, b.Value)
	}
	// go-chart cannot scale a zero-height range.
	if hi == lo {
		hi = lo + 1
	}

	bc := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		// Negative changes hang below the axis.
		UseBaseValue: true,
		BaseValue:    0,
		YAxis:        chart.YAxis{Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Bars:         values,
	}

	if err := bc.Render(chart.PNG, w); err != nil {
		return errors.Wrap(err, "charts: render")
	}
	return nil
}

// ParseNumber reads a display string such as "$43,250.00", "+2.45%" or "0.8000".
func ParseNumber(s string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", "%", "", "+", "").Replace(strings.TrimSpace(s))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "charts: parse %q", s)
	}
	return v, nil
}

// FromTable builds bars from two columns of t. Rows whose value does not parse are skipped.
func FromTable(t gateway.Table, labelCol, valueCol string) ([]Bar, error) {
	li, vi := t.Column(labelCol), t.Column(valueCol)
	if li < 0 || vi < 0 {
		return nil, errors.Errorf("charts: table %s has no %q/%q columns", t.Dataset, labelCol, valueCol)
	}

	var bars []Bar
	for _, row := range t.Rows {
		if li >= len(row) || vi >= len(row) {
			continue
		}
		v, err := ParseNumber(row[vi])
		if err != nil {
			continue
		}
		bars = append(bars, Bar{Label: row[li], Value: v})
	}
	return bars, nil
}

// Plot names the columns plotted for one dataset.
type Plot struct {
	Title    string
	LabelCol string
	ValueCol string
}

// Plots lists the datasets that have a chart.
var Plots = map[gateway.Dataset]Plot{
	gateway.DatasetCrypto:        {Title: "24h change (%)", LabelCol: "Symbol", ValueCol: "Change 24h"},
	gateway.DatasetExchangeRates: {Title: "USD exchange rates", LabelCol: "Pair", ValueCol: "Rate"},
	gateway.DatasetStocks:        {Title: "Daily change (%)", LabelCol: "Ticker", ValueCol: "Change"},
	gateway.DatasetMarketIndices: {Title: "Index change (%)", LabelCol: "Index", ValueCol: "Change %"},
	gateway.DatasetAttrition:     {Title: "Attrition by department (%)", LabelCol: "Department", ValueCol: "Attrition %"},
}

// Render plots t according to its dataset's Plot.
func Render(w io.Writer, t gateway.Table) error {
	plot, ok := Plots[t.Dataset]
	if !ok {
		return errors.Errorf("charts: no chart for dataset %s", t.Dataset)
	}
	bars, err := FromTable(t, plot.LabelCol, plot.ValueCol)
	if err != nil {
		return err
	}
	return BarPNG(w, plot.Title, bars)
}
