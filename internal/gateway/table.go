package gateway

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
)

// ErrUnknownDataset is returned by Table for names the gateway does not serve.
var ErrUnknownDataset = errors.New("unknown dataset")

// Request identifies one dataset and its parameters. City only applies to weather.
type Request struct {
	Dataset Dataset
	City    string
}

// Table is the display-ready tabular form of a dataset.
type Table struct {
	Dataset Dataset    `json:"dataset"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Column returns the index of the named column, or -1.
func (t Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

type row interface {
	Values() []string
}

func newTable[R row](dataset Dataset, columns []string, rows []R) Table {
	t := Table{
		Dataset: dataset,
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, r.Values())
	}
	return t
}

// WeatherColumns is the column order of the weather record in tabular form.
var WeatherColumns = []string{"City", "Temperature", "Description", "Humidity", "Wind Speed", "Pressure", "Updated"}

func (w Weather) Values() []string {
	return []string{
		w.City,
		strconv.Itoa(w.Temperature) + "°C",
		w.Description,
		strconv.Itoa(w.Humidity) + "%",
		strconv.Itoa(w.WindSpeed) + " km/h",
		strconv.Itoa(w.Pressure) + " hPa",
		w.Timestamp,
	}
}

// Datasets lists every dataset Table can serve, in dashboard order.
var Datasets = []Dataset{
	DatasetCrypto,
	DatasetExchangeRates,
	DatasetStocks,
	DatasetWeather,
	DatasetHeadlines,
	DatasetEconomicCalendar,
	DatasetMarketIndices,
	DatasetAttrition,
}

// Table serves req in tabular form. The only error is ErrUnknownDataset;
// fetch failures are absorbed like in the typed operations.
func (g *Gateway) Table(ctx context.Context, req Request) (Table, error) {
	switch req.Dataset {
	case DatasetCrypto:
		return newTable(req.Dataset, CryptoColumns, g.CryptoSnapshot(ctx)), nil
	case DatasetExchangeRates:
		return newTable(req.Dataset, ExchangeColumns, g.ExchangeRates(ctx)), nil
	case DatasetStocks:
		return newTable(req.Dataset, StockColumns, g.StockSnapshot(ctx)), nil
	case DatasetWeather:
		return newTable(req.Dataset, WeatherColumns, []Weather{g.Weather(ctx, req.City)}), nil
	case DatasetHeadlines:
		return newTable(req.Dataset, HeadlineColumns, g.Headlines(ctx)), nil
	case DatasetEconomicCalendar:
		return newTable(req.Dataset, EconomicColumns, g.EconomicCalendar(ctx)), nil
	case DatasetMarketIndices:
		return newTable(req.Dataset, IndexColumns, g.MarketIndices(ctx)), nil
	case DatasetAttrition:
		return newTable(req.Dataset, AttritionColumns, g.Attrition(ctx)), nil
	}
	return Table{}, errors.Wrapf(ErrUnknownDataset, "%q", req.Dataset)
}
