package gateway

import (
	"context"
	"time"
)

// The datasets in this file have no live endpoint wired. They always serve
// their fallback rows and report a "no live provider" outcome.

// DefaultCity is used when a weather request names no city.
const DefaultCity = "Istanbul"

// Cities offered by the weather picker.
var Cities = []string{"Istanbul", "Ankara", "Izmir", "London", "New York"}

// timestampLayout stamps weather records and headlines.
const timestampLayout = "2006-01-02 15:04:05"

// Weather is the current-conditions record for one city.
type Weather struct {
	City        string `json:"city"`
	Temperature int    `json:"temperature"`
	Description string `json:"description"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
	Pressure    int    `json:"pressure"`
	Timestamp   string `json:"timestamp"`
}

// Headline is one news item.
type Headline struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Published   string `json:"published"`
}

// HeadlineColumns is the column order of the headlines table.
var HeadlineColumns = []string{"Title", "Description", "Source", "Published"}

func (h Headline) Values() []string {
	return []string{h.Title, h.Description, h.Source, h.Published}
}

// StockQuote is one ticker row.
type StockQuote struct {
	Ticker string `json:"ticker"`
	Price  string `json:"price"`
	Change string `json:"change"`
	Volume string `json:"volume"`
}

// StockColumns is the column order of the stock snapshot.
var StockColumns = []string{"Ticker", "Price", "Change", "Volume"}

func (s StockQuote) Values() []string {
	return []string{s.Ticker, s.Price, s.Change, s.Volume}
}

// EconomicEvent is one economic calendar release.
type EconomicEvent struct {
	Time       string `json:"time"`
	Country    string `json:"country"`
	Indicator  string `json:"indicator"`
	Importance string `json:"importance"`
	Actual     string `json:"actual"`
	Forecast   string `json:"forecast"`
}

// EconomicColumns is the column order of the economic calendar.
var EconomicColumns = []string{"Time", "Country", "Indicator", "Importance", "Actual", "Forecast"}

func (e EconomicEvent) Values() []string {
	return []string{e.Time, e.Country, e.Indicator, e.Importance, e.Actual, e.Forecast}
}

// MarketIndex is one equity index row.
type MarketIndex struct {
	Index         string `json:"index"`
	Last          string `json:"last"`
	High          string `json:"high"`
	Low           string `json:"low"`
	Change        string `json:"change"`
	ChangePercent string `json:"change_percent"`
	Time          string `json:"time"`
}

// IndexColumns is the column order of the market indices table.
var IndexColumns = []string{"Index", "Last", "High", "Low", "Change", "Change %", "Time"}

func (m MarketIndex) Values() []string {
	return []string{m.Index, m.Last, m.High, m.Low, m.Change, m.ChangePercent, m.Time}
}

// Weather returns the fallback conditions for city, echoing the city back.
func (g *Gateway) Weather(ctx context.Context, city string) Weather {
	started := time.Now()
	if city == "" {
		city = DefaultCity
	}

	w := fallbackWeather(city, g.now().Format(timestampLayout))
	g.report(DatasetWeather, started, 1, errNoProvider)
	return w
}

// Headlines returns the fallback news items, published "now".
func (g *Gateway) Headlines(ctx context.Context) []Headline {
	started := time.Now()

	items := fallbackHeadlines(g.now().Format(timestampLayout))
	g.report(DatasetHeadlines, started, len(items), errNoProvider)
	return items
}

// StockSnapshot returns the fallback ticker table.
func (g *Gateway) StockSnapshot(ctx context.Context) []StockQuote {
	started := time.Now()

	quotes := fallbackStocks()
	g.report(DatasetStocks, started, len(quotes), errNoProvider)
	return quotes
}

// EconomicCalendar returns the fallback calendar of releases.
func (g *Gateway) EconomicCalendar(ctx context.Context) []EconomicEvent {
	started := time.Now()

	events := fallbackEconomicCalendar()
	g.report(DatasetEconomicCalendar, started, len(events), errNoProvider)
	return events
}

// MarketIndices returns the fallback index table.
func (g *Gateway) MarketIndices(ctx context.Context) []MarketIndex {
	started := time.Now()

	indices := fallbackMarketIndices()
	g.report(DatasetMarketIndices, started, len(indices), errNoProvider)
	return indices
}
