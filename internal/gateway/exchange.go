package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ExchangeColumns is the column order of the exchange-rate table.
var ExchangeColumns = []string{"Pair", "Rate", "Inverse Rate", "Updated"}

// ExchangeCurrencies are the quote currencies kept from the USD rate map, in display order.
var ExchangeCurrencies = []string{"EUR", "GBP", "JPY", "TRY", "CAD", "AUD", "CHF"}

// clockLayout stamps exchange-rate rows.
const clockLayout = "15:04:05"

// ExchangeRate is one USD/<code> row.
type ExchangeRate struct {
	Pair        string `json:"pair"`
	Rate        string `json:"rate"`
	InverseRate string `json:"inverse_rate"`
	Updated     string `json:"updated"`
}

// Values returns the row in ExchangeColumns order.
func (r ExchangeRate) Values() []string {
	return []string{r.Pair, r.Rate, r.InverseRate, r.Updated}
}

// latestRates keeps rate values raw so only the allow-listed codes are parsed.
type latestRates struct {
	Base  string                     `json:"base"`
	Rates map[string]json.RawMessage `json:"rates"`
}

// ExchangeRates returns USD-based rates for ExchangeCurrencies, or the
// fallback table stamped with the current time.
func (g *Gateway) ExchangeRates(ctx context.Context) []ExchangeRate {
	started := time.Now()

	rates, err := g.fetchExchangeRates(ctx)
	if err != nil {
		rates = fallbackExchangeRates(g.now().Format(clockLayout))
	}
	g.report(DatasetExchangeRates, started, len(rates), err)
	return rates
}

func (g *Gateway) fetchExchangeRates(ctx context.Context) ([]ExchangeRate, error) {
	var payload latestRates
	endpoint := strings.TrimRight(g.exchangeBaseURL, "/") + "/latest/USD"
	if err := g.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if payload.Rates == nil {
		return nil, errors.New("payload has no rates")
	}

	stamp := g.now().Format(clockLayout)
	out := make([]ExchangeRate, 0, len(ExchangeCurrencies))
	for _, code := range ExchangeCurrencies {
		raw, ok := payload.Rates[code]
		if !ok {
			continue
		}
		rate, err := parseRate(code, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, ExchangeRate{
			Pair:        "USD/" + code,
			Rate:        formatRate(rate),
			InverseRate: formatInverse(rate),
			Updated:     stamp,
		})
	}
	return out, nil
}

func parseRate(code string, raw json.RawMessage) (float64, error) {
	var rate *float64
	if err := json.Unmarshal(raw, &rate); err != nil {
		return 0, errors.Wrapf(err, "rate %s", code)
	}
	if rate == nil {
		return 0, errors.Errorf("rate %s is null", code)
	}
	return *rate, nil
}
