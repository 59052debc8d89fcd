package gateway

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// CryptoColumns is the column order of the crypto snapshot.
var CryptoColumns = []string{"Name", "Symbol", "Price (USD)", "Change 24h", "Market Cap", "Volume 24h"}

// cryptoTopN is how many assets the snapshot asks for.
const cryptoTopN = 10

// CryptoQuote is one row of the crypto market snapshot.
type CryptoQuote struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Price     string `json:"price"`
	Change24h string `json:"change_24h"`
	MarketCap string `json:"market_cap"`
	Volume24h string `json:"volume_24h"`
}

// Values returns the row in CryptoColumns order.
func (q CryptoQuote) Values() []string {
	return []string{q.Name, q.Symbol, q.Price, q.Change24h, q.MarketCap, q.Volume24h}
}

// marketAsset is the subset of a /coins/markets item the snapshot needs.
// Pointers distinguish absent or null fields from zero values.
type marketAsset struct {
	Name           *string  `json:"name"`
	Symbol         *string  `json:"symbol"`
	CurrentPrice   *float64 `json:"current_price"`
	PriceChange24h *float64 `json:"price_change_percentage_24h"`
	MarketCap      *float64 `json:"market_cap"`
	TotalVolume    *float64 `json:"total_volume"`
}

// CryptoSnapshot returns the top assets by market capitalization, or the
// fallback table when the market-data endpoint cannot be used.
func (g *Gateway) CryptoSnapshot(ctx context.Context) []CryptoQuote {
	started := time.Now()

	quotes, err := g.fetchCrypto(ctx)
	if err != nil {
		quotes = fallbackCrypto()
	}
	g.report(DatasetCrypto, started, len(quotes), err)
	return quotes
}

func (g *Gateway) fetchCrypto(ctx context.Context) ([]CryptoQuote, error) {
	params := url.Values{}
	params.Set("vs_currency", "usd")
	params.Set("order", "market_cap_desc")
	params.Set("per_page", strconv.Itoa(cryptoTopN))
	params.Set("page", "1")
	params.Set("sparkline", "false")

	var assets []marketAsset
	endpoint := strings.TrimRight(g.cryptoBaseURL, "/") + "/coins/markets?" + params.Encode()
	if err := g.getJSON(ctx, endpoint, &assets); err != nil {
		return nil, err
	}
	if assets == nil {
		return nil, errors.New("payload is not an asset array")
	}

	quotes := make([]CryptoQuote, 0, len(assets))
	for i, a := range assets {
		q, err := a.quote(i)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (a marketAsset) quote(i int) (CryptoQuote, error) {
	switch {
	case a.Name == nil:
		return CryptoQuote{}, missingField(i, "name")
	case a.Symbol == nil:
		return CryptoQuote{}, missingField(i, "symbol")
	case a.CurrentPrice == nil:
		return CryptoQuote{}, missingField(i, "current_price")
	case a.PriceChange24h == nil:
		return CryptoQuote{}, missingField(i, "price_change_percentage_24h")
	case a.MarketCap == nil:
		return CryptoQuote{}, missingField(i, "market_cap")
	case a.TotalVolume == nil:
		return CryptoQuote{}, missingField(i, "total_volume")
	}

	return CryptoQuote{
		Name:      *a.Name,
		Symbol:    strings.ToUpper(*a.Symbol),
		Price:     formatUSD(*a.CurrentPrice),
		Change24h: formatChange(*a.PriceChange24h),
		MarketCap: formatUSDWhole(*a.MarketCap),
		Volume24h: formatUSDWhole(*a.TotalVolume),
	}, nil
}
