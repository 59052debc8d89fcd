// Package gateway fetches the dashboard's external datasets. Every public
// operation returns display-ready rows and never fails: on any fetch problem
// the fixed fallback rows for that dataset are returned instead.
package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Dataset names one of the gateway's datasets.
type Dataset string

const (
	DatasetCrypto           Dataset = "crypto"
	DatasetExchangeRates    Dataset = "exchange_rates"
	DatasetWeather          Dataset = "weather"
	DatasetHeadlines        Dataset = "headlines"
	DatasetStocks           Dataset = "stocks"
	DatasetEconomicCalendar Dataset = "economic_calendar"
	DatasetMarketIndices    Dataset = "market_indices"
	DatasetAttrition        Dataset = "hr_attrition"
)

// Source tells whether rows came from the remote endpoint or a fallback table.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

const (
	DefaultTimeout         = 10 * time.Second
	DefaultUserAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultCryptoBaseURL   = "https://api.coingecko.com/api/v3"
	DefaultExchangeBaseURL = "https://api.exchangerate-api.com/v4"
)

// reasonNoProvider is the fallback reason for datasets without a live endpoint.
const reasonNoProvider = "no live provider"

// Outcome describes how a single gateway call was served.
type Outcome struct {
	Dataset Dataset
	Source  Source
	Reason  string
	Rows    int
	Latency time.Duration
	At      time.Time
}

// Observer receives one Outcome per gateway call.
type Observer interface {
	Observe(Outcome)
}

// Options configures a Gateway. Zero values fall back to the defaults above.
type Options struct {
	CryptoBaseURL   string
	ExchangeBaseURL string
	Timeout         time.Duration
	UserAgent       string
	Now             func() time.Time
}

// Gateway serves the named datasets. The HTTP client is created once and
// reused for every call.
type Gateway struct {
	cryptoBaseURL   string
	exchangeBaseURL string
	timeout         time.Duration
	userAgent       string
	now             func() time.Time

	client    *http.Client
	logger    logrus.FieldLogger
	observers []Observer
}

// New creates a Gateway.
func New(opts Options, logger logrus.FieldLogger, observers ...Observer) *Gateway {
	if opts.CryptoBaseURL == "" {
		opts.CryptoBaseURL = DefaultCryptoBaseURL
	}
	if opts.ExchangeBaseURL == "" {
		opts.ExchangeBaseURL = DefaultExchangeBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Gateway{
		cryptoBaseURL:   opts.CryptoBaseURL,
		exchangeBaseURL: opts.ExchangeBaseURL,
		timeout:         opts.Timeout,
		userAgent:       opts.UserAgent,
		now:             opts.Now,
		client:          &http.Client{Timeout: opts.Timeout},
		logger:          logger.WithField("component", "gateway"),
		observers:       observers,
	}
}

// getJSON issues one GET bounded by the gateway timeout and decodes the body into dst.
func (g *Gateway) getJSON(ctx context.Context, url string, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return errors.Wrap(err, "decode payload")
	}
	return nil
}

// report logs the outcome and hands it to every observer.
func (g *Gateway) report(dataset Dataset, started time.Time, rows int, err error) {
	o := Outcome{
		Dataset: dataset,
		Source:  SourceLive,
		Rows:    rows,
		Latency: time.Since(started),
		At:      g.now(),
	}

	entry := g.logger.WithField("dataset", dataset)
	switch {
	case err == nil:
		entry.WithField("rows", rows).Debug("served live data")
	case errors.Is(err, errNoProvider):
		o.Source = SourceFallback
		o.Reason = reasonNoProvider
		entry.Debug("served fallback data")
	default:
		o.Source = SourceFallback
		o.Reason = err.Error()
		entry.WithField("reason", o.Reason).Warn("fetch failed, serving fallback data")
	}

	for _, obs := range g.observers {
		obs.Observe(o)
	}
}

var errNoProvider = errors.New(reasonNoProvider)

// missingField reports a required payload field that was absent or null.
func missingField(index int, field string) error {
	return errors.Errorf("item %d: missing field %q", index, field)
}
