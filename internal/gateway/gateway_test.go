package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func (r *outcomeRecorder) Observe(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *outcomeRecorder) last(t *testing.T) Outcome {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.outcomes) == 0 {
		t.Fatal("no outcome observed")
	}
	return r.outcomes[len(r.outcomes)-1]
}

var fixedNow = time.Date(2026, 10, 17, 14, 30, 5, 0, time.UTC)

func newTestGateway(t *testing.T, handler http.HandlerFunc) (*Gateway, *outcomeRecorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rec := &outcomeRecorder{}
	g := New(Options{
		CryptoBaseURL:   srv.URL,
		ExchangeBaseURL: srv.URL,
		Timeout:         200 * time.Millisecond,
		Now:             func() time.Time { return fixedNow },
	}, newTestLogger(), rec)
	return g, rec
}

const threeAssets = `[
	{"name":"Bitcoin","symbol":"btc","current_price":85423.45,"price_change_percentage_24h":2.34,"market_cap":1680000000000,"total_volume":24500000000},
	{"name":"Ethereum","symbol":"eth","current_price":4567.89,"price_change_percentage_24h":-1.5,"market_cap":548700000000,"total_volume":12300000000},
	{"name":"Tether","symbol":"usdt","current_price":1,"price_change_percentage_24h":0,"market_cap":120000000000,"total_volume":50000000000}
]`

func TestCryptoSnapshotLive(t *testing.T) {
	var gotQuery, gotUA, gotPath string
	g, rec := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, threeAssets)
	})

	quotes := g.CryptoSnapshot(context.Background())

	if gotPath != "/coins/markets" {
		t.Errorf("path: got %q, want /coins/markets", gotPath)
	}
	for _, want := range []string{"vs_currency=usd", "order=market_cap_desc", "per_page=10", "page=1", "sparkline=false"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent: got %q, want browser-like default", gotUA)
	}

	want := []CryptoQuote{
		{Name: "Bitcoin", Symbol: "BTC", Price: "$85,423.45", Change24h: "+2.34%", MarketCap: "$1,680,000,000,000", Volume24h: "$24,500,000,000"},
		{Name: "Ethereum", Symbol: "ETH", Price: "$4,567.89", Change24h: "-1.50%", MarketCap: "$548,700,000,000", Volume24h: "$12,300,000,000"},
		{Name: "Tether", Symbol: "USDT", Price: "$1.00", Change24h: "+0.00%", MarketCap: "$120,000,000,000", Volume24h: "$50,000,000,000"},
	}
	if !reflect.DeepEqual(quotes, want) {
		t.Errorf("quotes:\n got %+v\nwant %+v", quotes, want)
	}

	o := rec.last(t)
	if o.Source != SourceLive || o.Dataset != DatasetCrypto || o.Rows != 3 {
		t.Errorf("outcome: got %+v, want live crypto with 3 rows", o)
	}
}

func TestCryptoSnapshotFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[{"name": "Bitcoin",`)
		}},
		{"object instead of array", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"error":"rate limited"}`)
		}},
		{"null payload", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `null`)
		}},
		{"missing field", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[{"name":"Bitcoin","symbol":"btc","current_price":1,"market_cap":1,"total_volume":1}]`)
		}},
		{"null field", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[{"name":"Bitcoin","symbol":"btc","current_price":1,"price_change_percentage_24h":null,"market_cap":1,"total_volume":1}]`)
		}},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, rec := newTestGateway(t, tt.handler)

			quotes := g.CryptoSnapshot(context.Background())
			if !reflect.DeepEqual(quotes, fallbackCrypto()) {
				t.Errorf("expected crypto fallback table, got %+v", quotes)
			}

			o := rec.last(t)
			if o.Source != SourceFallback {
				t.Errorf("source: got %q, want %q", o.Source, SourceFallback)
			}
			if o.Reason == "" {
				t.Error("fallback outcome should carry a reason")
			}
		})
	}
}

func TestCryptoSnapshotUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := New(Options{CryptoBaseURL: url, Timeout: 200 * time.Millisecond}, newTestLogger())
	if got := g.CryptoSnapshot(context.Background()); len(got) != 5 {
		t.Errorf("expected 5 fallback rows, got %d", len(got))
	}
}

func TestExchangeRatesLive(t *testing.T) {
	var gotPath string
	g, rec := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, `{"base":"USD","rates":{"EUR":0.8,"JPY":150,"TRY":0,"BRL":5.1}}`)
	})

	rates := g.ExchangeRates(context.Background())

	if gotPath != "/latest/USD" {
		t.Errorf("path: got %q, want /latest/USD", gotPath)
	}

	want := []ExchangeRate{
		{Pair: "USD/EUR", Rate: "0.8000", InverseRate: "1.2500", Updated: "14:30:05"},
		{Pair: "USD/JPY", Rate: "150.0000", InverseRate: "0.0067", Updated: "14:30:05"},
		{Pair: "USD/TRY", Rate: "0.0000", InverseRate: "N/A", Updated: "14:30:05"},
	}
	if !reflect.DeepEqual(rates, want) {
		t.Errorf("rates:\n got %+v\nwant %+v", rates, want)
	}

	if o := rec.last(t); o.Source != SourceLive {
		t.Errorf("source: got %q, want live", o.Source)
	}
}

func TestExchangeRatesEmptyIntersection(t *testing.T) {
	g, rec := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"rates":{"BRL":5.1}}`)
	})

	rates := g.ExchangeRates(context.Background())
	if len(rates) != 0 {
		t.Errorf("expected no rows, got %d", len(rates))
	}
	if o := rec.last(t); o.Source != SourceLive {
		t.Errorf("missing currencies are not a failure; got source %q", o.Source)
	}
}

func TestExchangeRatesFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}},
		{"bad gateway", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"no rates", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"base":"USD"}`)
		}},
		{"rates wrong type", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"rates":["EUR"]}`)
		}},
		{"null rate", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"rates":{"EUR":null,"GBP":0.79}}`)
		}},
		{"non-numeric allowed rate", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"rates":{"EUR":"0.9","GBP":0.79}}`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGateway(t, tt.handler)

			rates := g.ExchangeRates(context.Background())
			want := fallbackExchangeRates("14:30:05")
			if !reflect.DeepEqual(rates, want) {
				t.Errorf("rates:\n got %+v\nwant %+v", rates, want)
			}
		})
	}
}

func TestExchangeRatesIgnoresOtherCodes(t *testing.T) {
	g, rec := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"rates":{"EUR":0.9,"XAU":"n/a","BTC":null}}`)
	})

	rates := g.ExchangeRates(context.Background())
	want := []ExchangeRate{{Pair: "USD/EUR", Rate: "0.9000", InverseRate: "1.1111", Updated: "14:30:05"}}
	if !reflect.DeepEqual(rates, want) {
		t.Errorf("rates:\n got %+v\nwant %+v", rates, want)
	}
	if o := rec.last(t); o.Source != SourceLive {
		t.Errorf("source: got %q, want live", o.Source)
	}
}

func TestExchangeRatesFallbackIsStampedAtCallTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	now := fixedNow
	g := New(Options{ExchangeBaseURL: srv.URL, Now: func() time.Time { return now }}, newTestLogger())

	first := g.ExchangeRates(context.Background())
	now = now.Add(90 * time.Second)
	second := g.ExchangeRates(context.Background())

	for i := range first {
		if first[i].Updated != "14:30:05" {
			t.Errorf("first call row %d: got %q, want 14:30:05", i, first[i].Updated)
		}
		if second[i].Updated != "14:31:35" {
			t.Errorf("second call row %d: got %q, want 14:31:35", i, second[i].Updated)
		}
		first[i].Updated, second[i].Updated = "", ""
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("fallback content should only differ in timestamps")
	}
}

// jsonKeys returns the object keys of v's JSON encoding in order.
func jsonKeys(t *testing.T, v any) []string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	if _, err := dec.Token(); err != nil {
		t.Fatalf("token: %v", err)
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			t.Fatalf("decode value: %v", err)
		}
	}
	return keys
}

func TestSchemaStability(t *testing.T) {
	live, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/latest/USD" {
			io.WriteString(w, `{"rates":{"EUR":0.9}}`)
			return
		}
		io.WriteString(w, threeAssets)
	})
	down, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	ctx := context.Background()

	liveCrypto, downCrypto := live.CryptoSnapshot(ctx), down.CryptoSnapshot(ctx)
	if !reflect.DeepEqual(jsonKeys(t, liveCrypto[0]), jsonKeys(t, downCrypto[0])) {
		t.Error("crypto live and fallback rows expose different fields")
	}
	if len(liveCrypto[0].Values()) != len(CryptoColumns) || len(downCrypto[0].Values()) != len(CryptoColumns) {
		t.Error("crypto rows do not match CryptoColumns")
	}

	liveFX, downFX := live.ExchangeRates(ctx), down.ExchangeRates(ctx)
	if !reflect.DeepEqual(jsonKeys(t, liveFX[0]), jsonKeys(t, downFX[0])) {
		t.Error("exchange live and fallback rows expose different fields")
	}
	if len(liveFX[0].Values()) != len(ExchangeColumns) || len(downFX[0].Values()) != len(ExchangeColumns) {
		t.Error("exchange rows do not match ExchangeColumns")
	}
}
