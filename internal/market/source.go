// Package market fetches quotes and daily bars through an ordered chain
// of provider sources fronted by a TTL cache. A source that cannot serve
// a request yields to the next one; the layer degrades to "no data"
// instead of failing.
package market

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"MarketWrap/internal/model"
)

// QuoteSource fetches a snapshot quote for one ticker.
// A nil quote with nil error means the source has nothing usable.
type QuoteSource interface {
	Name() string
	Quote(ctx context.Context, ticker string) (*model.Quote, error)
}

// BarSource fetches daily OHLCV bars covering the trailing day window,
// sorted ascending by time.
type BarSource interface {
	Name() string
	Bars(ctx context.Context, ticker string, days int) ([]model.Bar, error)
}

// RangeDays maps a coarse range token to a trailing day count.
func RangeDays(rng string) int {
	switch rng {
	case "1d":
		return 1
	case "5d":
		return 5
	case "1m":
		return 30
	default: // "3m"
		return 90
	}
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
