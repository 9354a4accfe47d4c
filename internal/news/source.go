// Package news fetches and deduplicates company news through an ordered
// provider chain with a TTL cache. The layer never fails: total provider
// failure yields an empty list.
package news

import (
	"context"
	"hash/fnv"
	"net/http"
	"net/url"
	"time"

	"MarketWrap/internal/model"
)

// Source fetches news items for one ticker covering the trailing days.
// A nil slice with nil error means the source is unusable for this call;
// an empty non-nil slice means it answered with no articles.
type Source interface {
	Name() string
	News(ctx context.Context, ticker string, daysBack int) ([]model.NewsItem, error)
}

// dedupeByURL drops repeated articles, keyed by a hash of the URL.
// Provider order is preserved; the first occurrence wins.
func dedupeByURL(items []model.NewsItem) []model.NewsItem {
	seen := make(map[uint64]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		h := fnv.New64a()
		h.Write([]byte(it.URL))
		key := h.Sum64()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
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
