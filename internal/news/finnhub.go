package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"MarketWrap/internal/model"
)

// FinnhubSource fetches company news from the Finnhub API. Its response
// shape differs from NewsAPI (headline/datetime vs title/publishedAt) and
// is normalized here.
type FinnhubSource struct {
	Token  string
	Client *http.Client
}

// NewFinnhubSource creates a Finnhub news source with optional proxy
// support.
func NewFinnhubSource(token, proxyURL string) *FinnhubSource {
	return &FinnhubSource{Token: token, Client: newHTTPClient(proxyURL)}
}

func (s *FinnhubSource) Name() string { return "finnhub" }

type finnhubArticle struct {
	Headline string `json:"headline"`
	URL      string `json:"url"`
	Datetime int64  `json:"datetime"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
}

// News fetches company news. Finnhub takes an explicit window; the last
// seven days is always requested regardless of daysBack, matching the
// provider's company-news granularity.
func (s *FinnhubSource) News(ctx context.Context, ticker string, _ int) ([]model.NewsItem, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7).Format("2006-01-02")
	to := now.Format("2006-01-02")
	u := fmt.Sprintf("https://finnhub.io/api/v1/company-news?symbol=%s&from=%s&to=%s&token=%s",
		url.QueryEscape(ticker), from, to, url.QueryEscape(s.Token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("finnhub news fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("finnhub news read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("finnhub news: status %d", resp.StatusCode)
	}
	var articles []finnhubArticle
	if err := json.Unmarshal(body, &articles); err != nil {
		return nil, fmt.Errorf("finnhub news decode: %w", err)
	}
	items := make([]model.NewsItem, 0, len(articles))
	for _, a := range articles {
		if a.URL == "" {
			continue
		}
		published := ""
		if a.Datetime > 0 {
			published = time.Unix(a.Datetime, 0).UTC().Format(time.RFC3339)
		}
		items = append(items, model.NewsItem{
			Title:       a.Headline,
			URL:         a.URL,
			PublishedAt: published,
			Source:      a.Source,
			Summary:     a.Summary,
		})
	}
	return items, nil
}
