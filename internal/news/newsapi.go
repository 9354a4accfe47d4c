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

// NewsAPISource fetches articles from the NewsAPI "everything" endpoint.
type NewsAPISource struct {
	APIKey string
	Client *http.Client
}

// NewNewsAPISource creates a NewsAPI source with optional proxy support.
func NewNewsAPISource(apiKey, proxyURL string) *NewsAPISource {
	return &NewsAPISource{APIKey: apiKey, Client: newHTTPClient(proxyURL)}
}

func (s *NewsAPISource) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Description string `json:"description"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// News fetches recent articles mentioning the ticker.
func (s *NewsAPISource) News(ctx context.Context, ticker string, daysBack int) ([]model.NewsItem, error) {
	from := time.Now().UTC().AddDate(0, 0, -daysBack).Format("2006-01-02")
	u := fmt.Sprintf("https://newsapi.org/v2/everything?q=%s&from=%s&sortBy=publishedAt&pageSize=50&apiKey=%s",
		url.QueryEscape(ticker), from, url.QueryEscape(s.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("newsapi read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: status %d", resp.StatusCode)
	}
	var r newsAPIResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}
	if r.Status != "ok" {
		return []model.NewsItem{}, nil
	}
	items := make([]model.NewsItem, 0, len(r.Articles))
	for _, a := range r.Articles {
		if a.URL == "" {
			continue
		}
		items = append(items, model.NewsItem{
			Title:       a.Title,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Source:      a.Source.Name,
			Summary:     a.Description,
		})
	}
	return items, nil
}
