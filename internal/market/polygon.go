package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"MarketWrap/internal/model"
)

// PolygonSource fetches quotes and bars from the Polygon aggregates API.
type PolygonSource struct {
	APIKey string
	Client *http.Client
}

// NewPolygonSource creates a Polygon source with optional proxy support.
func NewPolygonSource(apiKey, proxyURL string) *PolygonSource {
	return &PolygonSource{APIKey: apiKey, Client: newHTTPClient(proxyURL)}
}

func (s *PolygonSource) Name() string { return "polygon" }

type polygonAgg struct {
	Open   float64 `json:"o"`
	High   float64 `json:"h"`
	Low    float64 `json:"l"`
	Close  float64 `json:"c"`
	Volume float64 `json:"v"`
	Time   int64   `json:"t"` // ms since epoch
}

type polygonAggsResponse struct {
	Results []polygonAgg `json:"results"`
	Status  string       `json:"status"`
}

func (s *PolygonSource) get(ctx context.Context, u string) (*polygonAggsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("polygon fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("polygon read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("polygon: status %d", resp.StatusCode)
	}
	var out polygonAggsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("polygon decode: %w", err)
	}
	return &out, nil
}

// Quote builds a quote from the previous-day aggregate.
func (s *PolygonSource) Quote(ctx context.Context, ticker string) (*model.Quote, error) {
	u := fmt.Sprintf("https://api.polygon.io/v2/aggs/ticker/%s/prev?adjusted=true&apiKey=%s",
		url.PathEscape(ticker), url.QueryEscape(s.APIKey))
	out, err := s.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if len(out.Results) == 0 {
		return nil, nil
	}
	r := out.Results[0]
	prevClose := r.Open
	if prevClose == 0 {
		prevClose = r.Close
	}
	change := r.Close - prevClose
	q := &model.Quote{
		Ticker:    ticker,
		Price:     r.Close,
		Change:    change,
		Volume:    r.Volume,
		Open:      r.Open,
		High:      r.High,
		Low:       r.Low,
		PrevClose: prevClose,
	}
	if prevClose != 0 {
		q.ChangePercent = change / prevClose * 100
	}
	return q, nil
}

// Bars fetches daily aggregates for the trailing day window.
func (s *PolygonSource) Bars(ctx context.Context, ticker string, days int) ([]model.Bar, error) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)
	u := fmt.Sprintf("https://api.polygon.io/v2/aggs/ticker/%s/range/1/day/%s/%s?adjusted=true&sort=asc&limit=5000&apiKey=%s",
		url.PathEscape(ticker), from.Format("2006-01-02"), to.Format("2006-01-02"), url.QueryEscape(s.APIKey))
	out, err := s.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if len(out.Results) == 0 {
		return nil, nil
	}
	bars := make([]model.Bar, 0, len(out.Results))
	for _, r := range out.Results {
		bars = append(bars, model.Bar{
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
			Time:   time.UnixMilli(r.Time),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
