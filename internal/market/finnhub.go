package market

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

// FinnhubSource fetches quotes and candles from the Finnhub API.
type FinnhubSource struct {
	Token  string
	Client *http.Client
}

// NewFinnhubSource creates a Finnhub source with optional proxy support.
func NewFinnhubSource(token, proxyURL string) *FinnhubSource {
	return &FinnhubSource{Token: token, Client: newHTTPClient(proxyURL)}
}

func (s *FinnhubSource) Name() string { return "finnhub" }

func (s *FinnhubSource) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("finnhub fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("finnhub read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("finnhub: status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("finnhub decode: %w", err)
	}
	return nil
}

type finnhubQuote struct {
	Current   float64 `json:"c"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Open      float64 `json:"o"`
	PrevClose float64 `json:"pc"`
}

// Quote fetches the real-time quote endpoint. A zero current price is
// treated as no data.
func (s *FinnhubSource) Quote(ctx context.Context, ticker string) (*model.Quote, error) {
	u := fmt.Sprintf("https://finnhub.io/api/v1/quote?symbol=%s&token=%s",
		url.QueryEscape(ticker), url.QueryEscape(s.Token))
	var r finnhubQuote
	if err := s.get(ctx, u, &r); err != nil {
		return nil, err
	}
	if r.Current == 0 {
		return nil, nil
	}
	prevClose := r.PrevClose
	if prevClose == 0 {
		prevClose = r.Open
	}
	if prevClose == 0 {
		prevClose = r.Current
	}
	change := r.Current - prevClose
	q := &model.Quote{
		Ticker:    ticker,
		Price:     r.Current,
		Change:    change,
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

type finnhubCandles struct {
	Closes  []float64 `json:"c"`
	Highs   []float64 `json:"h"`
	Lows    []float64 `json:"l"`
	Opens   []float64 `json:"o"`
	Times   []int64   `json:"t"`
	Volumes []float64 `json:"v"`
	Status  string    `json:"s"`
}

// Bars fetches daily candles for the trailing day window.
func (s *FinnhubSource) Bars(ctx context.Context, ticker string, days int) ([]model.Bar, error) {
	to := time.Now().Unix()
	from := to - int64(days)*86400
	u := fmt.Sprintf("https://finnhub.io/api/v1/stock/candle?symbol=%s&resolution=D&from=%d&to=%d&token=%s",
		url.QueryEscape(ticker), from, to, url.QueryEscape(s.Token))
	var r finnhubCandles
	if err := s.get(ctx, u, &r); err != nil {
		return nil, err
	}
	if len(r.Closes) == 0 {
		return nil, nil
	}
	at := func(vals []float64, i int, fallback float64) float64 {
		if i < len(vals) {
			return vals[i]
		}
		return fallback
	}
	bars := make([]model.Bar, 0, len(r.Closes))
	for i, c := range r.Closes {
		var ts time.Time
		if i < len(r.Times) {
			ts = time.Unix(r.Times[i], 0)
		}
		bars = append(bars, model.Bar{
			Open:   at(r.Opens, i, c),
			High:   at(r.Highs, i, c),
			Low:    at(r.Lows, i, c),
			Close:  c,
			Volume: at(r.Volumes, i, 0),
			Time:   ts,
		})
	}
	return bars, nil
}
