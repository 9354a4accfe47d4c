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

	"github.com/piquette/finance-go/quote"

	"MarketWrap/internal/model"
)

// YahooSource is the keyless fallback: quotes via the finance-go client,
// bars via the public chart API. It needs no credentials, so it sits last
// in the chain when enabled.
type YahooSource struct {
	Client *http.Client
}

// NewYahooSource creates a Yahoo source with optional proxy support for
// the chart API (the quote client manages its own transport).
func NewYahooSource(proxyURL string) *YahooSource {
	return &YahooSource{Client: newHTTPClient(proxyURL)}
}

func (s *YahooSource) Name() string { return "yahoo" }

// Quote fetches the regular-market quote.
func (s *YahooSource) Quote(_ context.Context, ticker string) (*model.Quote, error) {
	q, err := quote.Get(ticker)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote: %w", err)
	}
	if q == nil || q.RegularMarketPrice == 0 {
		return nil, nil
	}
	return &model.Quote{
		Ticker:        ticker,
		Price:         q.RegularMarketPrice,
		Change:        q.RegularMarketChange,
		ChangePercent: q.RegularMarketChangePercent,
		Volume:        float64(q.RegularMarketVolume),
		Open:          q.RegularMarketOpen,
		High:          q.RegularMarketDayHigh,
		Low:           q.RegularMarketDayLow,
		PrevClose:     q.RegularMarketPreviousClose,
	}, nil
}

// yahooChart is the response shape of the Yahoo chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []any `json:"open"`
					High   []any `json:"high"`
					Low    []any `json:"low"`
					Close  []any `json:"close"`
					Volume []any `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func chartRange(days int) string {
	switch {
	case days <= 5:
		return "5d"
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	default:
		return "6mo"
	}
}

// Bars fetches daily bars from the chart API and trims to the requested
// day count. Null bars (holidays) are skipped.
func (s *YahooSource) Bars(ctx context.Context, ticker string, days int) ([]model.Bar, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s",
		url.PathEscape(ticker), chartRange(days))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	q := result.Indicators.Quote[0]
	bars := make([]model.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o := toFloat(q.Open[i])
		h := toFloat(q.High[i])
		l := toFloat(q.Low[i])
		c := toFloat(q.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue
		}
		bars = append(bars, model.Bar{
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(q.Volume[i]),
			Time:   time.Unix(ts, 0),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}
