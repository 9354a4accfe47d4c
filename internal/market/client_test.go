package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"MarketWrap/internal/model"
)

type fakeQuoteSource struct {
	name  string
	quote *model.Quote
	err   error
	calls int
}

func (f *fakeQuoteSource) Name() string { return f.name }

func (f *fakeQuoteSource) Quote(_ context.Context, _ string) (*model.Quote, error) {
	f.calls++
	return f.quote, f.err
}

type fakeBarSource struct {
	name  string
	bars  []model.Bar
	err   error
	calls int
}

func (f *fakeBarSource) Name() string { return f.name }

func (f *fakeBarSource) Bars(_ context.Context, _ string, _ int) ([]model.Bar, error) {
	f.calls++
	return f.bars, f.err
}

func TestGetQuote_FallbackChain(t *testing.T) {
	primary := &fakeQuoteSource{name: "primary", err: errors.New("boom")}
	secondary := &fakeQuoteSource{name: "secondary", quote: &model.Quote{Ticker: "AAPL", Price: 225}}
	c := NewClient([]QuoteSource{primary, secondary}, nil, nil, zap.NewNop())

	q := c.GetQuote(context.Background(), "AAPL")
	if q == nil || q.Price != 225 {
		t.Fatalf("expected secondary quote, got %+v", q)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("expected one call each, got %d/%d", primary.calls, secondary.calls)
	}
}

func TestGetQuote_DegenerateQuoteFallsThrough(t *testing.T) {
	primary := &fakeQuoteSource{name: "primary", quote: &model.Quote{Ticker: "AAPL"}} // zero price
	secondary := &fakeQuoteSource{name: "secondary", quote: &model.Quote{Ticker: "AAPL", Price: 100}}
	c := NewClient([]QuoteSource{primary, secondary}, nil, nil, zap.NewNop())

	q := c.GetQuote(context.Background(), "AAPL")
	if q == nil || q.Price != 100 {
		t.Fatalf("expected fallback past zero-price quote, got %+v", q)
	}
}

func TestGetQuote_AllSourcesFail(t *testing.T) {
	c := NewClient([]QuoteSource{&fakeQuoteSource{name: "a", err: errors.New("down")}}, nil, nil, zap.NewNop())
	if q := c.GetQuote(context.Background(), "MSFT"); q != nil {
		t.Errorf("expected nil quote, got %+v", q)
	}
}

func TestGetQuote_CacheHit(t *testing.T) {
	now := time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)
	src := &fakeQuoteSource{name: "src", quote: &model.Quote{Ticker: "SPY", Price: 590}}
	c := NewClient([]QuoteSource{src}, nil, func() time.Time { return now }, zap.NewNop())

	c.GetQuote(context.Background(), "SPY")
	c.GetQuote(context.Background(), "SPY")
	if src.calls != 1 {
		t.Errorf("expected single upstream call, got %d", src.calls)
	}

	now = now.Add(QuoteTTL + time.Second)
	c.GetQuote(context.Background(), "SPY")
	if src.calls != 2 {
		t.Errorf("expected refetch after TTL, got %d calls", src.calls)
	}
}

func TestGetBars_FallbackAndCacheKeyIncludesRange(t *testing.T) {
	bars := []model.Bar{{Close: 100, High: 101, Low: 99, Open: 100}}
	primary := &fakeBarSource{name: "primary"} // empty payload
	secondary := &fakeBarSource{name: "secondary", bars: bars}
	c := NewClient(nil, []BarSource{primary, secondary}, nil, zap.NewNop())

	if got := c.GetBars(context.Background(), "NVDA", "1m"); len(got) != 1 {
		t.Fatalf("expected fallback bars, got %v", got)
	}
	c.GetBars(context.Background(), "NVDA", "3m")
	if secondary.calls != 2 {
		t.Errorf("expected distinct cache entries per range, got %d calls", secondary.calls)
	}
	c.GetBars(context.Background(), "NVDA", "1m")
	if secondary.calls != 2 {
		t.Errorf("expected cache hit for repeated range, got %d calls", secondary.calls)
	}
}

func TestRangeDays(t *testing.T) {
	cases := map[string]int{"1d": 1, "5d": 5, "1m": 30, "3m": 90, "unknown": 90}
	for rng, want := range cases {
		if got := RangeDays(rng); got != want {
			t.Errorf("RangeDays(%q) = %d, want %d", rng, got, want)
		}
	}
}
