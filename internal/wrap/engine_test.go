package wrap

import (
	"context"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"MarketWrap/internal/model"
)

type fakeMarket struct {
	mu         sync.Mutex
	quotes     map[string]*model.Quote
	bars       map[string][]model.Bar
	quoteCalls int
	barCalls   int
}

func (f *fakeMarket) GetQuote(_ context.Context, ticker string) *model.Quote {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quoteCalls++
	return f.quotes[ticker]
}

func (f *fakeMarket) GetBars(_ context.Context, ticker, _ string) []model.Bar {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.barCalls++
	return f.bars[ticker]
}

type fakeNews struct {
	mu    sync.Mutex
	items map[string][]model.NewsItem
	calls []string
}

func (f *fakeNews) GetNews(_ context.Context, ticker string, _ int) []model.NewsItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ticker)
	return f.items[ticker]
}

func quoteFor(ticker string, price, changePct float64) *model.Quote {
	return &model.Quote{Ticker: ticker, Price: price, Change: price * changePct / 100, ChangePercent: changePct}
}

func TestRunDailyWrap_EmptyUniverseYieldsDemoPayload(t *testing.T) {
	engine := NewEngine(
		&fakeMarket{},
		&fakeNews{},
		[]string{"SPY", "AAPL", "NVDA"}, "SPY", 10, zap.NewNop())

	payload := engine.RunDailyWrap(context.Background(), "2025-06-03")
	if payload == nil {
		t.Fatal("expected a payload")
	}
	if !strings.Contains(payload.Summary5[0], "demo") {
		t.Errorf("expected demo marker in summary5[0], got %q", payload.Summary5[0])
	}
	if len(payload.TomorrowPlan) != 5 {
		t.Errorf("demo tomorrow plan must have 5 entries, got %d", len(payload.TomorrowPlan))
	}
	if len(payload.Summary5) != 5 {
		t.Errorf("summary5 must have 5 lines, got %d", len(payload.Summary5))
	}
}

func TestRunDailyWrap_ScoresUniverseAndBuildsPayload(t *testing.T) {
	universe := []string{"SPY", "AAPL", "NVDA", "MSFT"}
	market := &fakeMarket{
		quotes: map[string]*model.Quote{
			"SPY":  quoteFor("SPY", 590, 0.8),
			"AAPL": quoteFor("AAPL", 165, 1.0),
			"NVDA": quoteFor("NVDA", 170, 2.5),
			"MSFT": quoteFor("MSFT", 420, 0.2),
		},
		bars: map[string][]model.Bar{
			"SPY":  risingBars(60, 530),
			"AAPL": risingBars(60, 100),
			"NVDA": risingBars(60, 105),
			"MSFT": risingBars(60, 355),
		},
	}
	newsClient := &fakeNews{items: map[string][]model.NewsItem{
		"NVDA": {{Title: "NVDA pops", URL: "https://example.com/n"}},
	}}
	engine := NewEngine(market, newsClient, universe, "SPY", 10, zap.NewNop())

	payload := engine.RunDailyWrap(context.Background(), "2025-06-03")

	if payload.Regime != model.RegimeBull {
		t.Errorf("expected BULL regime at +0.8%%, got %s", payload.Regime)
	}
	if payload.AsOfClose != "2025-06-03T21:00:00.000Z" {
		t.Errorf("unexpected asOfClose %q", payload.AsOfClose)
	}
	if len(payload.TomorrowPlan) != 4 {
		t.Errorf("expected one tomorrow entry per scored ticker, got %d", len(payload.TomorrowPlan))
	}
	if len(payload.TrendingStrong) != 4 {
		t.Errorf("expected 4 trending rows, got %d", len(payload.TrendingStrong))
	}
	// NVDA has the highest change percent of the identically-shaped
	// series, so it should rank first.
	if payload.TomorrowPlan[0].Ticker != "NVDA" {
		t.Errorf("expected NVDA ranked first, got %s", payload.TomorrowPlan[0].Ticker)
	}
	if len(payload.NewsShocks) != 1 || payload.NewsShocks[0] != "NVDA: NVDA pops" {
		t.Errorf("unexpected news shocks %v", payload.NewsShocks)
	}
	if len(payload.Picks.Week) != 4 {
		t.Errorf("expected 4 picks from a 4-ticker score list, got %d", len(payload.Picks.Week))
	}
	if market.quoteCalls != len(universe) || market.barCalls != len(universe) {
		t.Errorf("expected one quote+bar fetch per ticker, got %d/%d", market.quoteCalls, market.barCalls)
	}
}

func TestRunDailyWrap_ExcludesTickersMissingData(t *testing.T) {
	universe := []string{"SPY", "AAPL", "NOBARS", "NOQUOTE"}
	market := &fakeMarket{
		quotes: map[string]*model.Quote{
			"SPY":    quoteFor("SPY", 590, 0.1),
			"AAPL":   quoteFor("AAPL", 165, 1.0),
			"NOBARS": quoteFor("NOBARS", 10, 0),
		},
		bars: map[string][]model.Bar{
			"SPY":     risingBars(60, 530),
			"AAPL":    risingBars(60, 100),
			"NOQUOTE": risingBars(60, 50),
		},
	}
	engine := NewEngine(market, &fakeNews{}, universe, "SPY", 10, zap.NewNop())

	payload := engine.RunDailyWrap(context.Background(), "2025-06-03")
	if len(payload.TomorrowPlan) != 2 {
		t.Errorf("expected only fully-resolved tickers scored, got %d", len(payload.TomorrowPlan))
	}
	for _, p := range payload.TomorrowPlan {
		if p.Ticker == "NOBARS" || p.Ticker == "NOQUOTE" {
			t.Errorf("ticker %s should have been excluded", p.Ticker)
		}
	}
}

func TestRunDailyWrap_NewsRestrictedToLimit(t *testing.T) {
	universe := []string{"SPY", "AAPL", "NVDA", "MSFT"}
	newsClient := &fakeNews{}
	engine := NewEngine(&fakeMarket{}, newsClient, universe, "SPY", 2, zap.NewNop())

	engine.RunDailyWrap(context.Background(), "2025-06-03")
	if len(newsClient.calls) != 2 {
		t.Fatalf("expected news for first 2 tickers only, got %v", newsClient.calls)
	}
	if newsClient.calls[0] != "SPY" || newsClient.calls[1] != "AAPL" {
		t.Errorf("expected universe prefix order, got %v", newsClient.calls)
	}
}
