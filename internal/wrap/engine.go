// Package wrap implements the daily wrap engine: it pulls quotes, bars,
// and news for the ticker universe, classifies and scores each ticker,
// and synthesizes the report payload.
package wrap

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"MarketWrap/internal/model"
)

// MarketData supplies quotes and bars. Nil results mean no data; the
// access layer never surfaces provider errors.
type MarketData interface {
	GetQuote(ctx context.Context, ticker string) *model.Quote
	GetBars(ctx context.Context, ticker, rng string) []model.Bar
}

// NewsData supplies deduplicated news per ticker and never fails.
type NewsData interface {
	GetNews(ctx context.Context, ticker string, daysBack int) []model.NewsItem
}

// barsRange is the history window the scorer needs (enough for EMA50 and
// MACD to settle).
const barsRange = "1m"

// Engine orchestrates one wrap run over the ticker universe.
type Engine struct {
	market    MarketData
	news      NewsData
	universe  []string
	benchmark string
	newsLimit int
	log       *zap.Logger
}

// NewEngine creates an Engine. News fetching is restricted to the first
// newsLimit tickers of the universe to cap external call volume.
func NewEngine(market MarketData, news NewsData, universe []string, benchmark string, newsLimit int, logger *zap.Logger) *Engine {
	return &Engine{
		market:    market,
		news:      news,
		universe:  universe,
		benchmark: benchmark,
		newsLimit: newsLimit,
		log:       logger,
	}
}

// RunDailyWrap computes the report payload for reportDate (YYYY-MM-DD).
// Tickers that resolve no quote or no bars are excluded from scoring;
// when nothing scores at all, the demo payload is returned.
func (e *Engine) RunDailyWrap(ctx context.Context, reportDate string) *model.ReportPayload {
	quotes := make(map[string]*model.Quote, len(e.universe))
	barsMap := make(map[string][]model.Bar, len(e.universe))

	// Quote+bar fetches fan out per ticker and join here before scoring.
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, ticker := range e.universe {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			q := e.market.GetQuote(ctx, ticker)
			b := e.market.GetBars(ctx, ticker, barsRange)
			mu.Lock()
			quotes[ticker] = q
			barsMap[ticker] = b
			mu.Unlock()
		}(ticker)
	}
	wg.Wait()

	fetched := e.universe
	if len(fetched) > e.newsLimit {
		fetched = fetched[:e.newsLimit]
	}
	newsMap := make(map[string][]model.NewsItem, len(fetched))
	for _, ticker := range fetched {
		newsMap[ticker] = e.news.GetNews(ctx, ticker, 1)
	}

	var benchChange float64
	benchQuote := quotes[e.benchmark]
	if benchQuote != nil {
		benchChange = benchQuote.ChangePercent
	}
	regime := DeriveRegime(benchChange)

	var scored []*model.ScoredCandidate
	for _, ticker := range e.universe {
		q := quotes[ticker]
		bars := barsMap[ticker]
		if q == nil || len(bars) == 0 {
			continue
		}
		scored = append(scored, scoreCandidate(ticker, q, bars, len(newsMap[ticker]) > 0, regime))
	}

	if len(scored) == 0 {
		e.log.Warn("no candidates scored, returning demo payload", zap.String("report_date", reportDate))
		return DemoPayload(reportDate)
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	top5 := scored
	if len(top5) > 5 {
		top5 = top5[:5]
	}

	newsTotal := 0
	for _, items := range newsMap {
		newsTotal += len(items)
	}

	tomorrowPlan := buildTomorrowPlan(top5, regime)
	payload := &model.ReportPayload{
		AsOfClose:      reportDate + "T21:00:00.000Z",
		Regime:         regime,
		Summary5:       buildSummary(regime, e.benchmark, benchQuote, tomorrowPlan, newsTotal),
		IntradayPlan:   buildIntradayPlan(scored),
		TomorrowPlan:   tomorrowPlan,
		TrendingStrong: buildTrending(top5),
		Picks:          buildPicks(scored),
		NewsShocks:     buildNewsShocks(fetched, newsMap),
	}
	e.log.Info("wrap computed",
		zap.String("report_date", reportDate),
		zap.String("regime", string(regime)),
		zap.Int("scored", len(scored)),
		zap.Int("news_items", newsTotal))
	return payload
}
