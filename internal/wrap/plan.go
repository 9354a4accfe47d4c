package wrap

import (
	"fmt"

	"github.com/shopspring/decimal"

	"MarketWrap/internal/indicator"
	"MarketWrap/internal/model"
)

// Plan geometry in ATR multiples.
const (
	intradayStopATR   = 0.8
	intradayTargetATR = 1.2
	minRiskReward     = 1.2

	tomorrowStopATR   = 1.2
	tomorrowTargetATR = 1.5
	tomorrowTP1ATR    = 1.0
	tomorrowTP2ATR    = 2.0
)

func round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

func round1(x float64) float64 {
	return decimal.NewFromFloat(x).Round(1).InexactFloat64()
}

// planATR is the volatility unit for plan geometry; a ticker with no ATR
// history falls back to 2% of price.
func planATR(c *model.ScoredCandidate) float64 {
	if c.Indicators.ATR > 0 {
		return c.Indicators.ATR
	}
	return c.Quote.Price * 0.02
}

func truncate(ss []string, n int) []string {
	if len(ss) > n {
		return ss[:n]
	}
	return ss
}

// buildIntradayPlan projects qualifying candidates into 1-2 day setups.
// The input is already sorted by score; order is preserved through the
// filter, projection, and risk/reward cut.
func buildIntradayPlan(scored []*model.ScoredCandidate) []model.IntradayPlanSetup {
	var candidates []*model.ScoredCandidate
	for _, c := range scored {
		ind := c.Indicators
		if ind.RSIOK && ind.RSI >= 80 {
			continue
		}
		if ind.Mom1WOK && ind.Mom1W <= 0 {
			continue
		}
		if c.Setup != model.SetupBreakout && c.Setup != model.SetupPullback && !c.HasNews {
			continue
		}
		candidates = append(candidates, c)
		if len(candidates) == 10 {
			break
		}
	}

	plan := make([]model.IntradayPlanSetup, 0, 3)
	for _, c := range candidates {
		atr := planATR(c)
		price := c.Quote.Price
		ema20 := c.Indicators.EMA20

		var entry float64
		var setup model.Setup
		switch {
		case c.Setup == model.SetupBreakout && price > c.Indicators.Resistance*0.98:
			entry = c.Indicators.Resistance + 0.2*atr
			setup = model.SetupBreakout
		case c.Setup == model.SetupPullback:
			entry = ema20
			setup = model.SetupPullback
		case c.HasNews:
			entry = price
			setup = model.SetupNewsDriven
		default:
			entry = (ema20 + price) / 2
			setup = model.SetupNewsDriven
		}

		stop := entry - intradayStopATR*atr
		target := entry + intradayTargetATR*atr
		rr := 0.0
		if entry > stop {
			rr = (target - entry) / (entry - stop)
		}
		if round1(rr) < minRiskReward {
			continue
		}
		plan = append(plan, model.IntradayPlanSetup{
			Ticker:     c.Ticker,
			Setup:      setup,
			Entry:      round2(entry),
			SellTarget: round2(target),
			StopLoss:   round2(stop),
			Hold:       "1–2 days",
			RR:         round1(rr),
			Confidence: c.Confidence,
			Why:        truncate(c.Why, 2),
			RiskFlags:  truncate(c.RiskFlags, 1),
		})
		if len(plan) == 3 {
			break
		}
	}
	return plan
}

// buildTomorrowPlan projects the top candidates into multi-day setups
// with an entry zone, stop, sell target, and staged take-profits.
func buildTomorrowPlan(top []*model.ScoredCandidate, regime model.Regime) []model.TomorrowPlanSetup {
	plan := make([]model.TomorrowPlanSetup, 0, len(top))
	for _, c := range top {
		atr := planATR(c)
		price := c.Quote.Price
		ema20 := c.Indicators.EMA20

		var entryLow, entryHigh float64
		if c.Setup == model.SetupBreakout {
			res := indicator.HighestHigh(c.Bars, 10)
			entryLow = res + 0.2*atr
			entryHigh = res + 0.5*atr
		} else {
			entryLow = max(price-0.5*atr, ema20-0.5*atr)
			entryHigh = min(price+0.5*atr, ema20+0.5*atr)
		}
		mid := (entryLow + entryHigh) / 2
		stop := mid - tomorrowStopATR*atr
		target := mid + tomorrowTargetATR*atr
		tp1 := mid + tomorrowTP1ATR*atr
		tp2 := mid + tomorrowTP2ATR*atr

		hold := "3–7 days"
		if regime == model.RegimeBull && c.Setup == model.SetupTrend {
			hold = "1–3 weeks"
		}

		plan = append(plan, model.TomorrowPlanSetup{
			Ticker:     c.Ticker,
			Setup:      c.Setup,
			EntryZone:  model.EntryZone{Low: round2(entryLow), High: round2(entryHigh)},
			SellTarget: round2(target),
			StopLoss:   round2(stop),
			Hold:       hold,
			Confidence: c.Confidence,
			Why:        truncate(c.Why, 2),
			RiskFlags:  truncate(c.RiskFlags, 1),
			TPDetail:   &model.TPDetail{TP1: round2(tp1), TP2: round2(tp2)},
		})
	}
	return plan
}

// buildTrending renders the top candidates as trend-ranking rows.
func buildTrending(top []*model.ScoredCandidate) []model.TrendingStock {
	trending := make([]model.TrendingStock, 0, len(top))
	for _, c := range top {
		summary := "Strong technicals"
		if len(c.Why) > 0 {
			summary = c.Why[0]
		}
		trending = append(trending, model.TrendingStock{
			Ticker:        c.Ticker,
			Setup:         c.Setup,
			Price:         c.Quote.Price,
			ChangePercent: c.Quote.ChangePercent,
			Summary:       summary,
		})
	}
	return trending
}

// buildPicks derives the week/month/year pick lists. All three are the
// same top-5 today; distinct horizon rankings are a later concern.
func buildPicks(scored []*model.ScoredCandidate) model.PickLists {
	n := min(5, len(scored))
	tickers := make([]string, 0, n)
	for _, c := range scored[:n] {
		tickers = append(tickers, c.Ticker)
	}
	return model.PickLists{Week: tickers, Month: tickers, Year: tickers}
}

// buildNewsShocks renders up to five "ticker: headline" lines, one per
// ticker with news, in the order news was fetched.
func buildNewsShocks(fetched []string, newsMap map[string][]model.NewsItem) []string {
	var shocks []string
	for _, t := range fetched {
		items := newsMap[t]
		if len(items) == 0 {
			continue
		}
		shocks = append(shocks, fmt.Sprintf("%s: %s", t, items[0].Title))
		if len(shocks) == 5 {
			break
		}
	}
	if shocks == nil {
		shocks = []string{}
	}
	return shocks
}

// buildSummary produces the fixed five-line report summary.
func buildSummary(regime model.Regime, benchmark string, benchmarkQuote *model.Quote, tomorrowPlan []model.TomorrowPlanSetup, newsTotal int) []string {
	benchLine := fmt.Sprintf("%s N/A%%", benchmark)
	if benchmarkQuote != nil {
		benchLine = fmt.Sprintf("%s %.2f%%", benchmark, benchmarkQuote.ChangePercent)
	}
	topTicker, topSetup, topHold := "N/A", model.Setup("N/A"), "3–7 days"
	if len(tomorrowPlan) > 0 {
		topTicker = tomorrowPlan[0].Ticker
		topSetup = tomorrowPlan[0].Setup
		topHold = tomorrowPlan[0].Hold
	}
	return []string{
		fmt.Sprintf("Market regime: %s", regime),
		benchLine,
		fmt.Sprintf("Top setup: %s (%s)", topTicker, topSetup),
		fmt.Sprintf("Hold horizon: %s", topHold),
		fmt.Sprintf("News items: %d", newsTotal),
	}
}
