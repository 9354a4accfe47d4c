package wrap

import (
	"MarketWrap/internal/indicator"
	"MarketWrap/internal/model"
)

// Regime thresholds on the benchmark's change percent.
const (
	bullThreshold = 0.5
	bearThreshold = -0.5
)

// DeriveRegime classifies the market direction from the benchmark
// ticker's change percent.
func DeriveRegime(benchmarkChangePct float64) model.Regime {
	switch {
	case benchmarkChangePct > bullThreshold:
		return model.RegimeBull
	case benchmarkChangePct < bearThreshold:
		return model.RegimeBear
	default:
		return model.RegimeNeutral
	}
}

// snapshot computes the indicator set the classifier and scorer read.
func snapshot(bars []model.Bar) model.IndicatorSet {
	closes := model.Closes(bars)
	var ind model.IndicatorSet
	ind.EMA20 = indicator.Last(indicator.EMA(closes, 20))
	ind.EMA50 = indicator.Last(indicator.EMA(closes, 50))
	ind.RSI, ind.RSIOK = indicator.RSI(closes, 14)
	if macd, ok := indicator.MACD(closes); ok {
		ind.MACDLine = macd.Line
		ind.MACDSignal = macd.Signal
		ind.MACDOK = true
	}
	ind.Mom1W, ind.Mom1WOK = indicator.Momentum(closes, 5)
	ind.Mom1M, ind.Mom1MOK = indicator.Momentum(closes, 20)
	ind.ATR = indicator.ATR(bars, 14)
	ind.Resistance = indicator.HighestHigh(bars, 20)
	return ind
}

// classifySetup labels the trade pattern. TREND is the default when
// neither the breakout nor the pullback condition holds.
func classifySetup(price float64, ind model.IndicatorSet) model.Setup {
	aboveEMA20 := price > ind.EMA20
	aboveEMA50 := price > ind.EMA50
	switch {
	case aboveEMA20 && aboveEMA50 && price > ind.Resistance*0.98:
		return model.SetupBreakout
	case aboveEMA20 && price < ind.EMA20+ind.ATR:
		return model.SetupPullback
	default:
		return model.SetupTrend
	}
}

func rsiHealthy(ind model.IndicatorSet) bool {
	return ind.RSIOK && ind.RSI > 40 && ind.RSI < 70
}

func macdBullish(ind model.IndicatorSet) bool {
	return ind.MACDOK && ind.MACDLine > ind.MACDSignal
}

// scoreCandidate classifies and scores one ticker. Reason order matters:
// the plan synthesizer truncates the lists.
func scoreCandidate(ticker string, quote *model.Quote, bars []model.Bar, hasNews bool, regime model.Regime) *model.ScoredCandidate {
	ind := snapshot(bars)
	setup := classifySetup(quote.Price, ind)

	var why []string
	if ind.EMA20 > ind.EMA50 {
		why = append(why, "EMA20 above EMA50")
	}
	if rsiHealthy(ind) {
		why = append(why, "RSI in healthy zone")
	}
	if macdBullish(ind) {
		why = append(why, "MACD bullish")
	}
	if ind.Mom1WOK && ind.Mom1W > 0 {
		why = append(why, "Positive 1w momentum")
	}
	if hasNews {
		why = append(why, "Recent news flow")
	}

	var riskFlags []string
	if ind.RSIOK && ind.RSI > 70 {
		riskFlags = append(riskFlags, "RSI overbought")
	}
	if ind.Mom1MOK && ind.Mom1M < -5 {
		riskFlags = append(riskFlags, "Weak 1m momentum")
	}

	var score float64
	switch setup {
	case model.SetupTrend:
		score += 30
	case model.SetupBreakout:
		score += 25
	case model.SetupPullback:
		score += 20
	}
	if rsiHealthy(ind) {
		score += 15
	}
	if macdBullish(ind) {
		score += 10
	}
	if ind.Mom1WOK && ind.Mom1W > 0 {
		score += 10
	}
	if regime == model.RegimeBull {
		score += 10
	}
	score += quote.ChangePercent

	confidence := model.ConfidenceMedium
	if score > 75 && len(why) >= 2 {
		confidence = model.ConfidenceHigh
	}
	if score < 40 {
		confidence = model.ConfidenceLow
	}

	return &model.ScoredCandidate{
		Ticker:     ticker,
		Quote:      quote,
		Bars:       bars,
		Indicators: ind,
		Setup:      setup,
		Score:      score,
		Confidence: confidence,
		Why:        why,
		RiskFlags:  riskFlags,
		HasNews:    hasNews,
	}
}
