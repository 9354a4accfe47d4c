package wrap

import "MarketWrap/internal/model"

// DemoPayload is the fixed fallback report returned when zero candidates
// scored (no providers configured or all returned nothing). Downstream
// consumers always receive a well-formed payload; the "(demo)" marker in
// the first summary line identifies it. This is a deliberate business
// rule, not an error path.
func DemoPayload(reportDate string) *model.ReportPayload {
	intraday := []model.IntradayPlanSetup{
		{Ticker: "NVDA", Setup: model.SetupBreakout, Entry: 141.5, SellTarget: 145.2, StopLoss: 138.8, Hold: "1–2 days", RR: 1.5, Confidence: model.ConfidenceMedium, Why: []string{"Momentum strong", "Volume spike"}, RiskFlags: []string{}},
		{Ticker: "AMD", Setup: model.SetupPullback, Entry: 142.0, SellTarget: 146.4, StopLoss: 139.2, Hold: "1–2 days", RR: 1.6, Confidence: model.ConfidenceHigh, Why: []string{"EMA20 support", "RSI healthy"}, RiskFlags: []string{}},
		{Ticker: "TSLA", Setup: model.SetupNewsDriven, Entry: 245.0, SellTarget: 252.0, StopLoss: 240.0, Hold: "1–2 days", RR: 1.4, Confidence: model.ConfidenceMedium, Why: []string{"Recent news flow"}, RiskFlags: []string{}},
	}
	tomorrow := []model.TomorrowPlanSetup{
		{Ticker: "AAPL", Setup: model.SetupTrend, EntryZone: model.EntryZone{Low: 225.5, High: 227.2}, SellTarget: 235.0, StopLoss: 218.0, Hold: "3–7 days", Confidence: model.ConfidenceHigh, Why: []string{"EMA20 above EMA50", "RSI in healthy zone"}, RiskFlags: []string{}, TPDetail: &model.TPDetail{TP1: 231.0, TP2: 235.0}},
		{Ticker: "NVDA", Setup: model.SetupPullback, EntryZone: model.EntryZone{Low: 138.0, High: 141.5}, SellTarget: 150.0, StopLoss: 130.0, Hold: "3–7 days", Confidence: model.ConfidenceMedium, Why: []string{"MACD bullish", "Positive 1w momentum"}, RiskFlags: []string{}, TPDetail: &model.TPDetail{TP1: 145.0, TP2: 150.0}},
		{Ticker: "MSFT", Setup: model.SetupTrend, EntryZone: model.EntryZone{Low: 415.0, High: 418.5}, SellTarget: 432.0, StopLoss: 402.0, Hold: "1–3 weeks", Confidence: model.ConfidenceHigh, Why: []string{"EMA20 above EMA50", "Strong technicals"}, RiskFlags: []string{}, TPDetail: &model.TPDetail{TP1: 427.0, TP2: 432.0}},
		{Ticker: "GOOGL", Setup: model.SetupBreakout, EntryZone: model.EntryZone{Low: 178.5, High: 180.2}, SellTarget: 188.0, StopLoss: 172.0, Hold: "3–7 days", Confidence: model.ConfidenceMedium, Why: []string{"RSI in healthy zone"}, RiskFlags: []string{}, TPDetail: &model.TPDetail{TP1: 184.0, TP2: 188.0}},
		{Ticker: "META", Setup: model.SetupTrend, EntryZone: model.EntryZone{Low: 565.0, High: 570.0}, SellTarget: 590.0, StopLoss: 548.0, Hold: "3–7 days", Confidence: model.ConfidenceMedium, Why: []string{"Positive 1w momentum"}, RiskFlags: []string{}, TPDetail: &model.TPDetail{TP1: 582.0, TP2: 590.0}},
	}
	demoChanges := []float64{0.8, 1.2, 0.6, 1.5, 1.0}
	trending := make([]model.TrendingStock, 0, len(tomorrow))
	for i, p := range tomorrow {
		summary := "Strong technicals"
		if len(p.Why) > 0 {
			summary = p.Why[0]
		}
		trending = append(trending, model.TrendingStock{
			Ticker:        p.Ticker,
			Setup:         p.Setup,
			Price:         (p.EntryZone.Low + p.EntryZone.High) / 2,
			ChangePercent: demoChanges[i],
			Summary:       summary,
		})
	}
	picks := []string{"AAPL", "NVDA", "MSFT", "GOOGL", "META"}
	return &model.ReportPayload{
		AsOfClose: reportDate + "T21:00:00.000Z",
		Regime:    model.RegimeNeutral,
		Summary5: []string{
			"Market regime: NEUTRAL (demo)",
			"SPY N/A% – set POLYGON_API_KEY or FINNHUB_API_KEY for live data",
			"Top setup: AAPL (TREND)",
			"Hold horizon: 3–7 days",
			"News items: 0 (demo)",
		},
		IntradayPlan:   intraday,
		TomorrowPlan:   tomorrow,
		TrendingStrong: trending,
		Picks:          model.PickLists{Week: picks, Month: picks, Year: picks},
		NewsShocks:     []string{},
	}
}
