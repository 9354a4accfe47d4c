package model

// Setup labels a classified trade pattern.
type Setup string

const (
	SetupTrend      Setup = "TREND"
	SetupPullback   Setup = "PULLBACK"
	SetupBreakout   Setup = "BREAKOUT"
	SetupNewsDriven Setup = "NEWS-DRIVEN"
)

// Confidence tiers for a scored candidate.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Regime is the coarse market direction derived from the benchmark ticker.
type Regime string

const (
	RegimeBull    Regime = "BULL"
	RegimeBear    Regime = "BEAR"
	RegimeNeutral Regime = "NEUTRAL"
)

// IndicatorSet is the per-ticker indicator snapshot the scorer works from.
// The OK flags mirror indicators that return no value on short history.
type IndicatorSet struct {
	EMA20      float64
	EMA50      float64
	RSI        float64
	RSIOK      bool
	MACDLine   float64
	MACDSignal float64
	MACDOK     bool
	Mom1W      float64
	Mom1WOK    bool
	Mom1M      float64
	Mom1MOK    bool
	ATR        float64
	Resistance float64 // 20-bar high
}

// ScoredCandidate is one ticker after classification and scoring.
// Built fresh per run, never persisted.
type ScoredCandidate struct {
	Ticker     string
	Quote      *Quote
	Bars       []Bar
	Indicators IndicatorSet
	Setup      Setup
	Score      float64
	Confidence Confidence
	Why        []string
	RiskFlags  []string
	HasNews    bool
}
