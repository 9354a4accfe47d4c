package model

// EntryZone is a buy zone between two price levels.
type EntryZone struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// TPDetail carries the two staged take-profit levels.
type TPDetail struct {
	TP1 float64 `json:"tp1,omitempty"`
	TP2 float64 `json:"tp2,omitempty"`
}

// IntradayPlanSetup is a short-horizon trade plan (1-2 days).
type IntradayPlanSetup struct {
	Ticker     string     `json:"ticker"`
	Setup      Setup      `json:"setup"`
	Entry      float64    `json:"entry"`
	SellTarget float64    `json:"sellTarget"`
	StopLoss   float64    `json:"stopLoss"`
	Hold       string     `json:"hold"`
	RR         float64    `json:"rr"`
	Confidence Confidence `json:"confidence"`
	Why        []string   `json:"why"`
	RiskFlags  []string   `json:"riskFlags"`
}

// TomorrowPlanSetup is a multi-day trade plan built from the top candidates.
type TomorrowPlanSetup struct {
	Ticker     string     `json:"ticker"`
	Setup      Setup      `json:"setup"`
	EntryZone  EntryZone  `json:"entryZone"`
	SellTarget float64    `json:"sellTarget"`
	StopLoss   float64    `json:"stopLoss"`
	Hold       string     `json:"hold"`
	Confidence Confidence `json:"confidence"`
	Why        []string   `json:"why"`
	RiskFlags  []string   `json:"riskFlags"`
	TPDetail   *TPDetail  `json:"tpDetail,omitempty"`
}

// TrendingStock is one row of the trend ranking list.
type TrendingStock struct {
	Ticker        string  `json:"ticker"`
	Setup         Setup   `json:"setup"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
	Summary       string  `json:"summary"`
}

// PickLists holds the week/month/year ticker pick lists.
type PickLists struct {
	Week  []string `json:"week"`
	Month []string `json:"month"`
	Year  []string `json:"year"`
}

// ReportPayload is the aggregate daily report. Field names are a
// compatibility surface for the dashboard and must not change.
type ReportPayload struct {
	AsOfClose      string              `json:"asOfClose"`
	Regime         Regime              `json:"regime"`
	Summary5       []string            `json:"summary5"`
	IntradayPlan   []IntradayPlanSetup `json:"intradayPlan"`
	TomorrowPlan   []TomorrowPlanSetup `json:"tomorrowPlan"`
	TrendingStrong []TrendingStock     `json:"trendingStrong"`
	Picks          PickLists           `json:"picks"`
	NewsShocks     []string            `json:"newsShocks"`
}

// ReportRecord is a persisted report row.
type ReportRecord struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	ReportDate string         `json:"report_date"`
	Status     string         `json:"status"`
	AsOf       string         `json:"asof"`
	Payload    *ReportPayload `json:"payload"`
	CreatedAt  string         `json:"created_at"`
	DeletedAt  string         `json:"deleted_at,omitempty"`
}

// RunResult reports the outcome of one wrap run attempt.
type RunResult struct {
	Inserted   bool     `json:"inserted"`
	Skipped    bool     `json:"skipped"`
	Reason     string   `json:"reason,omitempty"`
	ReportDate string   `json:"report_date,omitempty"`
	Summary    []string `json:"summary,omitempty"`
}

// Skip reasons returned in RunResult.Reason.
const (
	ReasonOutsideWindow  = "outside_window"
	ReasonAlreadyExists  = "already_exists_locked"
	ReasonUniqueConflict = "unique_conflict"
)
