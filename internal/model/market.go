package model

import "time"

// Quote is a normalized snapshot quote for one ticker.
// Open/High/Low/PrevClose are zero when the source does not supply them.
type Quote struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        float64 `json:"volume"`
	Open          float64 `json:"open,omitempty"`
	High          float64 `json:"high,omitempty"`
	Low           float64 `json:"low,omitempty"`
	PrevClose     float64 `json:"prevClose,omitempty"`
}

// Bar is a single daily OHLCV record.
type Bar struct {
	Open   float64   `json:"o"`
	High   float64   `json:"h"`
	Low    float64   `json:"l"`
	Close  float64   `json:"c"`
	Volume float64   `json:"v"`
	Time   time.Time `json:"t"`
}

// Closes extracts the close series from a bar slice, oldest first.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// NewsItem is a normalized news article. URL is the identity key used
// for deduplication across providers.
type NewsItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source,omitempty"`
	Summary     string `json:"summary,omitempty"`
}
