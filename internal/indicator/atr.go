package indicator

import (
	"math"

	"MarketWrap/internal/model"
)

// ATR computes the average true range over the last period bars.
// True range per bar is max(high-low, |high-prevClose|, |low-prevClose|).
// Returns 0 when fewer than period+1 bars exist.
func ATR(bars []model.Bar, period int) float64 {
	if period <= 0 || len(bars) < period+1 {
		return 0
	}
	var sum float64
	for i := len(bars) - period; i < len(bars); i++ {
		h := bars[i].High
		l := bars[i].Low
		prev := bars[i-1].Close
		tr := math.Max(h-l, math.Max(math.Abs(h-prev), math.Abs(l-prev)))
		sum += tr
	}
	return sum / float64(period)
}

// HighestHigh returns the maximum high over the last n bars.
// Returns 0 for an empty series.
func HighestHigh(bars []model.Bar, n int) float64 {
	if len(bars) == 0 {
		return 0
	}
	start := len(bars) - n
	if start < 0 {
		start = 0
	}
	high := bars[start].High
	for _, b := range bars[start+1:] {
		if b.High > high {
			high = b.High
		}
	}
	return high
}
