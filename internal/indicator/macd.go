package indicator

// macdMinPoints is the shortest close series MACD accepts: the 26-period
// EMA plus 9 signal periods need to have settled.
const macdMinPoints = 34

// MACDValue holds the MACD line and its signal line.
type MACDValue struct {
	Line   float64
	Signal float64
}

// MACD computes EMA(12)-EMA(26) as the MACD line and its EMA(9) as the
// signal line, returning the latest value of each. Returns ok=false when
// fewer than 34 closes exist.
func MACD(closes []float64) (MACDValue, bool) {
	if len(closes) < macdMinPoints {
		return MACDValue{}, false
	}
	ema12 := EMA(closes, 12)
	ema26 := EMA(closes, 26)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = ema12[i] - ema26[i]
	}
	signal := EMA(line, 9)
	return MACDValue{Line: Last(line), Signal: Last(signal)}, true
}
