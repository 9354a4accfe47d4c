package indicator

// Momentum returns the percentage change between the close `days` bars
// ago and the latest close. Returns ok=false on short history or when the
// base close is zero.
func Momentum(closes []float64, days int) (float64, bool) {
	if days <= 0 || len(closes) < days+1 {
		return 0, false
	}
	base := closes[len(closes)-days-1]
	if base == 0 {
		return 0, false
	}
	latest := closes[len(closes)-1]
	return (latest - base) / base * 100, true
}
