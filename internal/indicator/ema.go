package indicator

// EMA computes the exponential moving average of values with smoothing
// constant k = 2/(period+1), seeded with the first value. The output has
// one entry per input.
func EMA(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}
	k := 2.0 / (float64(period) + 1.0)
	out := make([]float64, len(values))
	prev := values[0]
	for i, v := range values {
		if i > 0 {
			prev = v*k + prev*(1-k)
		}
		out[i] = prev
	}
	return out
}

// Last returns the final element of a series, or 0 for an empty one.
func Last(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
