package indicator

import (
	"math"
	"testing"
	"time"

	"MarketWrap/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEMA_LengthAndSeed(t *testing.T) {
	in := []float64{10, 11, 12, 13, 14}
	out := EMA(in, 3)
	if len(out) != len(in) {
		t.Fatalf("expected output length %d, got %d", len(in), len(out))
	}
	if !almostEqual(out[0], in[0]) {
		t.Errorf("first output should equal first input: got %f", out[0])
	}
	// k = 2/(3+1) = 0.5, so out[1] = 11*0.5 + 10*0.5 = 10.5
	if !almostEqual(out[1], 10.5) {
		t.Errorf("expected out[1]=10.5, got %f", out[1])
	}
}

func TestEMA_Empty(t *testing.T) {
	if out := EMA(nil, 20); out != nil {
		t.Errorf("expected nil for empty input, got %v", out)
	}
}

func TestRSI_InsufficientData(t *testing.T) {
	closes := make([]float64, 14) // need 15 for period 14
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	if _, ok := RSI(closes, 14); ok {
		t.Error("expected no value for series shorter than period+1")
	}
}

func TestRSI_MonotonicUp(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi, ok := RSI(closes, 14)
	if !ok {
		t.Fatal("expected a value for 15 closes")
	}
	if !almostEqual(rsi, 100) {
		t.Errorf("expected RSI 100 with zero average loss, got %f", rsi)
	}
}

func TestRSI_MixedSeries(t *testing.T) {
	closes := []float64{100, 101, 100, 102, 101, 103, 102, 104, 103, 105, 104, 106, 105, 107, 106}
	rsi, ok := RSI(closes, 14)
	if !ok {
		t.Fatal("expected a value")
	}
	if rsi <= 0 || rsi >= 100 {
		t.Errorf("expected RSI strictly inside (0,100), got %f", rsi)
	}
}

func flatBars(n int, price float64) []model.Bar {
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = model.Bar{
			Open: price, High: price, Low: price, Close: price,
			Volume: 1000,
			Time:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		}
	}
	return bars
}

func TestATR_FlatSeries(t *testing.T) {
	if atr := ATR(flatBars(30, 100), 14); atr != 0 {
		t.Errorf("expected ATR 0 for flat series, got %f", atr)
	}
}

func TestATR_InsufficientData(t *testing.T) {
	if atr := ATR(flatBars(10, 100), 14); atr != 0 {
		t.Errorf("expected ATR 0 on short history, got %f", atr)
	}
}

func TestATR_RangeOnly(t *testing.T) {
	bars := make([]model.Bar, 20)
	for i := range bars {
		bars[i] = model.Bar{Open: 100, High: 102, Low: 98, Close: 100}
	}
	// TR is constantly 4, so ATR(14) must be 4.
	if atr := ATR(bars, 14); !almostEqual(atr, 4) {
		t.Errorf("expected ATR 4, got %f", atr)
	}
}

func TestMACD_InsufficientData(t *testing.T) {
	closes := make([]float64, 33)
	for i := range closes {
		closes[i] = float64(i)
	}
	if _, ok := MACD(closes); ok {
		t.Error("expected no value below 34 closes")
	}
}

func TestMACD_UptrendBullish(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	v, ok := MACD(closes)
	if !ok {
		t.Fatal("expected a value for 60 closes")
	}
	if v.Line <= 0 {
		t.Errorf("expected positive MACD line in a steady uptrend, got %f", v.Line)
	}
}

func TestMomentum(t *testing.T) {
	closes := []float64{100, 101, 102, 103, 104, 110}
	mom, ok := Momentum(closes, 5)
	if !ok {
		t.Fatal("expected a value")
	}
	if !almostEqual(mom, 10) {
		t.Errorf("expected 10%% momentum, got %f", mom)
	}
}

func TestMomentum_NoValue(t *testing.T) {
	if _, ok := Momentum([]float64{1, 2, 3}, 5); ok {
		t.Error("expected no value on short history")
	}
	if _, ok := Momentum([]float64{0, 1, 2, 3, 4, 5}, 5); ok {
		t.Error("expected no value when the base close is zero")
	}
}

func TestHighestHigh(t *testing.T) {
	bars := flatBars(25, 100)
	bars[20].High = 152
	if h := HighestHigh(bars, 20); !almostEqual(h, 152) {
		t.Errorf("expected 20-bar high 152, got %f", h)
	}
	// The spike sits outside a 3-bar lookback window.
	if h := HighestHigh(bars, 3); !almostEqual(h, 100) {
		t.Errorf("expected 3-bar high 100, got %f", h)
	}
}
