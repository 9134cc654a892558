package ta

import "math"

// ATR — средний истинный диапазон со сглаживанием Уайлдера.
// TR = max(high-low, |high-prevClose|, |low-prevClose|).
// ok=false, если свечей меньше period+1.
func ATR(highs, lows, closes []float64, period int) (float64, bool) {
	n := len(closes)
	if period <= 0 || n < period+1 || len(highs) != n || len(lows) != n {
		return 0, false
	}

	tr := func(i int) float64 {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		return math.Max(hl, math.Max(hc, lc))
	}

	var atr float64
	for i := 1; i <= period; i++ {
		atr += tr(i)
	}
	atr /= float64(period)

	for i := period + 1; i < n; i++ {
		atr = (atr*float64(period-1) + tr(i)) / float64(period)
	}
	return atr, true
}
