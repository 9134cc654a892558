package ta

import "testing"

func TestPivotsSingleHigh(t *testing.T) {
	// 7 свечей, строгий единственный максимум в индексе 3, lookback=3
	highs := []float64{1, 2, 3, 10, 3, 2, 1}
	lows := []float64{0.5, 1.5, 2.5, 9, 2.5, 1.5, 0.9}

	piv := Pivots(highs, lows, 3)

	var highCount int
	for _, p := range piv {
		if p.Kind == PivotHigh {
			highCount++
			if p.Index != 3 || !floatEquals(p.Price, 10) {
				t.Fatalf("unexpected high pivot: %+v", p)
			}
		}
	}
	if highCount != 1 {
		t.Fatalf("expected exactly one high pivot, got %d", highCount)
	}
}

func TestPivotsLow(t *testing.T) {
	highs := []float64{5, 5, 5, 5, 5, 5, 5}
	lows := []float64{4, 3, 2, 1, 2, 3, 4}

	piv := Pivots(highs, lows, 3)

	found := false
	for _, p := range piv {
		if p.Kind == PivotLow && p.Index == 3 && floatEquals(p.Price, 1) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected low pivot at index 3, got %+v", piv)
	}
}

func TestPivotsTooShort(t *testing.T) {
	if piv := Pivots([]float64{1, 2, 3}, []float64{1, 2, 3}, 3); piv != nil {
		t.Fatalf("expected nil for window shorter than 2*lookback+1, got %+v", piv)
	}
}
