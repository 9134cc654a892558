package ta

import "testing"

func TestATRUndefinedOnShortInput(t *testing.T) {
	h := make([]float64, 14)
	l := make([]float64, 14)
	c := make([]float64, 14)
	if _, ok := ATR(h, l, c, 14); ok {
		t.Fatal("expected ATR to be undefined for len < period+1")
	}
}

func TestATRConstantRange(t *testing.T) {
	// свечи с одинаковым диапазоном и без гэпов: ATR == диапазону
	n := 20
	h := make([]float64, n)
	l := make([]float64, n)
	c := make([]float64, n)
	for i := 0; i < n; i++ {
		h[i] = 102
		l[i] = 100
		c[i] = 101
	}
	v, ok := ATR(h, l, c, 14)
	if !ok {
		t.Fatal("expected ATR to be defined")
	}
	if !floatEquals(v, 2) {
		t.Fatalf("expected ATR=2, got %v", v)
	}
}

func TestATRGapDominates(t *testing.T) {
	// гэп против prevClose должен попадать в TR
	h := []float64{10, 20, 20}
	l := []float64{9, 19, 19}
	c := []float64{10, 19, 20}
	v, ok := ATR(h, l, c, 2)
	if !ok {
		t.Fatal("expected ATR to be defined")
	}
	// TR(1) = max(1, |20-10|, |19-10|) = 10, TR(2) = max(1, 1, 0) = 1
	// seed = (10+1)/2 = 5.5, дальше точек нет
	if !floatEquals(v, 5.5) {
		t.Fatalf("expected ATR=5.5, got %v", v)
	}
}
