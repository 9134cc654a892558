package ta

import (
	"math"
	"testing"
)

const floatDelta = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatDelta
}

func TestRSIUndefinedOnShortInput(t *testing.T) {
	closes := make([]float64, 14) // ровно period, нужен period+1
	if _, ok := RSI(closes, 14); ok {
		t.Fatal("expected RSI to be undefined for len < period+1")
	}
	if _, ok := RSI(nil, 14); ok {
		t.Fatal("expected RSI to be undefined for empty input")
	}
}

func TestRSIMonotonicUpIs100(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	v, ok := RSI(closes, 14)
	if !ok {
		t.Fatal("expected RSI to be defined")
	}
	if !floatEquals(v, 100) {
		t.Fatalf("expected RSI=100 for monotonic gains, got %v", v)
	}
}

func TestRSILossDominantBelow50(t *testing.T) {
	closes := []float64{100, 101, 99, 98, 97, 96, 95.5, 95, 94, 93.5, 93, 92, 91, 90.5, 90}
	v, ok := RSI(closes, 14)
	if !ok {
		t.Fatal("expected RSI to be defined")
	}
	if v >= 50 {
		t.Fatalf("expected RSI < 50 for loss-dominant series, got %v", v)
	}
}

func TestRSIDomain(t *testing.T) {
	cases := [][]float64{
		{1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2},
		{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
		{10, 3, 12, 1, 9, 4, 11, 2, 8, 5, 10, 3, 9, 4, 8, 6, 7},
	}
	for i, closes := range cases {
		v, ok := RSI(closes, 14)
		if !ok {
			t.Fatalf("case %d: expected defined RSI", i)
		}
		if v < 0 || v > 100 {
			t.Fatalf("case %d: RSI out of [0,100]: %v", i, v)
		}
	}
}
