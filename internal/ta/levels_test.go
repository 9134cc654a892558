package ta

import (
	"math"
	"sort"
	"testing"

	"pump_bot/internal/models"
)

func TestClusterLevelsMergesClosePivots(t *testing.T) {
	pivots := []Pivot{
		{Price: 100.0, Kind: PivotHigh, Index: 1},
		{Price: 100.1, Kind: PivotHigh, Index: 5}, // в пределах 0.2% от 100
		{Price: 120.0, Kind: PivotLow, Index: 3},
	}

	levels := ClusterLevels(pivots, 0.002, 6)
	if len(levels) != 2 {
		t.Fatalf("expected 2 levels, got %d: %+v", len(levels), levels)
	}

	// кластер из двух касаний должен победить по скору
	if levels[0].Hits != 2 {
		t.Fatalf("expected merged cluster first, got %+v", levels[0])
	}
	if !floatEquals(levels[0].Price, 100.05) {
		t.Fatalf("expected hit-weighted average 100.05, got %v", levels[0].Price)
	}
	if levels[0].LastTouchIndex != 5 {
		t.Fatalf("expected last touch index 5, got %d", levels[0].LastTouchIndex)
	}
}

func TestClusterLevelsMaxLevels(t *testing.T) {
	pivots := []Pivot{
		{Price: 100, Index: 0}, {Price: 200, Index: 1}, {Price: 300, Index: 2},
		{Price: 400, Index: 3}, {Price: 500, Index: 4},
	}
	levels := ClusterLevels(pivots, 0.002, 3)
	if len(levels) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(levels))
	}
}

func TestClusterLevelsIdempotent(t *testing.T) {
	pivots := []Pivot{
		{Price: 99.98, Index: 0}, {Price: 100.02, Index: 2}, {Price: 100.00, Index: 7},
		{Price: 105.5, Index: 4}, {Price: 105.6, Index: 9},
		{Price: 90.0, Index: 5},
	}
	const tol = 0.002

	first := ClusterLevels(pivots, tol, 6)

	// повторная кластеризация собственного вывода (каждая цена — одно касание)
	again := make([]Pivot, 0, len(first))
	for i, lv := range first {
		again = append(again, Pivot{Price: lv.Price, Index: i})
	}
	second := ClusterLevels(again, tol, 6)

	if len(first) != len(second) {
		t.Fatalf("re-clustering changed level count: %d -> %d", len(first), len(second))
	}

	a := prices(first)
	b := prices(second)
	sort.Float64s(a)
	sort.Float64s(b)
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-8 {
			t.Fatalf("re-clustering moved level %d: %v -> %v", i, a[i], b[i])
		}
	}
}

func prices(levels []models.SRLevel) []float64 {
	out := make([]float64, len(levels))
	for i, lv := range levels {
		out[i] = lv.Price
	}
	return out
}
