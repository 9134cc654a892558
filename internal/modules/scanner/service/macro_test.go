package service

import (
	"context"
	"testing"

	"pump_bot/internal/models"
	"pump_bot/internal/modules/config"
)

func macroCfg() config.MacroConfig {
	return config.MacroConfig{Symbol: "BTCUSDT", Interval: "1h", MaxChange: 0.02}
}

func TestMacroGateAllowsQuietMarket(t *testing.T) {
	market := &stubMarket{series: map[string]models.Series{
		"BTCUSDT": makeSeries([]float64{50000, 50500}), // +1%
	}}
	gate := NewMacroGate(macroCfg(), market)

	ok, change, err := gate.Allow(context.Background())
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if !ok {
		t.Fatalf("gate closed at %.2f%% change", change*100)
	}
}

func TestMacroGateBlocksOnSpike(t *testing.T) {
	for _, closes := range [][]float64{
		{50000, 51500}, // +3%
		{50000, 48500}, // -3%, модуль тоже считается
	} {
		market := &stubMarket{series: map[string]models.Series{"BTCUSDT": makeSeries(closes)}}
		gate := NewMacroGate(macroCfg(), market)

		ok, _, err := gate.Allow(context.Background())
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if ok {
			t.Errorf("gate open on closes %v, want blocked", closes)
		}
	}
}

func TestMacroGatePrefersLivePrice(t *testing.T) {
	// свеча спокойная, но websocket уже видит рывок
	market := &stubMarket{
		series: map[string]models.Series{"BTCUSDT": makeSeries([]float64{50000, 50100})},
		prices: map[string]float64{"BTCUSDT": 51500},
	}
	gate := NewMacroGate(macroCfg(), market)

	ok, _, err := gate.Allow(context.Background())
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if ok {
		t.Error("gate must trust live price over candle close")
	}
}

func TestMacroGateDisabledWithoutSymbol(t *testing.T) {
	gate := NewMacroGate(config.MacroConfig{}, &stubMarket{})
	ok, _, err := gate.Allow(context.Background())
	if err != nil || !ok {
		t.Fatalf("Allow = %v, %v; want open without error", ok, err)
	}
}

func TestMacroGateFailsClosedOnError(t *testing.T) {
	market := &stubMarket{err: context.DeadlineExceeded}
	gate := NewMacroGate(macroCfg(), market)

	ok, _, err := gate.Allow(context.Background())
	if err == nil || ok {
		t.Fatalf("Allow = %v, %v; want closed with error", ok, err)
	}
}
