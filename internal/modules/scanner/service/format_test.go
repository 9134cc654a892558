package service

import (
	"strings"
	"testing"
	"time"

	"pump_bot/internal/models"
)

func TestFormatSignal(t *testing.T) {
	ev := &models.SignalEvent{
		Symbol:    "PEPEUSDT",
		Price:     0.00001234,
		ChangePct: 4.2,
		RSI:       81.3,
		Plan: models.TradePlan{
			Entry:       0.00001230,
			Stop:        0.00001260,
			Target:      0.00001155,
			Quantity:    81300.81,
			NotionalUSD: 1.0,
			EntryLabel:  "plan",
			SizeNote:    "risk 10bps",
		},
		CreatedAt:    time.Now(),
		PriorSignals: 3,
	}

	text := FormatSignal(ev, "USDT", "1m")

	for _, want := range []string{
		"PEPEUSDT",
		"+4.20%",
		"RSI 81.3",
		"0.00001230",
		"risk 10bps",
		"Уже было сигналов: 3",
		"https://www.mexc.com/exchange/PEPE_USDT",
		"https://www.tradingview.com/chart/?symbol=BINANCE:PEPEUSDT",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("message lacks %q:\n%s", want, text)
		}
	}
}

func TestFormatSignalNoPriorBlock(t *testing.T) {
	ev := &models.SignalEvent{Symbol: "ABCUSDT", Plan: models.TradePlan{EntryLabel: "now"}}
	text := FormatSignal(ev, "USDT", "1m")
	if strings.Contains(text, "Уже было") {
		t.Errorf("zero prior signals must not render the repeat block:\n%s", text)
	}
	if !strings.Contains(text, "сейчас") {
		t.Errorf("entry label now must render as immediate entry:\n%s", text)
	}
}
