package service

import (
	"fmt"
	"strings"

	"pump_bot/internal/models"
)

// FormatSignal собирает текст сигнала для нотифайера.
// Цены печатаем с запасом знаков: хвостовые нули дешевле, чем потерянная
// точность на мелких альтах.
func FormatSignal(ev *models.SignalEvent, quote, interval string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🚨 ПАМП %s\n", ev.Symbol)
	fmt.Fprintf(&b, "📈 +%.2f%% за %s, RSI %.1f\n", ev.ChangePct, interval, ev.RSI)
	fmt.Fprintf(&b, "💰 Цена: %.8f\n\n", ev.Price)

	p := ev.Plan
	entryTag := "по плану"
	if p.EntryLabel == "now" {
		entryTag = "сейчас"
	}
	fmt.Fprintf(&b, "🎯 Шорт-план (%s):\n", entryTag)
	fmt.Fprintf(&b, "  вход  %.8f\n", p.Entry)
	fmt.Fprintf(&b, "  стоп  %.8f\n", p.Stop)
	fmt.Fprintf(&b, "  тейк  %.8f\n", p.Target)
	fmt.Fprintf(&b, "  объём %.4f (~%.2f USD, %s)\n", p.Quantity, p.NotionalUSD, p.SizeNote)

	if ev.PriorSignals > 0 {
		fmt.Fprintf(&b, "\n🔁 Уже было сигналов: %d\n", ev.PriorSignals)
	}

	base := strings.TrimSuffix(ev.Symbol, quote)
	fmt.Fprintf(&b, "\nMEXC: https://www.mexc.com/exchange/%s_%s\n", base, quote)
	fmt.Fprintf(&b, "TradingView: https://www.tradingview.com/chart/?symbol=BINANCE:%s", ev.Symbol)

	return b.String()
}
