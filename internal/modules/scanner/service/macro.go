package service

import (
	"context"
	"fmt"

	"pump_bot/internal/modules/config"
)

// MacroGate режет тик целиком, когда макро-символ (обычно BTC) сам
// резко двинулся: памп на альтах в этот момент — эхо, не сигнал.
type MacroGate struct {
	cfg    config.MacroConfig
	market MarketData
}

func NewMacroGate(cfg config.MacroConfig, market MarketData) *MacroGate {
	return &MacroGate{cfg: cfg, market: market}
}

// Allow возвращает изменение макро-символа за текущий бар.
// Цена из websocket-кеша свежее закрытия свечи, если стрим уже жив.
func (g *MacroGate) Allow(ctx context.Context) (bool, float64, error) {
	if g.cfg.Symbol == "" {
		return true, 0, nil
	}

	candles, err := g.market.Klines(ctx, g.cfg.Symbol, g.cfg.Interval, 2)
	if err != nil {
		return false, 0, fmt.Errorf("MacroGate.Allow: %w", err)
	}
	if len(candles) < 2 {
		return false, 0, fmt.Errorf("MacroGate.Allow: got %d candles", len(candles))
	}

	prev := candles[len(candles)-2].Close
	cur := candles[len(candles)-1].Close
	if live := g.market.LastPrice(g.cfg.Symbol); live > 0 {
		cur = live
	}
	if prev <= 0 {
		return false, 0, fmt.Errorf("MacroGate.Allow: bad prev close %v", prev)
	}

	change := (cur - prev) / prev
	if change < 0 {
		return -change <= g.cfg.MaxChange, change, nil
	}
	return change <= g.cfg.MaxChange, change, nil
}
