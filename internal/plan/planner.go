// Package plan строит план short-сделки из окна свечей и уровней S/R:
// вход, стоп, тейк и размер позиции от риск-бюджета депозита.
package plan

import (
	"fmt"

	"pump_bot/internal/models"
	"pump_bot/internal/ta"
)

const (
	EntryBreakout = "breakout"
	EntryRetest   = "retest"

	StopSwing      = "swing"
	StopVolatility = "volatility"
)

type Config struct {
	EntryMode        string
	StopMode         string
	EntryOffsetRatio float64 // сдвиг входа вниз от опорной цены
	StopBufferRatio  float64 // сдвиг стопа вверх от опорной цены
	RRMultiple       float64 // тейк = entry - RR*(stop-entry)
	DepositUSD       float64
	RiskBps          float64 // основной тир риска, б.п. от депозита
	RiskBpsFallback  float64 // запасной тир, если не добираем мин. нотионал
	MinNotionalUSD   float64
	ATRPeriod        int
	ATRMultiplier    float64
}

type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Build считает план по закрытым свечам. Ошибка означает, что сигнал
// по символу на этом тике не отправляется.
func (c *Calculator) Build(highs, lows, closes []float64, levels []models.SRLevel) (models.TradePlan, error) {
	n := len(closes)
	if n < 2 || len(highs) != n || len(lows) != n {
		return models.TradePlan{}, fmt.Errorf("plan: need at least 2 candles, got %d", n)
	}

	last := closes[n-1]
	priorLow := lows[n-2]
	priorHigh := highs[n-2]
	if last <= 0 {
		return models.TradePlan{}, fmt.Errorf("plan: non-positive last close %v", last)
	}

	entry, label := c.entry(last, priorLow, priorHigh, levels)
	if entry <= 0 {
		return models.TradePlan{}, fmt.Errorf("plan: non-positive entry %v", entry)
	}

	stop := c.stop(entry, highs, lows, closes)
	// вырожденный стоп поднимаем принудительно
	if stop <= entry {
		stop = entry * (1 + c.cfg.StopBufferRatio)
	}
	risk := stop - entry
	if risk <= 0 {
		return models.TradePlan{}, fmt.Errorf("plan: degenerate stop distance entry=%v stop=%v", entry, stop)
	}

	target := entry - c.cfg.RRMultiple*risk

	qty, notional, note := c.size(entry, risk)

	return models.TradePlan{
		Entry:       entry,
		Stop:        stop,
		Target:      target,
		Quantity:    qty,
		NotionalUSD: notional,
		EntryLabel:  label,
		SizeNote:    note,
	}, nil
}

func (c *Calculator) entry(last, priorLow, priorHigh float64, levels []models.SRLevel) (float64, string) {
	switch c.cfg.EntryMode {
	case EntryRetest:
		// ближайший уровень на текущей цене или выше; без уровней — прошлый хай
		ref := priorHigh
		best := -1.0
		for _, lv := range levels {
			if lv.Price >= last && (best < 0 || lv.Price < best) {
				best = lv.Price
			}
		}
		if best > 0 {
			ref = best
		}
		return ref * (1 - c.cfg.EntryOffsetRatio), "plan"
	default: // breakout
		if last < priorLow {
			// пробой уже случился, входим сразу
			return last, "now"
		}
		return priorLow * (1 - c.cfg.EntryOffsetRatio), "plan"
	}
}

func (c *Calculator) stop(entry float64, highs, lows, closes []float64) float64 {
	n := len(highs)
	swing := highs[n-1]
	if highs[n-2] > swing {
		swing = highs[n-2]
	}
	swing *= 1 + c.cfg.StopBufferRatio

	if c.cfg.StopMode == StopVolatility {
		if atr, ok := ta.ATR(highs, lows, closes, c.cfg.ATRPeriod); ok {
			return entry + atr*c.cfg.ATRMultiplier
		}
		// мало истории для ATR — свинговый стоп
	}
	return swing
}

// size: riskBudget = deposit*bps/10000, qty = riskBudget/(stop-entry).
// Если нотионал меньше минимального ордера — один пересчёт на запасном тире.
func (c *Calculator) size(entry, risk float64) (qty, notional float64, note string) {
	compute := func(bps float64) (float64, float64) {
		budget := c.cfg.DepositUSD * bps / 10000
		q := budget / risk
		return q, q * entry
	}

	qty, notional = compute(c.cfg.RiskBps)
	note = fmt.Sprintf("risk %.0fbps", c.cfg.RiskBps)
	if notional < c.cfg.MinNotionalUSD && c.cfg.RiskBpsFallback > c.cfg.RiskBps {
		qty, notional = compute(c.cfg.RiskBpsFallback)
		note = fmt.Sprintf("risk %.0fbps (below min notional)", c.cfg.RiskBpsFallback)
	}
	return qty, notional, note
}
