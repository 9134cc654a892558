package models

import "time"

// SignalEvent — полностью собранный сигнал для отправки в нотифайер.
type SignalEvent struct {
	Symbol    string
	Price     float64
	ChangePct float64 // изменение за один интервал, в процентах
	RSI       float64
	Plan      TradePlan
	Candles   Series    // окно для графика
	Levels    []SRLevel // уровни для графика
	CreatedAt time.Time
	// сколько сигналов по символу уже было (из стораджа статистики, 0 если недоступен)
	PriorSignals int
}

// OpenPositionRecord — запись в риск-леджере, живёт до истечения TTL.
type OpenPositionRecord struct {
	Symbol      string
	CreatedAt   time.Time
	NotionalUSD float64
}

// SignalStats — агрегат по символу из персистентного стораджа.
type SignalStats struct {
	Symbol       string
	SignalCount  int
	LastSignalAt time.Time
}
