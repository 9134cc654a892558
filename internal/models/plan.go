package models

// TradePlan — готовый план сделки (short-only).
// Инвариант: Stop > Entry > Target, NotionalUSD >= 0.
type TradePlan struct {
	Entry       float64
	Stop        float64
	Target      float64
	Quantity    float64
	NotionalUSD float64
	// EntryLabel: "now" — входим по рынку, "plan" — лимитка ниже.
	EntryLabel string
	// SizeNote фиксирует, какой тир риска сработал при расчёте размера.
	SizeNote string
}

// SRLevel — уровень поддержки/сопротивления, пересчитывается на каждой оценке.
type SRLevel struct {
	Price          float64
	Hits           int
	LastTouchIndex int
}
