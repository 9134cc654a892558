package models

// Candle — одна свеча. Время в epoch ms, как отдаёт биржа.
type Candle struct {
	OpenTime  int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	CloseTime int64
}

// Series — свечи по возрастанию OpenTime, скользящее окно фиксированного размера.
type Series []Candle

func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Close
	}
	return out
}

func (s Series) Highs() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].High
	}
	return out
}

func (s Series) Lows() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Low
	}
	return out
}

// SymbolInfo — строка листинга биржи (exchangeInfo).
type SymbolInfo struct {
	Symbol     string `json:"symbol"`
	Status     string `json:"status"`
	QuoteAsset string `json:"quoteAsset"`
}
