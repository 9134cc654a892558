package ta

type PivotKind string

const (
	PivotHigh PivotKind = "H"
	PivotLow  PivotKind = "L"
)

// Pivot — локальный экстремум внутри симметричного окна lookback.
type Pivot struct {
	Price float64
	Kind  PivotKind
	Index int
}

// Pivots ищет экстремумы: i — хай-пивот, если highs[i] равен максимуму
// окна [i-L, i+L], аналогично для лоу-пивотов.
func Pivots(highs, lows []float64, lookback int) []Pivot {
	n := len(highs)
	if lookback <= 0 || n != len(lows) || n < 2*lookback+1 {
		return nil
	}

	out := make([]Pivot, 0, 8)
	for i := lookback; i < n-lookback; i++ {
		isHigh, isLow := true, true
		for j := i - lookback; j <= i+lookback; j++ {
			if highs[j] > highs[i] {
				isHigh = false
			}
			if lows[j] < lows[i] {
				isLow = false
			}
		}
		if isHigh {
			out = append(out, Pivot{Price: highs[i], Kind: PivotHigh, Index: i})
		}
		if isLow {
			out = append(out, Pivot{Price: lows[i], Kind: PivotLow, Index: i})
		}
	}
	return out
}
