package ta

// Slope — МНК-наклон ряда values относительно индексов 0..n-1.
// Замкнутая формула через суммы, без регрессионных библиотек.
// Для n<2 или вырожденного знаменателя возвращает 0.
func Slope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	fn := float64(n)
	den := fn*sumXX - sumX*sumX
	if den == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / den
}
