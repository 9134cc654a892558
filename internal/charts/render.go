// Package charts рисует окно закрытий с горизонтальными уровнями S/R в PNG.
// Ошибка рендера не критична: пайплайн деградирует до текстовой нотификации.
package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"pump_bot/internal/models"
)

type Renderer struct {
	width  int
	height int
}

func NewRenderer() *Renderer {
	return &Renderer{width: 800, height: 500}
}

func (r *Renderer) Render(symbol, interval string, candles models.Series, levels []models.SRLevel) ([]byte, error) {
	if len(candles) < 2 {
		return nil, fmt.Errorf("charts: need at least 2 candles, got %d", len(candles))
	}

	xs := make([]time.Time, len(candles))
	ys := make([]float64, len(candles))
	for i, c := range candles {
		xs[i] = time.UnixMilli(c.CloseTime)
		ys[i] = c.Close
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    symbol,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				StrokeWidth: 1.5,
			},
		},
	}

	// уровни — пунктиром, последняя цена — сплошной
	hline := func(price float64, color drawing.Color, dash []float64) chart.Series {
		return chart.TimeSeries{
			XValues: []time.Time{xs[0], xs[len(xs)-1]},
			YValues: []float64{price, price},
			Style: chart.Style{
				StrokeColor:     color,
				StrokeWidth:     1,
				StrokeDashArray: dash,
			},
		}
	}
	gray := drawing.ColorFromHex("888888")
	for _, lv := range levels {
		series = append(series, hline(lv.Price, gray, []float64{5, 5}))
	}
	series = append(series, hline(ys[len(ys)-1], chart.ColorBlack, nil))

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s • %s • S/R levels", symbol, interval),
		Width:  r.width,
		Height: r.height,
		Series: series,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("charts render %s: %w", symbol, err)
	}
	return buf.Bytes(), nil
}
