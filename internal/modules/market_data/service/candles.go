package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bytedance/sonic"

	"pump_bot/internal/models"
)

// Klines тянет окно свечей. Формат строки биржи:
// [openTime, "open", "high", "low", "close", "volume", closeTime, ...]
func (c *Client) Klines(ctx context.Context, symbol, interval string, limit int) (models.Series, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("limit", strconv.Itoa(limit))

	b, err := c.get(ctx, "/api/v3/klines?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("Klines %s: %w", symbol, err)
	}

	var raw [][]interface{}
	if err := sonic.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("Klines %s decode: %w", symbol, err)
	}

	out := make(models.Series, 0, len(raw))
	for i, row := range raw {
		candle, err := parseKlineRow(row)
		if err != nil {
			return nil, fmt.Errorf("Klines %s row %d: %w", symbol, i, err)
		}
		// биржа обязана отдавать по возрастанию, но проверяем
		if len(out) > 0 && candle.OpenTime <= out[len(out)-1].OpenTime {
			return nil, fmt.Errorf("Klines %s: non-increasing openTime at row %d", symbol, i)
		}
		out = append(out, candle)
	}
	return out, nil
}

func parseKlineRow(row []interface{}) (models.Candle, error) {
	if len(row) < 7 {
		return models.Candle{}, fmt.Errorf("short row: %d fields", len(row))
	}

	openTime, ok1 := row[0].(float64)
	closeTime, ok2 := row[6].(float64)
	if !ok1 || !ok2 {
		return models.Candle{}, fmt.Errorf("bad timestamps %v %v", row[0], row[6])
	}

	nums := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		s, ok := row[i].(string)
		if !ok {
			return models.Candle{}, fmt.Errorf("field %d is not a string: %v", i, row[i])
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.Candle{}, fmt.Errorf("field %d: %w", i, err)
		}
		nums[i-1] = f
	}

	return models.Candle{
		OpenTime:  int64(openTime),
		Open:      nums[0],
		High:      nums[1],
		Low:       nums[2],
		Close:     nums[3],
		Volume:    nums[4],
		CloseTime: int64(closeTime),
	}, nil
}
