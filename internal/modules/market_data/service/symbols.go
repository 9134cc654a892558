package service

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"

	"pump_bot/internal/models"
)

// ExchangeInfo — основной листинг: symbol/status/quoteAsset.
func (c *Client) ExchangeInfo(ctx context.Context) ([]models.SymbolInfo, error) {
	b, err := c.get(ctx, "/api/v3/exchangeInfo")
	if err != nil {
		return nil, fmt.Errorf("ExchangeInfo: %w", err)
	}

	var payload struct {
		Symbols []models.SymbolInfo `json:"symbols"`
	}
	// пейлоад на пару мегабайт, декодим sonic'ом
	if err := sonic.Unmarshal(b, &payload); err != nil {
		return nil, fmt.Errorf("ExchangeInfo decode: %w", err)
	}
	return payload.Symbols, nil
}

type TickerPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// TickerPrices — узкий фолбэк-листинг: все пары с последней ценой.
func (c *Client) TickerPrices(ctx context.Context) ([]TickerPrice, error) {
	b, err := c.get(ctx, "/api/v3/ticker/price")
	if err != nil {
		return nil, fmt.Errorf("TickerPrices: %w", err)
	}

	var out []TickerPrice
	if err := sonic.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("TickerPrices decode: %w", err)
	}
	return out, nil
}

// Ticker24hSymbols — альтернативный листинг через суточную статистику.
func (c *Client) Ticker24hSymbols(ctx context.Context) ([]string, error) {
	b, err := c.get(ctx, "/api/v3/ticker/24hr")
	if err != nil {
		return nil, fmt.Errorf("Ticker24hSymbols: %w", err)
	}

	var rows []struct {
		Symbol string `json:"symbol"`
	}
	if err := sonic.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("Ticker24hSymbols decode: %w", err)
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Symbol)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(b))
	}
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}
