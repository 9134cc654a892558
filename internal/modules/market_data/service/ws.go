package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"pump_bot/pkg/logger"
)

// WatchPrice держит стрим miniTicker по символу и обновляет кеш последних цен.
// Реконнект с нарастающей паузой, завершение только по ctx.
func (c *Client) WatchPrice(ctx context.Context, symbol string) {
	if symbol == "" {
		return
	}
	url := c.wsBase + "/" + strings.ToLower(symbol) + "@miniTicker"
	retry := 0

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, _, err := c.wsDialer.DialContext(ctx, url, nil)
		if err != nil {
			retry++
			if retry > 8 {
				retry = 8
			}
			logger.Error("ws dial %s: %v", symbol, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(300*retry) * time.Millisecond):
			}
			continue
		}
		retry = 0

		// закрываем соединение при отмене, чтобы разблокировать ReadMessage
		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				_ = conn.Close()
			case <-done:
			}
		}()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				close(done)
				_ = conn.Close()
				break
			}
			var frame struct {
				Event string `json:"e"`
				Close string `json:"c"`
			}
			if err := sonic.Unmarshal(msg, &frame); err != nil || frame.Event != "24hrMiniTicker" {
				continue
			}
			if px, err := strconv.ParseFloat(frame.Close, 64); err == nil && px > 0 {
				c.SetPrice(symbol, px)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}
