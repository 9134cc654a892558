package service

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"pump_bot/internal/modules/config"
)

// Client — REST-клиент биржи + кеш последних цен из websocket-стрима.
// Бизнес-логики здесь нет, только транспорт и парсинг.
type Client struct {
	http     *http.Client
	baseURL  string
	wsBase   string
	wsDialer *websocket.Dialer

	mu     sync.RWMutex
	prices map[string]float64
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:     &http.Client{Timeout: cfg.Network.Timeout},
		baseURL:  cfg.Network.BaseURL,
		wsBase:   cfg.Network.WSBaseURL,
		wsDialer: &websocket.Dialer{},
		prices:   make(map[string]float64),
	}
}

func (c *Client) SetPrice(symbol string, price float64) {
	c.mu.Lock()
	c.prices[symbol] = price
	c.mu.Unlock()
}

// LastPrice возвращает 0, если стрим ещё ничего не принёс.
func (c *Client) LastPrice(symbol string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.prices[symbol]
}
