package risk

import (
	"sync"
	"time"
)

// Cooldown — карта symbol -> время последнего сигнала.
// Между двумя допущенными сигналами по символу проходит не меньше окна.
type Cooldown struct {
	mu       sync.Mutex
	window   time.Duration
	lastSeen map[string]time.Time
}

func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{
		window:   window,
		lastSeen: make(map[string]time.Time),
	}
}

// TryMark возвращает true и запоминает now, если окно по символу
// уже истекло (или символ ещё не встречался).
func (c *Cooldown) TryMark(symbol string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if last, ok := c.lastSeen[symbol]; ok && now.Sub(last) < c.window {
		return false
	}
	c.lastSeen[symbol] = now
	return true
}
