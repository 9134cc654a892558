// Package risk — учёт открытых сигналов и пер-символьный кулдаун.
// Всё состояние в памяти, рестарт его теряет — это осознанное решение.
package risk

import (
	"sync"
	"time"

	"pump_bot/internal/models"
)

type LedgerConfig struct {
	OpenTradeTTL     time.Duration
	MaxOpenTotal     int
	MaxOpenPerSymbol int
	MarginCapBps     float64
	DepositUSD       float64
}

// Ledger хранит записи открытых сигналов. Просрочка чистится лениво,
// перед каждой проверкой допуска — фонового таймера нет.
type Ledger struct {
	mu      sync.Mutex
	cfg     LedgerConfig
	records []models.OpenPositionRecord
}

func NewLedger(cfg LedgerConfig) *Ledger {
	return &Ledger{cfg: cfg}
}

// TryAdmit атомарно проверяет три лимита и при успехе добавляет запись.
// Проверка идёт до любых внешних сайд-эффектов (нотификации).
func (l *Ledger) TryAdmit(symbol string, notionalUSD float64, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked(now)

	if len(l.records) >= l.cfg.MaxOpenTotal {
		return false
	}

	perSymbol := 0
	var exposure float64
	for _, r := range l.records {
		exposure += r.NotionalUSD
		if r.Symbol == symbol {
			perSymbol++
		}
	}
	if perSymbol >= l.cfg.MaxOpenPerSymbol {
		return false
	}
	if l.cfg.DepositUSD <= 0 {
		return false
	}
	// кап по марже проверяем ДО допуска, а не корректируем постфактум
	if (exposure+notionalUSD)*10000/l.cfg.DepositUSD > l.cfg.MarginCapBps {
		return false
	}

	l.records = append(l.records, models.OpenPositionRecord{
		Symbol:      symbol,
		CreatedAt:   now,
		NotionalUSD: notionalUSD,
	})
	return true
}

// Prune удаляет просроченные записи. Вызывается и снаружи (для /status).
func (l *Ledger) Prune(now time.Time) {
	l.mu.Lock()
	l.pruneLocked(now)
	l.mu.Unlock()
}

func (l *Ledger) pruneLocked(now time.Time) {
	kept := l.records[:0]
	for _, r := range l.records {
		if now.Sub(r.CreatedAt) < l.cfg.OpenTradeTTL {
			kept = append(kept, r)
		}
	}
	l.records = kept
}

func (l *Ledger) OpenCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

func (l *Ledger) Exposure() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum float64
	for _, r := range l.records {
		sum += r.NotionalUSD
	}
	return sum
}
