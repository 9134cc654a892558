package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pump_bot/internal/models"
	"pump_bot/internal/modules/config"
	market_data "pump_bot/internal/modules/market_data/service"
	"pump_bot/pkg/logger"
)

// Listing — источники листинга, нужные резолверу.
type Listing interface {
	ExchangeInfo(ctx context.Context) ([]models.SymbolInfo, error)
	TickerPrices(ctx context.Context) ([]market_data.TickerPrice, error)
	Ticker24hSymbols(ctx context.Context) ([]string, error)
}

// Resolver держит рабочую вселенную символов.
// Каноничная стратегия: спотовый exchangeInfo (status=TRADING, нужный quote,
// без левередж-токенов), затем два фолбэка. Пустой или упавший рефреш
// НИКОГДА не стирает рабочий кеш — иначе сканер молча встанет.
type Resolver struct {
	mu  sync.Mutex
	cfg config.UniverseConfig
	src Listing

	symbols     []string
	lastRefresh time.Time
	nextAllowed time.Time // гейт: до этого момента не ходим в сеть
	seeded      bool
}

func NewResolver(cfg *config.Config, src Listing) *Resolver {
	return &Resolver{cfg: cfg.Universe, src: src}
}

// Resolve возвращает текущую вселенную и признак «обновили прямо сейчас».
func (r *Resolver) Resolve(ctx context.Context, now time.Time) ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.symbols) > 0 && now.Before(r.nextAllowed) {
		return r.cached(), false
	}

	for _, strat := range []struct {
		name string
		fn   func(context.Context) ([]string, error)
	}{
		{"exchange_info", r.fromExchangeInfo},
		{"ticker_prices", r.fromTickerPrices},
		{"ticker_24h", r.fromTicker24h},
	} {
		syms, err := strat.fn(ctx)
		if err != nil {
			logger.Error("universe %s: %v", strat.name, err)
			continue
		}
		if len(syms) == 0 {
			continue
		}
		r.symbols = syms
		r.lastRefresh = now
		r.nextAllowed = now.Add(r.cfg.RefreshInterval)
		logger.Info("universe refreshed via %s: %d symbols", strat.name, len(syms))
		return r.cached(), true
	}

	// холодный старт без единого успешного источника: один раз садимся на сид
	if len(r.symbols) == 0 && !r.seeded {
		r.seeded = true
		if seed, err := loadSeed(r.cfg.SeedFile); err == nil && len(seed) > 0 {
			r.symbols = seed
			r.lastRefresh = now
			r.nextAllowed = now.Add(r.cfg.RefreshInterval)
			logger.Info("universe seeded from %s: %d symbols", r.cfg.SeedFile, len(seed))
			return r.cached(), true
		}
	}

	// тотальный провал: кеш не трогаем, только отодвигаем следующий заход
	r.nextAllowed = now.Add(r.cfg.Backoff)
	return r.cached(), false
}

func (r *Resolver) cached() []string {
	out := make([]string, len(r.symbols))
	copy(out, r.symbols)
	return out
}

func (r *Resolver) fromExchangeInfo(ctx context.Context) ([]string, error) {
	infos, err := r.src.ExchangeInfo(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(infos))
	out := make([]string, 0, len(infos))
	for _, si := range infos {
		if si.Status != "TRADING" || si.QuoteAsset != r.cfg.QuoteAsset {
			continue
		}
		if !r.accept(si.Symbol) {
			continue
		}
		if _, dup := seen[si.Symbol]; dup {
			continue
		}
		seen[si.Symbol] = struct{}{}
		out = append(out, si.Symbol)
	}
	sort.Strings(out)
	return out, nil
}

func (r *Resolver) fromTickerPrices(ctx context.Context) ([]string, error) {
	tickers, err := r.src.TickerPrices(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if r.accept(t.Symbol) {
			out = append(out, t.Symbol)
		}
	}
	sort.Strings(out)
	return dedup(out), nil
}

func (r *Resolver) fromTicker24h(ctx context.Context) ([]string, error) {
	syms, err := r.src.Ticker24hSymbols(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(syms))
	for _, s := range syms {
		if r.accept(s) {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return dedup(out), nil
}

// accept: нужный quote и не левередж-токен (UP/DOWN/BULL/BEAR).
func (r *Resolver) accept(symbol string) bool {
	if !strings.HasSuffix(symbol, r.cfg.QuoteAsset) {
		return false
	}
	base := strings.TrimSuffix(symbol, r.cfg.QuoteAsset)
	if base == "" {
		return false
	}
	for _, suf := range []string{"UP", "DOWN", "BULL", "BEAR"} {
		if strings.HasSuffix(base, suf) {
			return false
		}
	}
	return true
}

func dedup(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
