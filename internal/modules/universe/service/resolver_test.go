package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pump_bot/internal/models"
	"pump_bot/internal/modules/config"
	market_data "pump_bot/internal/modules/market_data/service"
)

type stubListing struct {
	infos     []models.SymbolInfo
	infosErr  error
	tickers   []market_data.TickerPrice
	tickerErr error
	daily     []string
	dailyErr  error

	infoCalls int
}

func (s *stubListing) ExchangeInfo(ctx context.Context) ([]models.SymbolInfo, error) {
	s.infoCalls++
	return s.infos, s.infosErr
}

func (s *stubListing) TickerPrices(ctx context.Context) ([]market_data.TickerPrice, error) {
	return s.tickers, s.tickerErr
}

func (s *stubListing) Ticker24hSymbols(ctx context.Context) ([]string, error) {
	return s.daily, s.dailyErr
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Universe = config.UniverseConfig{
		RefreshInterval: 24 * time.Hour,
		Backoff:         5 * time.Minute,
		QuoteAsset:      "USDT",
	}
	return cfg
}

func TestResolvePrimaryStrategyFiltersListing(t *testing.T) {
	src := &stubListing{infos: []models.SymbolInfo{
		{Symbol: "AAAUSDT", Status: "TRADING", QuoteAsset: "USDT"},
		{Symbol: "BBBUSDT", Status: "BREAK", QuoteAsset: "USDT"},   // не торгуется
		{Symbol: "CCCBTC", Status: "TRADING", QuoteAsset: "BTC"},   // чужой quote
		{Symbol: "DDDUPUSDT", Status: "TRADING", QuoteAsset: "USDT"}, // левередж-токен
		{Symbol: "AAAUSDT", Status: "TRADING", QuoteAsset: "USDT"}, // дубль
	}}
	r := NewResolver(testConfig(), src)

	syms, refreshed := r.Resolve(context.Background(), time.Now())
	if !refreshed {
		t.Fatal("expected refreshedNow=true")
	}
	if len(syms) != 1 || syms[0] != "AAAUSDT" {
		t.Fatalf("expected [AAAUSDT], got %v", syms)
	}
}

func TestResolveStickyCacheOnFailure(t *testing.T) {
	src := &stubListing{infos: []models.SymbolInfo{
		{Symbol: "AAAUSDT", Status: "TRADING", QuoteAsset: "USDT"},
		{Symbol: "BBBUSDT", Status: "TRADING", QuoteAsset: "USDT"},
	}}
	r := NewResolver(testConfig(), src)

	now := time.Now()
	if _, refreshed := r.Resolve(context.Background(), now); !refreshed {
		t.Fatal("initial refresh should succeed")
	}

	// все стратегии теперь пустые/с ошибками
	src.infos = nil
	src.tickerErr = errors.New("boom")
	src.dailyErr = errors.New("boom")

	after := now.Add(25 * time.Hour) // окно рефреша истекло
	syms, refreshed := r.Resolve(context.Background(), after)
	if refreshed {
		t.Fatal("failed refresh must not report refreshedNow")
	}
	if len(syms) != 2 {
		t.Fatalf("failed refresh must keep cache, got %v", syms)
	}

	// бэкофф: следующий вызов в пределах окна не ходит в сеть
	callsBefore := src.infoCalls
	r.Resolve(context.Background(), after.Add(time.Minute))
	if src.infoCalls != callsBefore {
		t.Fatal("call within backoff window must not hit the data source")
	}

	// после бэкоффа ходим снова
	r.Resolve(context.Background(), after.Add(6*time.Minute))
	if src.infoCalls != callsBefore+1 {
		t.Fatal("call after backoff window must retry the data source")
	}
}

func TestResolveFallbackChain(t *testing.T) {
	src := &stubListing{
		infosErr: errors.New("listing down"),
		tickers: []market_data.TickerPrice{
			{Symbol: "AAAUSDT", Price: "1.0"},
			{Symbol: "BBBBTC", Price: "2.0"},
		},
	}
	r := NewResolver(testConfig(), src)

	syms, refreshed := r.Resolve(context.Background(), time.Now())
	if !refreshed || len(syms) != 1 || syms[0] != "AAAUSDT" {
		t.Fatalf("expected fallback to ticker prices, got %v refreshed=%v", syms, refreshed)
	}
}

func TestResolveColdStartNoSeed(t *testing.T) {
	src := &stubListing{
		infosErr:  errors.New("down"),
		tickerErr: errors.New("down"),
		dailyErr:  errors.New("down"),
	}
	cfg := testConfig()
	cfg.Universe.SeedFile = "" // сид не настроен
	r := NewResolver(cfg, src)

	syms, refreshed := r.Resolve(context.Background(), time.Now())
	if refreshed || len(syms) != 0 {
		t.Fatalf("cold start without seed must return empty cache, got %v", syms)
	}
}
