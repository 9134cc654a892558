package scanner

import (
	"context"

	"go.uber.org/fx"

	"pump_bot/internal/charts"
	"pump_bot/internal/models"
	"pump_bot/internal/modules/config"
	market_data "pump_bot/internal/modules/market_data/service"
	"pump_bot/internal/modules/scanner/service"
	stats "pump_bot/internal/modules/stats/service"
	telegram "pump_bot/internal/modules/telegram_bot/service"
	universe "pump_bot/internal/modules/universe/service"
	"pump_bot/internal/plan"
	"pump_bot/internal/risk"
)

func Module() fx.Option {
	return fx.Module("scanner",
		fx.Provide(
			models.NewScannerStatus,
			charts.NewRenderer,

			// узкие границы: сканер видит интерфейсы, не конкретные сервисы
			func(c *market_data.Client) service.MarketData { return c },
			func(r *universe.Resolver) service.Universe { return r },
			func(s *stats.Store) service.Stats { return s },
			func(r *charts.Renderer) service.Renderer { return r },
			func(n telegram.Notifier) service.Dispatcher { return n },

			func(cfg *config.Config) *risk.Ledger {
				return risk.NewLedger(risk.LedgerConfig{
					OpenTradeTTL:     cfg.Risk.OpenTradeTTL,
					MaxOpenTotal:     cfg.Risk.MaxOpenTotal,
					MaxOpenPerSymbol: cfg.Risk.MaxOpenPerSymbol,
					MarginCapBps:     cfg.Risk.MarginCapBps,
					DepositUSD:       cfg.Risk.DepositUSD,
				})
			},
			func(cfg *config.Config) *risk.Cooldown {
				return risk.NewCooldown(cfg.Scan.Cooldown)
			},
			func(cfg *config.Config) *plan.Calculator {
				return plan.NewCalculator(plan.Config{
					EntryMode:        cfg.Plan.EntryMode,
					StopMode:         cfg.Plan.StopMode,
					EntryOffsetRatio: cfg.Plan.EntryOffsetRatio,
					StopBufferRatio:  cfg.Plan.StopBufferRatio,
					RRMultiple:       cfg.Plan.RRMultiple,
					DepositUSD:       cfg.Risk.DepositUSD,
					RiskBps:          cfg.Risk.RiskBps,
					RiskBpsFallback:  cfg.Risk.RiskBpsFallback,
					MinNotionalUSD:   cfg.Risk.MinNotionalUSD,
					ATRPeriod:        cfg.Plan.ATRPeriod,
					ATRMultiplier:    cfg.Plan.ATRMultiplier,
				})
			},

			func(cfg *config.Config, market service.MarketData) *service.MacroGate {
				return service.NewMacroGate(cfg.Macro, market)
			},
			func(
				cfg *config.Config,
				market service.MarketData,
				planner *plan.Calculator,
				cooldown *risk.Cooldown,
				ledger *risk.Ledger,
				st service.Stats,
				renderer service.Renderer,
				notify service.Dispatcher,
				status *models.ScannerStatus,
			) *service.Evaluator {
				return service.NewEvaluator(
					cfg.Scan, cfg.Universe.QuoteAsset,
					market, planner, cooldown, ledger, st, renderer, notify, status,
				)
			},
			func(
				cfg *config.Config,
				uni service.Universe,
				macro *service.MacroGate,
				evaluator *service.Evaluator,
				notify service.Dispatcher,
				status *models.ScannerStatus,
				ledger *risk.Ledger,
			) *service.Pipeline {
				return service.NewPipeline(cfg, uni, macro, evaluator, notify, status, ledger.OpenCount)
			},
		),
		fx.Invoke(
			func(lc fx.Lifecycle, p *service.Pipeline, ctx context.Context) {
				runCtx, cancel := context.WithCancel(ctx)
				done := make(chan struct{})
				lc.Append(fx.Hook{
					OnStart: func(_ context.Context) error {
						go func() {
							defer close(done)
							p.Start(runCtx)
						}()
						return nil
					},
					// гасим цикл и дожидаемся текущего тика, чтобы во время
					// остановки ничего не отправлялось и леджер не мутировал
					OnStop: func(stopCtx context.Context) error {
						cancel()
						select {
						case <-done:
							return nil
						case <-stopCtx.Done():
							return stopCtx.Err()
						}
					},
				})
			},
		),
	)
}
