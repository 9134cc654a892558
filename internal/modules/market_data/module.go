package market_data

import (
	"context"

	"go.uber.org/fx"

	"pump_bot/internal/modules/config"
	"pump_bot/internal/modules/market_data/service"
)

func Module() fx.Option {
	return fx.Module("market_data",
		fx.Provide(
			service.NewClient,
		),
		// стрим последней цены макро-символа для фильтра тика
		fx.Invoke(func(lc fx.Lifecycle, c *service.Client, cfg *config.Config, ctx context.Context) {
			// макро-фильтр выключен — стрим не нужен
			if cfg.Macro.Symbol == "" {
				return
			}
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go c.WatchPrice(ctx, cfg.Macro.Symbol)
					return nil
				},
			})
		}),
	)
}
