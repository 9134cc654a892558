package main

import (
	"context"

	"go.uber.org/fx"

	"pump_bot/internal/modules/config"
	"pump_bot/internal/modules/health"
	market_data "pump_bot/internal/modules/market_data"
	"pump_bot/internal/modules/postgres"
	"pump_bot/internal/modules/scanner"
	"pump_bot/internal/modules/stats"
	telegram "pump_bot/internal/modules/telegram_bot"
	"pump_bot/internal/modules/universe"
	"pump_bot/pkg/logger"
	"pump_bot/pkg/tracing"
)

func main() {
	logger.SetServiceName("pump_bot")
	defer logger.Sync()

	app := fx.New(
		fx.Provide(
			// корневой контекст отменяется на OnStop: фоновые циклы
			// (сканер, websocket) завершаются кооперативно, не по os.Exit
			func(lc fx.Lifecycle) context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						cancel()
						return nil
					},
				})
				return ctx
			},
		),
		config.Module(),
		postgres.Module(),
		stats.Module(),
		market_data.Module(),
		universe.Module(),
		telegram.Module(),
		scanner.Module(),
		health.Module(),
		fx.Invoke(
			func(lc fx.Lifecycle, cfg *config.Config) error {
				if cfg.Jaeger.Host == "" {
					return nil
				}
				_, closer, err := tracing.InitTracer(tracing.Config{
					Host: cfg.Jaeger.Host,
					Port: cfg.Jaeger.Port,
				})
				if err != nil {
					return err
				}
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						closer()
						return nil
					},
				})
				return nil
			},
		),
	)
	app.Run()
}
