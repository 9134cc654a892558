package telegram

import (
	"context"

	"go.uber.org/fx"

	"pump_bot/internal/models"
	"pump_bot/internal/modules/config"
	"pump_bot/internal/modules/telegram_bot/service"
	"pump_bot/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("telegram",
		// Notifier: если TELEGRAM_* нет — используем stdout
		fx.Provide(
			func(cfg *config.Config, status *models.ScannerStatus) service.Notifier {
				if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
					tg, err := service.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, status)
					if err == nil {
						return tg
					}
					logger.Error("telegram init: %v, falling back to stdout", err)
				}
				return service.NewStdout()
			},
		),
		// Long-polling команд только для реального телеграма
		fx.Invoke(
			func(lc fx.Lifecycle, n service.Notifier, ctx context.Context) {
				tg, ok := n.(*service.Telegram)
				if !ok {
					return
				}
				lc.Append(fx.Hook{
					OnStart: func(_ context.Context) error {
						return tg.Start(ctx)
					},
					OnStop: func(ctx context.Context) error {
						tg.Stop()
						return nil
					},
				})
			},
		),
	)
}
