package postgres

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"pump_bot/internal/modules/config"
	"pump_bot/pkg/db"
	"pump_bot/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config) (db.TxManager, error) {
				// без DSN работаем без базы: статистика сигналов выключена
				if cfg.DB == "" {
					logger.Info("postgres: no DSN, signal stats disabled")
					return nil, nil
				}

				poolMaster, err := db.NewPool(ctx, db.PoolConfig{
					DSN: cfg.DB,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to create poolMaster: %w", err)
				}

				err = poolMaster.Ping(ctx)
				if err != nil {
					return nil, err
				}

				return db.NewPgTxManager(poolMaster), nil
			},
		),
	)
}
