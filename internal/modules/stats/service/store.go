package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"pump_bot/internal/models"
	"pump_bot/pkg/db"
)

// Store — персистентная статистика сигналов.
// Схема:
//
//	CREATE TABLE signals (
//	    id         bigserial PRIMARY KEY,
//	    symbol     text        NOT NULL,
//	    price      double precision NOT NULL,
//	    payload    jsonb       NOT NULL,
//	    created_at timestamptz NOT NULL
//	);
//	CREATE INDEX signals_symbol_idx ON signals (symbol);
//
// Недоступная база не должна останавливать сканер: без DSN tm == nil
// и сторадж просто выключен.
type Store struct {
	tm db.TxManager
}

func NewStore(tm db.TxManager) *Store {
	return &Store{tm: tm}
}

func (s *Store) Enabled() bool {
	return s != nil && s.tm != nil
}

// BySymbol — read-only агрегат: сколько сигналов по символу уже было.
func (s *Store) BySymbol(ctx context.Context, symbol string) (models.SignalStats, bool, error) {
	if !s.Enabled() {
		return models.SignalStats{}, false, nil
	}

	var count int
	var last time.Time
	err := s.tm.Conn().QueryRow(ctx,
		`SELECT count(*), coalesce(max(created_at), to_timestamp(0)) FROM signals WHERE symbol = $1`,
		symbol,
	).Scan(&count, &last)
	if err != nil {
		return models.SignalStats{}, false, errors.Wrap(err, "stats.BySymbol")
	}
	if count == 0 {
		return models.SignalStats{Symbol: symbol}, false, nil
	}
	return models.SignalStats{Symbol: symbol, SignalCount: count, LastSignalAt: last}, true, nil
}

// RecordSignal дописывает отправленный сигнал. Окно свечей не сохраняем.
func (s *Store) RecordSignal(ctx context.Context, ev *models.SignalEvent) error {
	if !s.Enabled() {
		return nil
	}

	payload, err := sonic.Marshal(struct {
		Plan      models.TradePlan `json:"plan"`
		ChangePct float64          `json:"change_pct"`
		RSI       float64          `json:"rsi"`
	}{ev.Plan, ev.ChangePct, ev.RSI})
	if err != nil {
		return errors.Wrap(err, "stats.RecordSignal marshal")
	}

	err = s.tm.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx,
			`INSERT INTO signals (symbol, price, payload, created_at) VALUES ($1, $2, $3, $4)`,
			ev.Symbol, ev.Price, payload, ev.CreatedAt,
		)
		return err
	})
	return errors.Wrap(err, "stats.RecordSignal")
}
