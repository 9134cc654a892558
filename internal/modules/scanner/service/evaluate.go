package service

import (
	"context"
	"time"

	"pump_bot/internal/models"
	"pump_bot/internal/modules/config"
	"pump_bot/internal/plan"
	"pump_bot/internal/risk"
	"pump_bot/internal/ta"
	"pump_bot/pkg/logger"
)

// Исход оценки одного символа за тик. Не-сигнальные исходы — норма,
// пайплайн только считает их в сводке.
type Outcome string

const (
	OutcomeSignal     Outcome = "signal"
	OutcomeNoData     Outcome = "no_data"
	OutcomeBadPrice   Outcome = "bad_price"
	OutcomeNoPump     Outcome = "no_pump"
	OutcomeLowRSI     Outcome = "low_rsi"
	OutcomePlanError  Outcome = "plan_error"
	OutcomeCooldown   Outcome = "cooldown"
	OutcomeRiskCapped Outcome = "risk_capped"
)

type EvalResult struct {
	Symbol  string
	Outcome Outcome
	Err     error
}

// MarketData — что сканеру нужно от биржевого клиента.
type MarketData interface {
	Klines(ctx context.Context, symbol, interval string, limit int) (models.Series, error)
	LastPrice(symbol string) float64
}

// Renderer рисует график сигнала; ошибка рендера деградирует до текста.
type Renderer interface {
	Render(symbol, interval string, candles models.Series, levels []models.SRLevel) ([]byte, error)
}

// Stats — персистентная история сигналов, опциональная.
type Stats interface {
	Enabled() bool
	BySymbol(ctx context.Context, symbol string) (models.SignalStats, bool, error)
	RecordSignal(ctx context.Context, ev *models.SignalEvent) error
}

// Dispatcher — граница отправки. Совпадает с нотифайером телеграма.
type Dispatcher interface {
	Send(msg string)
	Sendf(format string, args ...any)
	SendPhoto(caption string, png []byte)
}

// Evaluator прогоняет один символ через весь конвейер:
// свечи -> памп -> RSI -> уровни -> план -> кулдаун -> риск -> отправка.
type Evaluator struct {
	cfg     config.ScanConfig
	quote   string
	market  MarketData
	planner *plan.Calculator

	cooldown *risk.Cooldown
	ledger   *risk.Ledger

	stats    Stats
	renderer Renderer
	notify   Dispatcher
	status   *models.ScannerStatus
}

func NewEvaluator(
	cfg config.ScanConfig,
	quote string,
	market MarketData,
	planner *plan.Calculator,
	cooldown *risk.Cooldown,
	ledger *risk.Ledger,
	stats Stats,
	renderer Renderer,
	notify Dispatcher,
	status *models.ScannerStatus,
) *Evaluator {
	return &Evaluator{
		cfg:      cfg,
		quote:    quote,
		market:   market,
		planner:  planner,
		cooldown: cooldown,
		ledger:   ledger,
		stats:    stats,
		renderer: renderer,
		notify:   notify,
		status:   status,
	}
}

// Evaluate никогда не паникует и не роняет тик: любой сбой по символу —
// это просто его исход.
func (e *Evaluator) Evaluate(ctx context.Context, symbol string, now time.Time) EvalResult {
	candles, err := e.market.Klines(ctx, symbol, e.cfg.CandleInterval, e.cfg.CandleLimit)
	if err != nil {
		return EvalResult{Symbol: symbol, Outcome: OutcomeNoData, Err: err}
	}
	if len(candles) < 2 {
		return EvalResult{Symbol: symbol, Outcome: OutcomeNoData}
	}

	closes := candles.Closes()
	last := closes[len(closes)-1]
	prev := closes[len(closes)-2]
	if last <= 0 || prev <= 0 {
		return EvalResult{Symbol: symbol, Outcome: OutcomeBadPrice}
	}

	change := (last - prev) / prev
	if change < e.cfg.PumpThreshold {
		return EvalResult{Symbol: symbol, Outcome: OutcomeNoPump}
	}

	rsi, ok := ta.RSI(closes, e.cfg.RSIPeriod)
	if !ok {
		return EvalResult{Symbol: symbol, Outcome: OutcomeNoData}
	}
	if rsi < e.cfg.RSIMin {
		return EvalResult{Symbol: symbol, Outcome: OutcomeLowRSI}
	}

	highs := candles.Highs()
	lows := candles.Lows()
	pivots := ta.Pivots(highs, lows, e.cfg.PivotLookback)
	levels := ta.ClusterLevels(pivots, e.cfg.ClusterTol, e.cfg.MaxLevels)

	tradePlan, err := e.planner.Build(highs, lows, closes, levels)
	if err != nil {
		return EvalResult{Symbol: symbol, Outcome: OutcomePlanError, Err: err}
	}

	// кулдаун раньше риска: повторный сигнал по символу режем в любом случае
	if !e.cooldown.TryMark(symbol, now) {
		return EvalResult{Symbol: symbol, Outcome: OutcomeCooldown}
	}
	// допуск по риску — последний шаг перед отправкой
	if !e.ledger.TryAdmit(symbol, tradePlan.NotionalUSD, now) {
		return EvalResult{Symbol: symbol, Outcome: OutcomeRiskCapped}
	}

	ev := &models.SignalEvent{
		Symbol:    symbol,
		Price:     last,
		ChangePct: change * 100,
		RSI:       rsi,
		Plan:      tradePlan,
		Candles:   candles,
		Levels:    levels,
		CreatedAt: now,
	}
	if st, found, err := e.stats.BySymbol(ctx, symbol); err != nil {
		logger.Error("stats %s: %v", symbol, err)
	} else if found {
		ev.PriorSignals = st.SignalCount
	}

	e.dispatch(ev)

	if err := e.stats.RecordSignal(ctx, ev); err != nil {
		logger.Error("record signal %s: %v", symbol, err)
	}
	e.status.IncSignals()

	return EvalResult{Symbol: symbol, Outcome: OutcomeSignal}
}

func (e *Evaluator) dispatch(ev *models.SignalEvent) {
	text := FormatSignal(ev, e.quote, e.cfg.CandleInterval)

	png, err := e.renderer.Render(ev.Symbol, e.cfg.CandleInterval, ev.Candles, ev.Levels)
	if err != nil {
		logger.Error("chart %s: %v", ev.Symbol, err)
		e.notify.Send(text)
		return
	}
	e.notify.SendPhoto(text, png)
}
