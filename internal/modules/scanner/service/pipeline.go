package service

import (
	"context"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"

	"pump_bot/internal/models"
	"pump_bot/internal/modules/config"
	"pump_bot/pkg/logger"
)

// Universe — поставщик рабочего списка символов.
type Universe interface {
	Resolve(ctx context.Context, now time.Time) ([]string, bool)
}

// Pipeline — цикл сканирования: раз в интервал прогоняет вселенную
// через Evaluator с ограниченной конкуррентностью. Тики не
// перекрываются: следующий начинается только после конца текущего.
type Pipeline struct {
	cfg       *config.Config
	universe  Universe
	macro     *MacroGate
	evaluator *Evaluator
	notify    Dispatcher
	status    *models.ScannerStatus
	openCount func() int
}

func NewPipeline(
	cfg *config.Config,
	universe Universe,
	macro *MacroGate,
	evaluator *Evaluator,
	notify Dispatcher,
	status *models.ScannerStatus,
	openCount func() int,
) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		universe:  universe,
		macro:     macro,
		evaluator: evaluator,
		notify:    notify,
		status:    status,
		openCount: openCount,
	}
}

func (p *Pipeline) Start(ctx context.Context) {
	// тестовый сигнал при старте: сразу видно, что доставка живая
	p.notify.Sendf(
		"✅ Сканер запущен\nИнтервал: %s, свечи %s, порог пампа %.1f%%, RSI ≥ %.0f",
		p.cfg.Scan.Interval, p.cfg.Scan.CandleInterval,
		p.cfg.Scan.PumpThreshold*100, p.cfg.Scan.RSIMin,
	)

	p.tick(ctx)

	ticker := time.NewTicker(p.cfg.Scan.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("scanner stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Pipeline) tick(ctx context.Context) {
	span := opentracing.StartSpan("scan_tick")
	defer span.Finish()
	ctx = opentracing.ContextWithSpan(ctx, span)

	now := time.Now()
	symbols, refreshed := p.universe.Resolve(ctx, now)
	span.SetTag("universe_size", len(symbols))
	if refreshed {
		logger.Info("tick: universe refreshed, %d symbols", len(symbols))
	}
	if len(symbols) == 0 {
		logger.Error("tick: empty universe, skipping")
		p.status.SetTick(0, p.openCount(), now)
		return
	}

	if ok, change, err := p.macro.Allow(ctx); err != nil {
		logger.Error("tick: macro gate: %v", err)
	} else if !ok {
		logger.Info("tick: macro %s moved %.2f%%, skipping", p.cfg.Macro.Symbol, change*100)
		span.SetTag("macro_skip", true)
		p.status.SetTick(len(symbols), p.openCount(), now)
		return
	}

	tally := p.fanOut(ctx, symbols, now)
	// остановка пришла посреди тика: статус и сводку уже не трогаем
	if ctx.Err() != nil {
		return
	}
	span.SetTag("signals", tally[OutcomeSignal])

	p.status.SetTick(len(symbols), p.openCount(), now)
	logger.Info("tick done: %d symbols, signals=%d no_pump=%d low_rsi=%d cooldown=%d risk_capped=%d errors=%d",
		len(symbols),
		tally[OutcomeSignal], tally[OutcomeNoPump], tally[OutcomeLowRSI],
		tally[OutcomeCooldown], tally[OutcomeRiskCapped],
		tally[OutcomeNoData]+tally[OutcomeBadPrice]+tally[OutcomePlanError],
	)
}

// fanOut — семафор на буферизованном канале, не пул воркеров:
// вселенная меняется от тика к тику, держать горутины незачем.
func (p *Pipeline) fanOut(ctx context.Context, symbols []string, now time.Time) map[Outcome]int {
	concurrency := p.cfg.Scan.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		tally = make(map[Outcome]int)
	)
	for _, symbol := range symbols {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(symbol string) {
			defer wg.Done()
			defer func() { <-sem }()

			res := p.evaluator.Evaluate(ctx, symbol, now)
			if res.Err != nil {
				logger.Error("eval %s (%s): %v", res.Symbol, res.Outcome, res.Err)
			}

			mu.Lock()
			tally[res.Outcome]++
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()
	return tally
}
