package worker

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-QuizBot/internal/domain"
)

const (
	// DefaultLimit максимальный размер пачки обновлений по умолчанию
	DefaultLimit = 100

	// DefaultTimeout long polling таймаут по умолчанию (0 - сервер отвечает сразу)
	DefaultTimeout = 0
)

// Poller выполняет циклы получения и раздачи обновлений
//
// RunCycle и сеттеры не должны вызываться конкурентно: состояние
// (lastID, limit, timeout, workers) не защищено блокировками и
// меняется только между циклами.
type Poller struct {
	fetcher UpdatesFetcher
	handler UpdateHandler
	logger  Logger
	metrics Metrics

	lastID  int64 // offset следующего запроса, не убывает
	limit   int   // максимальный размер пачки
	timeout int   // long polling таймаут в секундах
	workers int   // ограничение на число одновременных обработчиков (<= 0 - без ограничения)
}

// NewPoller создает новый экземпляр Poller
func NewPoller(fetcher UpdatesFetcher, handler UpdateHandler, logger Logger, metrics Metrics) *Poller {
	return &Poller{
		fetcher: fetcher,
		handler: handler,
		logger:  logger,
		metrics: metrics,
		limit:   DefaultLimit,
		timeout: DefaultTimeout,
	}
}

// RunCycle получает пачку обновлений, сдвигает offset и раздаёт обновления обработчику
// Возвращается после завершения всех обработчиков этого цикла. Ошибок не возвращает
func (p *Poller) RunCycle(ctx context.Context) {
	start := time.Now()
	cycleID := uuid.NewString()

	p.logger.Info("Fetching updates (cycle=%s, offset=%d, limit=%d, timeout=%d)", cycleID, p.lastID, p.limit, p.timeout)

	updates := p.fetcher.GetUpdates(ctx, p.lastID, p.limit, p.timeout)

	// Для пустой пачки lastID-1+1 оставляет offset без изменений,
	// пачка из одних устаревших обновлений offset не уменьшает
	maxID, ok := domain.MaxUpdateID(updates)
	if !ok {
		maxID = p.lastID - 1
	}
	if next := maxID + 1; next > p.lastID {
		p.lastID = next
	}

	if len(updates) > 0 {
		p.logger.Info("Dispatching %d updates (cycle=%s, next offset=%d)", len(updates), cycleID, p.lastID)
		p.dispatch(ctx, cycleID, updates)
	}

	if p.metrics != nil {
		p.metrics.ObserveCycle(time.Since(start), len(updates), p.lastID)
	}
}

// dispatch раздаёт обновления обработчику конкурентно и ждёт завершения всех
func (p *Poller) dispatch(ctx context.Context, cycleID string, updates []domain.Update) {
	var g errgroup.Group
	if p.workers > 0 {
		g.SetLimit(p.workers)
	}

	for _, update := range updates {
		update := update
		g.Go(func() error {
			p.process(ctx, cycleID, update)
			return nil
		})
	}

	_ = g.Wait()
}

// process вызывает обработчик для одного обновления
// Паника обработчика не должна ронять процесс и влиять на offset
func (p *Poller) process(ctx context.Context, cycleID string, update domain.Update) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Update handler panicked on update %d (cycle=%s): %v\n%s", update.ID, cycleID, r, debug.Stack())
			if p.metrics != nil {
				p.metrics.IncHandlerPanic()
			}
		}
	}()

	p.handler.ProcessUpdate(ctx, update)
}

// LastID возвращает offset, который будет запрошен в следующем цикле
func (p *Poller) LastID() int64 {
	return p.lastID
}

// SetLastID устанавливает начальный offset
func (p *Poller) SetLastID(id int64) {
	p.lastID = id
}

// Limit возвращает максимальный размер пачки
func (p *Poller) Limit() int {
	return p.limit
}

// SetLimit устанавливает максимальный размер пачки
// Применяется со следующего цикла
func (p *Poller) SetLimit(limit int) {
	p.limit = limit
}

// Timeout возвращает long polling таймаут в секундах
func (p *Poller) Timeout() int {
	return p.timeout
}

// SetTimeout устанавливает long polling таймаут в секундах
// Применяется со следующего цикла
func (p *Poller) SetTimeout(timeout int) {
	p.timeout = timeout
}

// Workers возвращает ограничение на число одновременных обработчиков
func (p *Poller) Workers() int {
	return p.workers
}

// SetWorkers устанавливает ограничение на число одновременных обработчиков
func (p *Poller) SetWorkers(workers int) {
	p.workers = workers
}
