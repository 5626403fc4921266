package worker

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-QuizBot/internal/domain"
)

// UpdatesFetcher интерфейс для получения пачки обновлений от Bot API
// Реализация сама сводит любые ошибки к пустому результату
type UpdatesFetcher interface {
	GetUpdates(ctx context.Context, offset int64, limit, timeout int) []domain.Update
}

// UpdateHandler обрабатывает одно обновление
// Вызывается конкурентно, порядок вызовов не определён
type UpdateHandler interface {
	ProcessUpdate(ctx context.Context, update domain.Update)
}

// UpdateHandlerFunc адаптер функции к UpdateHandler
type UpdateHandlerFunc func(ctx context.Context, update domain.Update)

// ProcessUpdate вызывает f(ctx, update)
func (f UpdateHandlerFunc) ProcessUpdate(ctx context.Context, update domain.Update) {
	f(ctx, update)
}

// CycleRunner интерфейс для выполнения одного цикла опроса
type CycleRunner interface {
	RunCycle(ctx context.Context)
}

// StartMessageUseCase интерфейс для обработки команды /start
type StartMessageUseCase interface {
	Execute(ctx context.Context, from *tgbotapi.User, chatID int64) error
}

// Metrics интерфейс для метрик цикла опроса
type Metrics interface {
	ObserveCycle(duration time.Duration, updates int, offset int64)
	IncHandlerPanic()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
