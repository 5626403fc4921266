package worker

import (
	"context"

	"github.com/m04kA/SMC-QuizBot/internal/domain"
)

const commandStart = "/start"

// CommandHandler обрабатывает входящие обновления бота
// Реализует UpdateHandler, вызывается Poller'ом конкурентно
type CommandHandler struct {
	startMessageUseCase StartMessageUseCase
	logger              Logger
}

// NewCommandHandler создаёт новый обработчик команд
func NewCommandHandler(startMessageUseCase StartMessageUseCase, logger Logger) *CommandHandler {
	return &CommandHandler{
		startMessageUseCase: startMessageUseCase,
		logger:              logger,
	}
}

// ProcessUpdate обрабатывает одно обновление от Bot API
func (h *CommandHandler) ProcessUpdate(ctx context.Context, update domain.Update) {
	tgUpdate, err := update.Telegram()
	if err != nil {
		h.logger.Warn("Failed to decode update %d: %v", update.ID, err)
		return
	}

	// Обрабатываем только текстовые сообщения
	if tgUpdate.Message == nil || tgUpdate.Message.Text == "" || tgUpdate.Message.Chat == nil {
		return
	}

	// Обрабатываем только команду /start
	if tgUpdate.Message.Text != commandStart {
		return
	}

	chatID := tgUpdate.Message.Chat.ID

	h.logger.Info("Received /start command in chat %d (update %d)", chatID, update.ID)

	if err := h.startMessageUseCase.Execute(ctx, tgUpdate.Message.From, chatID); err != nil {
		h.logger.Error("Failed to handle /start command in chat %d: %v", chatID, err)
		return
	}

	h.logger.Info("Successfully processed /start command in chat %d", chatID)
}
