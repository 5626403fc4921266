package start_message

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UseCase обрабатывает команду /start
type UseCase struct {
	telegramService TelegramService
}

// New создаёт новый use case для обработки /start
func New(telegramService TelegramService) *UseCase {
	return &UseCase{
		telegramService: telegramService,
	}
}

// Execute выполняет обработку команды /start
// Возвращает ошибку с полным контекстом для логирования на уровне выше
func (uc *UseCase) Execute(ctx context.Context, from *tgbotapi.User, chatID int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("usecase.SendStartMessage: %w", err)
	}

	if err := uc.telegramService.SendWelcomeMessage(chatID, userName(from)); err != nil {
		return fmt.Errorf("usecase.SendStartMessage: send welcome message to chat %d: %w", chatID, err)
	}

	return nil
}

// userName формирует имя пользователя для обращения
func userName(from *tgbotapi.User) string {
	if from == nil {
		return ""
	}

	name := from.FirstName
	if from.LastName != "" {
		name += " " + from.LastName
	}
	return name
}
