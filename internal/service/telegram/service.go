package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-QuizBot/internal/service/telegram/templates"
)

// Service сервис для отправки сообщений через Telegram Bot API
type Service struct {
	bot BotAPI
}

// NewService создает новый экземпляр Telegram сервиса
func NewService(bot BotAPI) *Service {
	return &Service{
		bot: bot,
	}
}

// SendText отправляет текстовое сообщение без форматирования
func (s *Service) SendText(chatID int64, text string) error {
	if chatID == 0 {
		return ErrInvalidChatID
	}

	if text == "" {
		return ErrEmptyMessage
	}

	_, err := s.bot.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendMessage, err)
	}

	return nil
}

// SendWelcomeMessage отправляет приветственное сообщение при команде /start
func (s *Service) SendWelcomeMessage(chatID int64, name string) error {
	return s.SendText(chatID, templates.GetWelcomeMessageText(name))
}
