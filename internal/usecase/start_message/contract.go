package start_message

// TelegramService интерфейс для работы с Telegram Bot API
type TelegramService interface {
	SendWelcomeMessage(chatID int64, name string) error
}
