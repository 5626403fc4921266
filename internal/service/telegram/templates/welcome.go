package templates

import "fmt"

const (
	// WelcomeMessageText приветственное сообщение при команде /start
	WelcomeMessageText = `Привет, %s!

Я математический квиз-бот. Отвечайте на примеры сообщением с числом.`

	// DefaultUserName обращение, если имя пользователя неизвестно
	DefaultUserName = "друг"
)

// GetWelcomeMessageText возвращает приветствие с подставленным именем
func GetWelcomeMessageText(name string) string {
	if name == "" {
		name = DefaultUserName
	}
	return fmt.Sprintf(WelcomeMessageText, name)
}
