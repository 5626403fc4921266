package domain

import (
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Update событие, полученное от Bot API через getUpdates
// Ядро опроса смотрит только на ID, остальное содержимое передаётся обработчику как есть
type Update struct {
	ID      int64           // Идентификатор обновления (update_id), строго возрастает на стороне сервера
	Payload json.RawMessage // Исходный JSON элемента result
}

// NewUpdate создает обновление с указанным ID и сырым содержимым
func NewUpdate(id int64, payload json.RawMessage) Update {
	return Update{
		ID:      id,
		Payload: payload,
	}
}

// UnmarshalJSON читает update_id и сохраняет весь элемент в Payload
func (u *Update) UnmarshalJSON(data []byte) error {
	var head struct {
		ID *int64 `json:"update_id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("domain.Update: %w", err)
	}
	if head.ID == nil {
		return ErrMissingUpdateID
	}

	u.ID = *head.ID
	u.Payload = append(json.RawMessage(nil), data...)
	return nil
}

// Telegram декодирует содержимое в типизированную модель Telegram
func (u Update) Telegram() (tgbotapi.Update, error) {
	var update tgbotapi.Update
	if len(u.Payload) == 0 {
		update.UpdateID = int(u.ID)
		return update, nil
	}
	if err := json.Unmarshal(u.Payload, &update); err != nil {
		return tgbotapi.Update{}, fmt.Errorf("domain.Update: decode telegram update %d: %w", u.ID, err)
	}
	return update, nil
}

// MaxUpdateID возвращает максимальный ID в пачке
// Порядок элементов не предполагается отсортированным
func MaxUpdateID(updates []Update) (int64, bool) {
	if len(updates) == 0 {
		return 0, false
	}

	maxID := updates[0].ID
	for _, update := range updates[1:] {
		if update.ID > maxID {
			maxID = update.ID
		}
	}
	return maxID, true
}
