package botapi

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("botapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Bot API
	ErrInvalidResponse = errors.New("botapi client: invalid response")
)
