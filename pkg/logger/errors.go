package logger

import "errors"

var (
	// ErrInvalidLevel возвращается при неизвестном уровне логирования
	ErrInvalidLevel = errors.New("logger: invalid log level")
)
