package config

import "errors"

var (
	// ErrInvalidTimeout возвращается, если клиентский таймаут не покрывает long polling
	ErrInvalidTimeout = errors.New("config: invalid timeout")
)
