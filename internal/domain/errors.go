package domain

import "errors"

var (
	// ErrMissingUpdateID возвращается, если в элементе result нет update_id
	ErrMissingUpdateID = errors.New("domain: update_id is missing")
)
