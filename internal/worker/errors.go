package worker

import "errors"

var (
	// ErrScheduleJob возвращается, если не удалось зарегистрировать задачу опроса
	ErrScheduleJob = errors.New("worker: failed to schedule polling job")
)
