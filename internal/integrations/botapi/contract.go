package botapi

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для учёта неудачных запросов
type Metrics interface {
	IncFetchFailure(reason string)
}
