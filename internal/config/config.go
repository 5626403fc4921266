package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	// DefaultTelegramAPIURL базовый URL Bot API, токен дописывается сразу после него
	DefaultTelegramAPIURL = "https://api.telegram.org/bot"
)

// Config представляет полную конфигурацию приложения
type Config struct {
	Logs     LogsConfig     `toml:"logs"`
	Server   ServerConfig   `toml:"server"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Telegram TelegramConfig `toml:"telegram"`
	Poller   PollerConfig   `toml:"poller"`
}

// LogsConfig содержит настройки логирования
type LogsConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
	File  string `toml:"file" validate:"required"`
}

// ServerConfig содержит настройки служебного HTTP сервера (health, metrics)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"gte=1,lte=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"gte=0"`
	WriteTimeout    int `toml:"write_timeout" validate:"gte=0"`
	IdleTimeout     int `toml:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"gte=0"`
}

// MetricsConfig содержит настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path" validate:"startswith=/"`
	ServiceName string `toml:"service_name" validate:"required"`
}

// TelegramConfig содержит настройки Bot API
type TelegramConfig struct {
	APIURL         string `toml:"api_url" validate:"required,url"`
	BotToken       string `toml:"bot_token" validate:"required"`
	RequestTimeout int    `toml:"request_timeout" validate:"gte=1"` // клиентский таймаут HTTP в секундах
}

// PollerConfig содержит настройки цикла опроса
type PollerConfig struct {
	Limit      int `toml:"limit" validate:"gte=1,lte=100"` // максимальный размер пачки
	Timeout    int `toml:"timeout" validate:"gte=0"`       // long polling таймаут в секундах (0 - без ожидания)
	IntervalMs int `toml:"interval_ms" validate:"gte=1"`   // пауза между запусками циклов
	Workers    int `toml:"workers" validate:"gte=0"`       // число одновременных обработчиков (0 - без ограничения)
}

// Load загружает конфигурацию из TOML файла с поддержкой переменных окружения
func Load(path string) (*Config, error) {
	var cfg Config

	// Читаем TOML файл
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	// Переопределяем значения из переменных окружения (если они установлены)
	overrideFromEnv(&cfg)

	setDefaults(&cfg)

	// Валидация конфигурации
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// overrideFromEnv переопределяет значения из переменных окружения
func overrideFromEnv(cfg *Config) {
	// Server
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}

	// Logs
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Logs.File = v
	}

	// Metrics
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}
	if v := os.Getenv("METRICS_SERVICE_NAME"); v != "" {
		cfg.Metrics.ServiceName = v
	}

	// Telegram
	if v := os.Getenv("TELEGRAM_API_URL"); v != "" {
		cfg.Telegram.APIURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_REQUEST_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			cfg.Telegram.RequestTimeout = timeout
		}
	}

	// Poller
	if v := os.Getenv("POLLER_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			cfg.Poller.Limit = limit
		}
	}
	if v := os.Getenv("POLLER_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			cfg.Poller.Timeout = timeout
		}
	}
	if v := os.Getenv("POLLER_INTERVAL_MS"); v != "" {
		if interval, err := strconv.Atoi(v); err == nil {
			cfg.Poller.IntervalMs = interval
		}
	}
	if v := os.Getenv("POLLER_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			cfg.Poller.Workers = workers
		}
	}
}

// setDefaults заполняет незаданные значения
func setDefaults(cfg *Config) {
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Logs.File == "" {
		cfg.Logs.File = "./logs/app.log"
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "quizbot"
	}

	if cfg.Telegram.APIURL == "" {
		cfg.Telegram.APIURL = DefaultTelegramAPIURL
	}

	// Timeout по умолчанию 0: сервер отвечает сразу
	if cfg.Poller.Limit == 0 {
		cfg.Poller.Limit = 100
	}
	if cfg.Poller.IntervalMs == 0 {
		cfg.Poller.IntervalMs = 1000
	}

	// Клиентский таймаут должен покрывать long polling ожидание на сервере
	if cfg.Telegram.RequestTimeout == 0 {
		cfg.Telegram.RequestTimeout = cfg.Poller.Timeout + 10
	}
}

// validate проверяет корректность конфигурации
func validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return err
	}

	if cfg.Telegram.RequestTimeout <= cfg.Poller.Timeout {
		return fmt.Errorf("%w: request_timeout (%ds) must exceed poller timeout (%ds)",
			ErrInvalidTimeout, cfg.Telegram.RequestTimeout, cfg.Poller.Timeout)
	}

	return nil
}
