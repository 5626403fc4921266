package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-QuizBot/internal/api/handlers"
	"github.com/m04kA/SMC-QuizBot/internal/api/handlers/health"
	"github.com/m04kA/SMC-QuizBot/internal/config"
	"github.com/m04kA/SMC-QuizBot/internal/integrations/botapi"
	"github.com/m04kA/SMC-QuizBot/internal/service/telegram"
	"github.com/m04kA/SMC-QuizBot/internal/usecase/start_message"
	"github.com/m04kA/SMC-QuizBot/internal/worker"
	"github.com/m04kA/SMC-QuizBot/pkg/logger"
	"github.com/m04kA/SMC-QuizBot/pkg/metrics"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(serveConfigPath)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "config.toml", "path to config file")
	rootCmd.AddCommand(serveCmd)
}

func serve(configPath string) error {
	startedAt := time.Now()

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-QuizBot %s...", version)
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Клиент getUpdates
	updatesClient := botapi.NewClient(
		cfg.Telegram.APIURL,
		cfg.Telegram.BotToken,
		time.Duration(cfg.Telegram.RequestTimeout)*time.Second,
		log,
		metricsCollector,
	)
	log.Info("Bot API client initialized (url=%s)", cfg.Telegram.APIURL)

	// Telegram Bot API для отправки ответов
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(cfg.Telegram.BotToken, cfg.Telegram.APIURL+"%s/%s")
	if err != nil {
		return fmt.Errorf("failed to initialize Telegram Bot API: %w", err)
	}
	log.Info("Telegram Bot API initialized (@%s)", bot.Self.UserName)

	telegramSvc := telegram.NewService(bot)
	startMessageUC := start_message.New(telegramSvc)
	commandHandler := worker.NewCommandHandler(startMessageUC, log)

	// Poller и планировщик циклов
	poller := worker.NewPoller(updatesClient, commandHandler, log, metricsCollector)
	poller.SetLimit(cfg.Poller.Limit)
	poller.SetTimeout(cfg.Poller.Timeout)
	poller.SetWorkers(cfg.Poller.Workers)

	scheduler := worker.NewScheduler(poller, log, time.Duration(cfg.Poller.IntervalMs)*time.Millisecond)
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start polling scheduler: %w", err)
	}
	log.Info("Long polling started (limit=%d, timeout=%ds, workers=%d)",
		cfg.Poller.Limit, cfg.Poller.Timeout, cfg.Poller.Workers)

	// Служебный HTTP сервер
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	r := newRouter(health.NewHandler(startedAt), cfg.Metrics.Path, metricsHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")

	// Останавливаем опрос ПЕРЕД сервером
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Stopped gracefully")
	return nil
}

// newRouter собирает служебный роутер; metricsHandler == nil отключает метрики
func newRouter(healthHandler *health.Handler, metricsPath string, metricsHandler http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	r.HandleFunc("/health", healthHandler.Handle).Methods(http.MethodGet)
	if metricsHandler != nil {
		r.Handle(metricsPath, metricsHandler).Methods(http.MethodGet)
	}

	return r
}
