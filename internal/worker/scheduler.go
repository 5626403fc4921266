package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler периодически запускает циклы опроса
// Работает в singleton-режиме gocron: следующий цикл не стартует, пока не закончился предыдущий
type Scheduler struct {
	runner    CycleRunner
	logger    Logger
	interval  time.Duration
	scheduler *gocron.Scheduler
	job       *gocron.Job
	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewScheduler создает новый экземпляр планировщика
func NewScheduler(runner CycleRunner, logger Logger, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		runner:    runner,
		logger:    logger,
		interval:  interval,
		scheduler: gocron.NewScheduler(time.UTC),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start регистрирует задачу опроса и запускает планировщик
// Первый цикл выполняется сразу
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job != nil {
		s.logger.Warn("Polling scheduler is already started")
		return nil
	}

	job, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.runCycle)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScheduleJob, err)
	}
	s.job = job

	s.logger.Info("Starting polling scheduler (interval: %s)", s.interval)
	s.scheduler.StartAsync()
	return nil
}

// Stop останавливает планировщик и отменяет контекст текущего цикла
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping polling scheduler")
	s.cancel()
	s.scheduler.Stop()
	s.logger.Info("Polling scheduler stopped")
}

// runCycle вызывается gocron по расписанию
func (s *Scheduler) runCycle() {
	if s.ctx.Err() != nil {
		return
	}
	s.runner.RunCycle(s.ctx)
}
