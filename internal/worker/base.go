package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BaseWorker содержит общую логику периодических воркеров
type BaseWorker struct {
	name     string
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewBaseWorker создает новый BaseWorker
func NewBaseWorker(name string, interval time.Duration, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:     name,
		interval: interval,
		logger:   logger.With(zap.String("worker", name)),
		stopChan: make(chan struct{}),
	}
}

// Name возвращает имя воркера
func (w *BaseWorker) Name() string {
	return w.name
}

// Interval - период запуска
func (w *BaseWorker) Interval() time.Duration {
	return w.interval
}

// Stop останавливает воркер
func (w *BaseWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.logger.Info("Stopping worker")
	close(w.stopChan)
	w.stopped = true

	return nil
}

// IsStopped проверяет, остановлен ли воркер
func (w *BaseWorker) IsStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// StopChan возвращает канал остановки
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// Logger возвращает логгер
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// RunPeriodic вызывает tick каждые Interval до Stop или отмены ctx.
// Остановка через Stop не считается ошибкой.
func (w *BaseWorker) RunPeriodic(ctx context.Context, tick func(ctx context.Context)) error {
	if w.interval <= 0 {
		w.logger.Warn("Non-positive interval, worker disabled", zap.Duration("interval", w.interval))
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Worker started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-w.StopChan():
			w.logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			w.logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			tick(ctx)
		}
	}
}
