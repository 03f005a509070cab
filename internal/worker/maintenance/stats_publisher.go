package maintenance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/worker"
)

// Publisher публикует снимок статистики инстанса
type Publisher interface {
	Publish(ctx context.Context) error
}

// StatsPublisher периодически сохраняет статистику отрисовки в Redis,
// чтобы ее можно было прочитать с любого инстанса
type StatsPublisher struct {
	*worker.BaseWorker
	publisher Publisher
	timeout   time.Duration
}

func NewStatsPublisher(publisher Publisher, interval time.Duration, logger *zap.Logger) *StatsPublisher {
	return &StatsPublisher{
		BaseWorker: worker.NewBaseWorker("stats-publisher", interval, logger),
		publisher:  publisher,
		timeout:    5 * time.Second,
	}
}

// Start запускает воркер; перед выходом публикует последний снимок
func (p *StatsPublisher) Start(ctx context.Context) error {
	err := p.RunPeriodic(ctx, p.RunOnce)
	p.RunOnce(context.WithoutCancel(ctx))
	return err
}

// RunOnce - одна публикация; ошибка только логируется
func (p *StatsPublisher) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.publisher.Publish(ctx); err != nil {
		p.Logger().Warn("Failed to publish stats snapshot", zap.Error(err))
	}
}
