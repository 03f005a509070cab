package maintenance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/worker"
)

// Purger - кеш с ленивым истечением, которому нужна периодическая очистка
type Purger interface {
	Purge() int
	Len() int
}

// CacheJanitor удаляет истекшие записи кеша результатов
type CacheJanitor struct {
	*worker.BaseWorker
	cache Purger
}

func NewCacheJanitor(cache Purger, interval time.Duration, logger *zap.Logger) *CacheJanitor {
	return &CacheJanitor{
		BaseWorker: worker.NewBaseWorker("cache-janitor", interval, logger),
		cache:      cache,
	}
}

// Start запускает воркер
func (j *CacheJanitor) Start(ctx context.Context) error {
	return j.RunPeriodic(ctx, j.RunOnce)
}

// RunOnce - один проход очистки
func (j *CacheJanitor) RunOnce(_ context.Context) {
	removed := j.cache.Purge()
	if removed > 0 {
		j.Logger().Debug("Expired cache entries purged",
			zap.Int("removed", removed),
			zap.Int("remaining", j.cache.Len()))
	}
}
