package repository

import (
	"context"
	"time"

	"github.com/boundary-resolver/internal/domain"
)

// StatsCacheRepository хранит снимки статистики отрисовки во внешнем кеше
type StatsCacheRepository interface {
	// SetStats сохраняет снимок статистики инстанса с TTL
	SetStats(ctx context.Context, instanceID string, stats *domain.RenderingStats, ttl time.Duration) error

	// GetStats получает снимок статистики инстанса, nil при промахе
	GetStats(ctx context.Context, instanceID string) (*domain.RenderingStats, error)
}
