package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/domain/repository"
)

const statsKeyPrefix = "stats:rendering:"

type statsRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewStatsRepository(client *redis.Client, logger *zap.Logger) repository.StatsCacheRepository {
	return &statsRepository{
		client: client,
		logger: logger,
	}
}

func statsKey(instanceID string) string {
	return statsKeyPrefix + instanceID
}

// SetStats сохраняет снимок статистики инстанса
func (r *statsRepository) SetStats(ctx context.Context, instanceID string, stats *domain.RenderingStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		r.logger.Error("Failed to marshal stats", zap.Error(err))
		return fmt.Errorf("marshal stats: %w", err)
	}

	key := statsKey(instanceID)
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Error("Failed to set stats", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Stats snapshot stored", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// GetStats получает снимок статистики инстанса
func (r *statsRepository) GetStats(ctx context.Context, instanceID string) (*domain.RenderingStats, error) {
	key := statsKey(instanceID)
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get stats", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var stats domain.RenderingStats
	if err := json.Unmarshal(data, &stats); err != nil {
		r.logger.Error("Failed to unmarshal stats from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}

	return &stats, nil
}
