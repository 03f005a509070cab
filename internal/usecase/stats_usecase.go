package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/domain/repository"
	"github.com/boundary-resolver/internal/usecase/dto"
)

// EngineStats - то, что статистике нужно от движка
type EngineStats interface {
	GetEngineStats() domain.RenderingStats
	CircuitStates() []domain.CircuitState
	CacheEntries() int
	ResetStats()
	ResetCircuits()
}

// StatsUseCase отдает статистику движка и публикует снимки во внешний кеш
type StatsUseCase struct {
	engine     EngineStats
	cacheRepo  repository.StatsCacheRepository
	instanceID string
	ttl        time.Duration
	logger     *zap.Logger
}

// NewStatsUseCase создает новый экземпляр StatsUseCase; cacheRepo может быть nil, если Redis выключен
func NewStatsUseCase(
	engine EngineStats,
	cacheRepo repository.StatsCacheRepository,
	instanceID string,
	ttl time.Duration,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		engine:     engine,
		cacheRepo:  cacheRepo,
		instanceID: instanceID,
		ttl:        ttl,
		logger:     logger,
	}
}

// GetStatistics возвращает локальную статистику движка
func (uc *StatsUseCase) GetStatistics() *dto.StatsResponse {
	return &dto.StatsResponse{
		InstanceID:   uc.instanceID,
		Rendering:    uc.engine.GetEngineStats(),
		Circuits:     uc.engine.CircuitStates(),
		CacheEntries: uc.engine.CacheEntries(),
		GeneratedAt:  time.Now().UTC(),
	}
}

// ResetStatistics сбрасывает статистику и сразу публикует пустой снимок
func (uc *StatsUseCase) ResetStatistics(ctx context.Context) *dto.StatsResponse {
	uc.engine.ResetStats()
	if err := uc.Publish(ctx); err != nil {
		uc.logger.Warn("Failed to publish stats after reset", zap.Error(err))
	}
	return uc.GetStatistics()
}

// ResetCircuits закрывает все circuit breaker; статистика отрисовки не меняется
func (uc *StatsUseCase) ResetCircuits() *dto.StatsResponse {
	uc.engine.ResetCircuits()
	return uc.GetStatistics()
}

// Publish сохраняет снимок статистики инстанса во внешнем кеше
func (uc *StatsUseCase) Publish(ctx context.Context) error {
	if uc.cacheRepo == nil {
		return nil
	}

	stats := uc.engine.GetEngineStats()
	if err := uc.cacheRepo.SetStats(ctx, uc.instanceID, &stats, uc.ttl); err != nil {
		return fmt.Errorf("publish stats: %w", err)
	}

	uc.logger.Debug("Stats snapshot published", zap.String("instance_id", uc.instanceID))
	return nil
}

// GetInstanceStatistics читает опубликованный снимок любого инстанса; nil, если снимка нет
func (uc *StatsUseCase) GetInstanceStatistics(ctx context.Context, instanceID string) (*domain.RenderingStats, error) {
	if uc.cacheRepo == nil {
		return nil, nil
	}

	stats, err := uc.cacheRepo.GetStats(ctx, instanceID)
	if err != nil {
		return nil, fmt.Errorf("get instance stats: %w", err)
	}
	return stats, nil
}
