package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/pkg/errors"
	"github.com/boundary-resolver/internal/pkg/utils"
	"github.com/boundary-resolver/internal/usecase/dto"
)

// StatsProvider - статистика движка и опубликованные снимки инстансов
type StatsProvider interface {
	GetStatistics() *dto.StatsResponse
	ResetStatistics(ctx context.Context) *dto.StatsResponse
	ResetCircuits() *dto.StatsResponse
	GetInstanceStatistics(ctx context.Context, instanceID string) (*domain.RenderingStats, error)
}

// StatsHandler обрабатывает запросы для статистики
type StatsHandler struct {
	statsUC StatsProvider
	logger  *zap.Logger
}

// NewStatsHandler создает новый экземпляр StatsHandler
func NewStatsHandler(statsUC StatsProvider, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStatistics godoc
// @Summary Get rendering statistics
// @Description Счетчики отрисовки, среднее время resolve, проблемные регионы и состояние circuit breaker по провайдерам
// @Tags Statistics
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.StatsResponse}
// @Router /api/v1/stats [get]
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	h.logger.Debug("Handling get statistics request")
	return utils.SendSuccess(c, h.statsUC.GetStatistics(), nil)
}

// ResetStatistics godoc
// @Summary Reset rendering statistics
// @Description Сбрасывает счетчики отрисовки. Circuit breaker и кеш границ не трогает.
// @Tags Statistics
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.StatsResponse}
// @Router /api/v1/stats/reset [post]
func (h *StatsHandler) ResetStatistics(c *fiber.Ctx) error {
	stats := h.statsUC.ResetStatistics(c.UserContext())
	h.logger.Info("Statistics reset", zap.String("request_id", utils.RequestID(c.UserContext())))
	return utils.SendSuccess(c, stats, nil)
}

// ResetCircuits godoc
// @Summary Reset circuit breakers
// @Description Возвращает все circuit breaker в CLOSED; запросы к провайдерам возобновляются сразу
// @Tags Statistics
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.StatsResponse}
// @Router /api/v1/stats/circuits/reset [post]
func (h *StatsHandler) ResetCircuits(c *fiber.Ctx) error {
	stats := h.statsUC.ResetCircuits()
	h.logger.Warn("Circuit breakers reset", zap.String("request_id", utils.RequestID(c.UserContext())))
	return utils.SendSuccess(c, stats, nil)
}

// GetInstanceStatistics godoc
// @Summary Get published statistics of an instance
// @Description Снимок статистики, опубликованный инстансом в Redis
// @Tags Statistics
// @Produce json
// @Param id path string true "Instance ID"
// @Success 200 {object} utils.SuccessResponse{data=domain.RenderingStats}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stats/instances/{id} [get]
func (h *StatsHandler) GetInstanceStatistics(c *fiber.Ctx) error {
	instanceID := c.Params("id")

	stats, err := h.statsUC.GetInstanceStatistics(c.UserContext(), instanceID)
	if err != nil {
		h.logger.Error("Failed to get instance statistics",
			zap.String("instance_id", instanceID),
			zap.Error(err))
		return utils.SendError(c, errors.ErrCacheError)
	}
	if stats == nil {
		return utils.SendError(c, errors.ErrStatsNotFound.WithDetails(map[string]interface{}{
			"instance_id": instanceID,
		}))
	}

	return utils.SendSuccess(c, stats, nil)
}
