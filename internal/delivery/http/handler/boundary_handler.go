package handler

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/pkg/errors"
	"github.com/boundary-resolver/internal/pkg/utils"
	pkgvalidator "github.com/boundary-resolver/internal/pkg/validator"
	"github.com/boundary-resolver/internal/usecase/dto"
)

// BoundaryResolver - движок разрешения границ
type BoundaryResolver interface {
	Resolve(ctx context.Context, zoom int, hint *domain.RegionHint) ([]domain.BoundaryFeature, error)
}

// BoundaryHandler - обработчик запросов границ для карты
type BoundaryHandler struct {
	engine BoundaryResolver
	logger *zap.Logger
}

// NewBoundaryHandler - создание нового BoundaryHandler
func NewBoundaryHandler(engine BoundaryResolver, logger *zap.Logger) *BoundaryHandler {
	return &BoundaryHandler{
		engine: engine,
		logger: logger,
	}
}

// GetBoundaries godoc
// @Summary Get administrative boundaries for a zoom level
// @Description Возвращает границы уровня, соответствующего zoom. Подсказка региона задается одной формой: lat/lng, name или north/south/east/west.
// @Description Ошибки провайдера не возвращаются: геометрия может быть упрощенной (degradation=simplified), прямоугольником (fallback_bounds) или пустой.
// @Tags Boundaries
// @Produce json
// @Param zoom query int true "Zoom level (0-24)"
// @Param lat query number false "Latitude"
// @Param lng query number false "Longitude"
// @Param name query string false "Region name or ISO code"
// @Param north query number false "Bounding box north"
// @Param south query number false "Bounding box south"
// @Param east query number false "Bounding box east"
// @Param west query number false "Bounding box west"
// @Success 200 {object} utils.SuccessResponse{data=dto.FeatureCollection}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/boundaries [get]
func (h *BoundaryHandler) GetBoundaries(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.BoundariesRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		}))
	}

	if err := pkgvalidator.Validate(&req); err != nil {
		return utils.SendError(c, validationError(err))
	}

	hint, err := req.Hint()
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRegionHint.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		}))
	}

	features, err := h.engine.Resolve(c.UserContext(), *req.Zoom, hint)
	if err != nil {
		if !isAppError(err) {
			h.logger.Error("Failed to resolve boundaries",
				zap.String("request_id", utils.RequestID(c.UserContext())),
				zap.Error(err))
		}
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewFeatureCollection(features), &utils.Meta{
		Total:    len(features),
		Region:   hint.Key(),
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

// validationError переводит ошибки validator в AppError; ошибка zoom получает свой код
func validationError(err error) *errors.AppError {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()})
	}

	fields := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		if fe.Field() == "Zoom" {
			return errors.ErrInvalidZoom.WithDetails(map[string]interface{}{"rule": fe.Tag()})
		}
		fields[fe.Field()] = fe.Tag()
	}
	return errors.ErrInvalidRequest.WithDetails(fields)
}

func isAppError(err error) bool {
	var appErr *errors.AppError
	return stderrors.As(err, &appErr)
}
