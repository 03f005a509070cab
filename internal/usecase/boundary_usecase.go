package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/config"
	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/geometry"
	"github.com/boundary-resolver/internal/metrics"
	"github.com/boundary-resolver/internal/pkg/clock"
	"github.com/boundary-resolver/internal/pkg/errors"
	"github.com/boundary-resolver/internal/pkg/utils"
	"github.com/boundary-resolver/internal/query"
	"github.com/boundary-resolver/internal/repository/cache"
	"github.com/boundary-resolver/internal/tier"
)

const (
	MinZoom = 0
	MaxZoom = 24
)

// QueryExecutor выполняет запрос к провайдеру с повторами и circuit breaker
type QueryExecutor interface {
	Execute(ctx context.Context, q domain.Query) (*domain.QueryResult, error)
}

// CircuitRegistry - наблюдаемое состояние circuit breaker
type CircuitRegistry interface {
	States() []domain.CircuitState
	Reset()
}

// BoundaryEngineDeps - компоненты движка, собираются в cmd/api
type BoundaryEngineDeps struct {
	Selector    *tier.Selector
	Builder     *query.Builder
	Executor    QueryExecutor
	Circuits    CircuitRegistry
	Diagnostics *geometry.Diagnostics
	Fallback    *geometry.FallbackBoundsGenerator
	Cache       *cache.ResultCache
	Stats       *RenderingStatsTracker
	Clock       clock.Clock
}

// BoundaryUseCase - движок разрешения границ: уровень по zoom, кеш, запрос к провайдеру,
// диагностика сложности и деградация до упрощенной геометрии или bbox.
type BoundaryUseCase struct {
	deps     BoundaryEngineDeps
	geometry config.GeometryConfig
	logger   *zap.Logger
}

func NewBoundaryUseCase(deps BoundaryEngineDeps, geometryCfg config.GeometryConfig, logger *zap.Logger) *BoundaryUseCase {
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	if deps.Stats == nil {
		deps.Stats = NewRenderingStatsTracker(deps.Clock)
	}
	if geometryCfg.SimplifyTargetPoints <= 0 {
		geometryCfg.SimplifyTargetPoints = geometry.DefaultTargetPoints
	}
	if geometryCfg.MaxMultipolygonRings <= 0 {
		geometryCfg.MaxMultipolygonRings = geometry.MaxMultipolygonRings
	}
	return &BoundaryUseCase{
		deps:     deps,
		geometry: geometryCfg,
		logger:   logger,
	}
}

// Resolve возвращает границы для zoom и подсказки региона.
// Ошибки провайдера поглощаются: результат может быть упрощенным, резервным или пустым.
// Ошибка возвращается только для некорректного входа или отмененного контекста.
func (uc *BoundaryUseCase) Resolve(ctx context.Context, zoom int, hint *domain.RegionHint) ([]domain.BoundaryFeature, error) {
	if zoom < MinZoom || zoom > MaxZoom {
		return nil, errors.ErrInvalidZoom.WithDetails(map[string]interface{}{"zoom": zoom})
	}
	if err := hint.Validate(); err != nil {
		return nil, errors.ErrInvalidRegionHint.WithDetails(map[string]interface{}{"reason": err.Error()})
	}

	requestID := utils.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = utils.WithRequestID(ctx, requestID)
	}

	start := uc.deps.Clock.Now()
	t := uc.deps.Selector.Select(zoom, hint)
	// ключ кеша строится по области запроса, а не по подсказке: разные подсказки
	// с одинаковой областью делят запись
	scope := uc.deps.Builder.ScopeFor(t, hint)
	scopeKey := scope.Key()

	logger := uc.logger.With(
		zap.String("request_id", requestID),
		zap.String("tier", t.ID),
		zap.String("region", hint.Key()),
		zap.String("scope", scopeKey),
		zap.Int("zoom", zoom),
	)

	defer func() {
		elapsed := uc.deps.Clock.Now().Sub(start)
		uc.deps.Stats.RecordDuration(elapsed)
		metrics.ObserveResolve(t.ID, elapsed)
	}()

	if cached, ok := uc.deps.Cache.Get(t.ID, scopeKey); ok {
		uc.deps.Stats.RecordCache(true)
		logger.Debug("Boundaries served from cache", zap.Int("features", len(cached)))
		return cached, nil
	}
	uc.deps.Stats.RecordCache(false)

	result, err := uc.fetch(ctx, t, scope, logger)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		features := uc.fallbackForHint(t, hint, logger)
		logger.Warn("Provider exhausted, serving fallback bounds",
			zap.Error(err),
			zap.Int("features", len(features)))
		return features, nil
	}

	features := uc.process(result.Features, t)
	uc.deps.Cache.Set(t.ID, scopeKey, features, t.CacheTTL)

	logger.Info("Boundaries resolved",
		zap.String("provider", result.Provider),
		zap.String("mirror", result.Mirror),
		zap.Int("attempts", result.Attempts),
		zap.Int("features", len(features)))

	return features, nil
}

// fetch выполняет полный запрос, а при неудаче ровно одну попытку упрощенного
func (uc *BoundaryUseCase) fetch(ctx context.Context, t domain.Tier, scope domain.QueryScope, logger *zap.Logger) (*domain.QueryResult, error) {
	q, err := uc.deps.Builder.Build(t, scope, false)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	result, err := uc.deps.Executor.Execute(ctx, q)
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if stderrors.Is(err, errors.ErrCircuitOpen) {
		logger.Info("Circuit open, trying simplified query")
	} else {
		logger.Warn("Full query failed, trying simplified query", zap.Error(err))
	}

	sq, buildErr := uc.deps.Builder.Build(t, scope, true)
	if buildErr != nil {
		return nil, fmt.Errorf("build simplified query: %w", buildErr)
	}
	return uc.deps.Executor.Execute(ctx, sq)
}

// process прогоняет каждую границу через диагностику и применяет вердикт
func (uc *BoundaryUseCase) process(raw []domain.BoundaryFeature, t domain.Tier) []domain.BoundaryFeature {
	features := make([]domain.BoundaryFeature, 0, len(raw))
	for _, f := range raw {
		region := featureRegion(f)
		verdict := uc.deps.Diagnostics.Diagnose(&f.Geometry, region)

		switch verdict.Action {
		case domain.ActionRenderNormal:
			uc.deps.Stats.RecordOutcome(RenderSuccessful, "")
			features = append(features, f)

		case domain.ActionSimplifyCoordinates, domain.ActionSimplifyMultipolygon:
			geom := f.Geometry
			if verdict.Action == domain.ActionSimplifyMultipolygon {
				geom = geometry.KeepLargestRings(geom, uc.geometry.MaxMultipolygonRings)
			}
			f.Geometry = geometry.Simplify(geom, uc.geometry.SimplifyTargetPoints)
			f.Degradation = domain.DegradationSimplified
			uc.deps.Stats.RecordOutcome(RenderSimplified, region)
			features = append(features, f)

		case domain.ActionUseFallbackBounds:
			fb, ok := uc.deps.Fallback.GenerateFeature(region, t.Kind)
			if !ok {
				uc.deps.Stats.RecordOutcome(RenderFailed, region)
				uc.logger.Debug("Feature dropped, no fallback bounds",
					zap.String("name", f.Name),
					zap.Strings("issues", verdict.Issues))
				continue
			}
			fb.Name = f.Name
			uc.deps.Stats.RecordOutcome(RenderFallback, region)
			features = append(features, fb)
		}
	}
	return features
}

// fallbackForHint - резервный прямоугольник для региона подсказки при полном отказе провайдера
func (uc *BoundaryUseCase) fallbackForHint(t domain.Tier, hint *domain.RegionHint, logger *zap.Logger) []domain.BoundaryFeature {
	fb, ok := uc.deps.Fallback.GenerateForHint(hint, t.Kind)
	if !ok {
		uc.deps.Stats.RecordOutcome(RenderFailed, "")
		return []domain.BoundaryFeature{}
	}
	region, _ := fb.SourceProperties["region_code"].(string)
	uc.deps.Stats.RecordOutcome(RenderFallback, region)
	logger.Debug("Fallback bounds generated", zap.String("region_code", region))
	return []domain.BoundaryFeature{fb}
}

// featureRegion - идентификатор региона границы: ISO-код, иначе имя
func featureRegion(f domain.BoundaryFeature) string {
	for _, key := range []string{"ISO3166-1", "ISO3166-1:alpha2", "region_code"} {
		if code, ok := f.SourceProperties[key].(string); ok && strings.TrimSpace(code) != "" {
			return code
		}
	}
	return f.Name
}

// GetEngineStats - снимок статистики отрисовки
func (uc *BoundaryUseCase) GetEngineStats() domain.RenderingStats {
	return uc.deps.Stats.Snapshot()
}

// CircuitStates - состояния circuit breaker по семействам провайдеров
func (uc *BoundaryUseCase) CircuitStates() []domain.CircuitState {
	if uc.deps.Circuits == nil {
		return []domain.CircuitState{}
	}
	return uc.deps.Circuits.States()
}

// CacheEntries - число записей в кеше результатов
func (uc *BoundaryUseCase) CacheEntries() int {
	return uc.deps.Cache.Len()
}

// ResetStats сбрасывает только статистику отрисовки; автоматы и кеш не трогает
func (uc *BoundaryUseCase) ResetStats() {
	uc.deps.Stats.Reset()
	uc.logger.Info("Engine stats reset")
}

// ResetCircuits возвращает все автоматы в Closed: трафик к провайдерам открывается сразу
func (uc *BoundaryUseCase) ResetCircuits() {
	if uc.deps.Circuits == nil {
		return
	}
	uc.deps.Circuits.Reset()
	uc.logger.Warn("Circuit breakers reset, provider traffic reopened")
}
