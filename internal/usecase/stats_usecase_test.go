package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/usecase"
)

// fakeEngine - минимальная реализация EngineStats
type fakeEngine struct {
	stats         domain.RenderingStats
	resets        int
	circuitResets int
}

func (f *fakeEngine) GetEngineStats() domain.RenderingStats { return f.stats }
func (f *fakeEngine) CircuitStates() []domain.CircuitState {
	return []domain.CircuitState{{ProviderID: "overpass", Status: domain.CircuitClosed}}
}
func (f *fakeEngine) CacheEntries() int { return 3 }
func (f *fakeEngine) ResetStats() {
	f.resets++
	f.stats = domain.RenderingStats{}
}
func (f *fakeEngine) ResetCircuits() { f.circuitResets++ }

func TestStatsUseCase_GetStatistics(t *testing.T) {
	engine := &fakeEngine{stats: domain.RenderingStats{Successful: 4, ProblemRegions: []string{"RU"}}}
	uc := usecase.NewStatsUseCase(engine, nil, "node-1", time.Minute, zap.NewNop())

	resp := uc.GetStatistics()

	assert.Equal(t, "node-1", resp.InstanceID)
	assert.Equal(t, int64(4), resp.Rendering.Successful)
	assert.Equal(t, 3, resp.CacheEntries)
	require.Len(t, resp.Circuits, 1)
	assert.Equal(t, "overpass", resp.Circuits[0].ProviderID)
}

func TestStatsUseCase_Publish(t *testing.T) {
	ctx := context.Background()
	engine := &fakeEngine{stats: domain.RenderingStats{Fallback: 2}}
	repo := &MockStatsCacheRepository{}
	uc := usecase.NewStatsUseCase(engine, repo, "node-1", 10*time.Minute, zap.NewNop())

	repo.On("SetStats", ctx, "node-1", mock.MatchedBy(func(s *domain.RenderingStats) bool {
		return s.Fallback == 2
	}), 10*time.Minute).Return(nil).Once()

	require.NoError(t, uc.Publish(ctx))
	repo.AssertExpectations(t)
}

func TestStatsUseCase_Publish_Error(t *testing.T) {
	ctx := context.Background()
	repo := &MockStatsCacheRepository{}
	uc := usecase.NewStatsUseCase(&fakeEngine{}, repo, "node-1", time.Minute, zap.NewNop())

	repo.On("SetStats", ctx, "node-1", mock.Anything, time.Minute).Return(stderrors.New("connection refused"))

	err := uc.Publish(ctx)
	assert.ErrorContains(t, err, "connection refused")
}

func TestStatsUseCase_WithoutRedis(t *testing.T) {
	uc := usecase.NewStatsUseCase(&fakeEngine{}, nil, "node-1", time.Minute, zap.NewNop())

	assert.NoError(t, uc.Publish(context.Background()))

	stats, err := uc.GetInstanceStatistics(context.Background(), "node-2")
	assert.NoError(t, err)
	assert.Nil(t, stats)
}

func TestStatsUseCase_ResetStatistics(t *testing.T) {
	ctx := context.Background()
	engine := &fakeEngine{stats: domain.RenderingStats{Failed: 7}}
	repo := &MockStatsCacheRepository{}
	uc := usecase.NewStatsUseCase(engine, repo, "node-1", time.Minute, zap.NewNop())

	repo.On("SetStats", ctx, "node-1", mock.MatchedBy(func(s *domain.RenderingStats) bool {
		return s.Failed == 0
	}), time.Minute).Return(nil).Once()

	resp := uc.ResetStatistics(ctx)

	assert.Equal(t, 1, engine.resets)
	assert.Zero(t, engine.circuitResets, "stats reset leaves circuits alone")
	assert.Zero(t, resp.Rendering.Failed)
	repo.AssertExpectations(t)
}

func TestStatsUseCase_ResetCircuits(t *testing.T) {
	engine := &fakeEngine{stats: domain.RenderingStats{Failed: 7}}
	uc := usecase.NewStatsUseCase(engine, nil, "node-1", time.Minute, zap.NewNop())

	resp := uc.ResetCircuits()

	assert.Equal(t, 1, engine.circuitResets)
	assert.Zero(t, engine.resets)
	assert.Equal(t, int64(7), resp.Rendering.Failed)
}

func TestStatsUseCase_GetInstanceStatistics(t *testing.T) {
	ctx := context.Background()
	repo := &MockStatsCacheRepository{}
	uc := usecase.NewStatsUseCase(&fakeEngine{}, repo, "node-1", time.Minute, zap.NewNop())

	repo.On("GetStats", ctx, "node-2").Return(&domain.RenderingStats{Successful: 11}, nil).Once()
	repo.On("GetStats", ctx, "node-3").Return(nil, nil).Once()

	stats, err := uc.GetInstanceStatistics(ctx, "node-2")
	require.NoError(t, err)
	assert.Equal(t, int64(11), stats.Successful)

	stats, err = uc.GetInstanceStatistics(ctx, "node-3")
	require.NoError(t, err)
	assert.Nil(t, stats)
}
