package maintenance_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/pkg/clock"
	"github.com/boundary-resolver/internal/repository/cache"
	"github.com/boundary-resolver/internal/worker"
	"github.com/boundary-resolver/internal/worker/maintenance"
)

// MockPublisher is a mock of Publisher
type MockPublisher struct {
	mock.Mock
	calls atomic.Int32
}

func (m *MockPublisher) Publish(ctx context.Context) error {
	m.calls.Add(1)
	args := m.Called(ctx)
	return args.Error(0)
}

func TestCacheJanitor_RunOnce(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	resultCache := cache.NewResultCache(10, clk)
	resultCache.Set("countries", "global", []domain.BoundaryFeature{}, time.Minute)
	resultCache.Set("states", "name:brazil", []domain.BoundaryFeature{}, time.Hour)

	janitor := maintenance.NewCacheJanitor(resultCache, time.Minute, zap.NewNop())
	assert.Equal(t, "cache-janitor", janitor.Name())

	clk.Advance(2 * time.Minute)
	janitor.RunOnce(context.Background())

	assert.Equal(t, 1, resultCache.Len())
}

func TestStatsPublisher_PublishesPeriodicallyAndOnStop(t *testing.T) {
	publisher := &MockPublisher{}
	publisher.On("Publish", mock.Anything).Return(nil)

	w := maintenance.NewStatsPublisher(publisher, 10*time.Millisecond, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	require.Eventually(t, func() bool { return publisher.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	before := publisher.calls.Load()

	require.NoError(t, w.Stop())
	require.NoError(t, <-done)
	assert.Greater(t, publisher.calls.Load(), before, "final snapshot published on stop")
}

func TestStatsPublisher_ErrorIsNotFatal(t *testing.T) {
	publisher := &MockPublisher{}
	publisher.On("Publish", mock.Anything).Return(assert.AnError)

	w := maintenance.NewStatsPublisher(publisher, time.Hour, zap.NewNop())
	w.RunOnce(context.Background())

	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestWorkerManager_StartStop(t *testing.T) {
	clk := clock.NewFake(time.Now())
	manager := worker.NewWorkerManager(time.Second, zap.NewNop())

	assert.Error(t, manager.Start(context.Background()), "no workers registered")

	publisher := &MockPublisher{}
	publisher.On("Publish", mock.Anything).Return(nil)

	manager.Register(maintenance.NewCacheJanitor(cache.NewResultCache(10, clk), 5*time.Millisecond, zap.NewNop()))
	manager.Register(maintenance.NewStatsPublisher(publisher, 5*time.Millisecond, zap.NewNop()))
	assert.Equal(t, 2, manager.Len())

	require.NoError(t, manager.Start(context.Background()))
	require.Eventually(t, func() bool { return publisher.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	assert.NoError(t, manager.Stop())
}

func TestBaseWorker_DisabledInterval(t *testing.T) {
	w := maintenance.NewCacheJanitor(cache.NewResultCache(10, nil), 0, zap.NewNop())
	assert.NoError(t, w.Start(context.Background()))
}
