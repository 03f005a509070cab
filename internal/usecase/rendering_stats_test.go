package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/boundary-resolver/internal/pkg/clock"
	"github.com/boundary-resolver/internal/usecase"
)

func TestRenderingStatsTracker_MovingAverage(t *testing.T) {
	tracker := usecase.NewRenderingStatsTracker(clock.NewFake(time.Unix(0, 0)))

	for i := 1; i <= 12; i++ {
		tracker.RecordDuration(time.Duration(i) * time.Millisecond)
	}

	stats := tracker.Snapshot()
	assert.Equal(t, 10, stats.Samples)
	// среднее по последним десяти: 3..12
	assert.Equal(t, 7500*time.Microsecond, stats.AverageRenderTime)
}

func TestRenderingStatsTracker_Outcomes(t *testing.T) {
	tracker := usecase.NewRenderingStatsTracker(clock.NewFake(time.Unix(0, 0)))

	tracker.RecordOutcome(usecase.RenderSuccessful, "PT")
	tracker.RecordOutcome(usecase.RenderSimplified, "NO")
	tracker.RecordOutcome(usecase.RenderFallback, "RU")
	tracker.RecordOutcome(usecase.RenderFallback, "RU")
	tracker.RecordOutcome(usecase.RenderFailed, "")
	tracker.RecordCache(true)
	tracker.RecordCache(false)
	tracker.RecordCache(false)

	stats := tracker.Snapshot()
	assert.Equal(t, int64(1), stats.Successful)
	assert.Equal(t, int64(1), stats.Simplified)
	assert.Equal(t, int64(2), stats.Fallback)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(2), stats.CacheMisses)
	assert.Equal(t, []string{"NO", "RU"}, stats.ProblemRegions)
}

func TestRenderingStatsTracker_Reset(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	tracker := usecase.NewRenderingStatsTracker(clk)

	tracker.RecordOutcome(usecase.RenderFallback, "RU")
	tracker.RecordDuration(time.Second)

	clk.Advance(time.Hour)
	tracker.Reset()

	stats := tracker.Snapshot()
	assert.Zero(t, stats.Fallback)
	assert.Zero(t, stats.Samples)
	assert.Zero(t, stats.AverageRenderTime)
	assert.Empty(t, stats.ProblemRegions)
	assert.Equal(t, time.Unix(0, 0).Add(time.Hour), stats.LastReset)
}
