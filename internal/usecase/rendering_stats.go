package usecase

import (
	"sort"
	"sync"
	"time"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/metrics"
	"github.com/boundary-resolver/internal/pkg/clock"
)

// renderTimeWindow - число последних замеров в скользящем среднем
const renderTimeWindow = 10

// RenderOutcome - исход отрисовки одной границы
type RenderOutcome string

const (
	RenderSuccessful RenderOutcome = "normal"
	RenderSimplified RenderOutcome = "simplified"
	RenderFallback   RenderOutcome = "fallback"
	RenderFailed     RenderOutcome = "failed"
)

// RenderingStatsTracker - процессные счетчики отрисовки
type RenderingStatsTracker struct {
	mu             sync.Mutex
	clock          clock.Clock
	successful     int64
	failed         int64
	simplified     int64
	fallback       int64
	cacheHits      int64
	cacheMisses    int64
	durations      []time.Duration
	problemRegions map[string]struct{}
	lastReset      time.Time
}

func NewRenderingStatsTracker(clk clock.Clock) *RenderingStatsTracker {
	if clk == nil {
		clk = clock.Real()
	}
	return &RenderingStatsTracker{
		clock:          clk,
		durations:      make([]time.Duration, 0, renderTimeWindow),
		problemRegions: make(map[string]struct{}),
		lastReset:      clk.Now(),
	}
}

// RecordOutcome учитывает исход; упрощенные и резервные регионы попадают в список проблемных
func (t *RenderingStatsTracker) RecordOutcome(outcome RenderOutcome, region string) {
	metrics.RendersTotal.WithLabelValues(string(outcome)).Inc()

	t.mu.Lock()
	defer t.mu.Unlock()

	switch outcome {
	case RenderSuccessful:
		t.successful++
	case RenderSimplified:
		t.simplified++
	case RenderFallback:
		t.fallback++
	case RenderFailed:
		t.failed++
	}

	if region != "" && outcome != RenderSuccessful {
		t.problemRegions[region] = struct{}{}
	}
}

// RecordDuration добавляет замер времени resolve, старейший вытесняется
func (t *RenderingStatsTracker) RecordDuration(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.durations) == renderTimeWindow {
		copy(t.durations, t.durations[1:])
		t.durations = t.durations[:renderTimeWindow-1]
	}
	t.durations = append(t.durations, d)
}

func (t *RenderingStatsTracker) RecordCache(hit bool) {
	metrics.ObserveCache(hit)

	t.mu.Lock()
	defer t.mu.Unlock()
	if hit {
		t.cacheHits++
	} else {
		t.cacheMisses++
	}
}

// Snapshot - копия текущих значений
func (t *RenderingStatsTracker) Snapshot() domain.RenderingStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	regions := make([]string, 0, len(t.problemRegions))
	for r := range t.problemRegions {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	var avg time.Duration
	if n := len(t.durations); n > 0 {
		var total time.Duration
		for _, d := range t.durations {
			total += d
		}
		avg = total / time.Duration(n)
	}

	return domain.RenderingStats{
		Successful:        t.successful,
		Failed:            t.failed,
		Simplified:        t.simplified,
		Fallback:          t.fallback,
		AverageRenderTime: avg,
		Samples:           len(t.durations),
		ProblemRegions:    regions,
		CacheHits:         t.cacheHits,
		CacheMisses:       t.cacheMisses,
		LastReset:         t.lastReset,
	}
}

func (t *RenderingStatsTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.successful, t.failed, t.simplified, t.fallback = 0, 0, 0, 0
	t.cacheHits, t.cacheMisses = 0, 0
	t.durations = t.durations[:0]
	t.problemRegions = make(map[string]struct{})
	t.lastReset = t.clock.Now()
}
