package domain

import "time"

// RenderingStats - процессные счетчики отрисовки, сбрасываются явно
type RenderingStats struct {
	Successful        int64         `json:"successful"`
	Failed            int64         `json:"failed"`
	Simplified        int64         `json:"simplified"`
	Fallback          int64         `json:"fallback"`
	AverageRenderTime time.Duration `json:"average_render_time"`
	Samples           int           `json:"samples"`
	ProblemRegions    []string      `json:"problem_regions"`
	CacheHits         int64         `json:"cache_hits"`
	CacheMisses       int64         `json:"cache_misses"`
	LastReset         time.Time     `json:"last_reset"`
}

// CacheEntry - закешированный результат для пары (tier, region)
type CacheEntry struct {
	TierID    string
	RegionKey string
	Features  []BoundaryFeature
	ExpiresAt time.Time
}

func (e *CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
