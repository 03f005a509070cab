package cache

import (
	"sync"
	"time"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/metrics"
	"github.com/boundary-resolver/internal/pkg/clock"
)

// ResultCache - процессный кеш результатов по ключу tier:область запроса.
// Просроченные записи удаляются лениво при чтении и пачкой через Purge.
type ResultCache struct {
	mu         sync.Mutex
	entries    map[string]*domain.CacheEntry
	maxEntries int
	clock      clock.Clock
}

func NewResultCache(maxEntries int, clk clock.Clock) *ResultCache {
	if clk == nil {
		clk = clock.Real()
	}
	return &ResultCache{
		entries:    make(map[string]*domain.CacheEntry),
		maxEntries: maxEntries,
		clock:      clk,
	}
}

func Key(tierID, regionKey string) string {
	return tierID + ":" + regionKey
}

// Get возвращает копию закешированных границ, если запись есть и не истекла
func (c *ResultCache) Get(tierID, regionKey string) ([]domain.BoundaryFeature, bool) {
	key := Key(tierID, regionKey)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if entry.Expired(c.clock.Now()) {
		delete(c.entries, key)
		metrics.CacheEntries.Set(float64(len(c.entries)))
		return nil, false
	}
	return domain.CloneFeatures(entry.Features), true
}

// Set кладет копию результата с TTL уровня; ttl <= 0 ничего не сохраняет
func (c *ResultCache) Set(tierID, regionKey string, features []domain.BoundaryFeature, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	key := Key(tierID, regionKey)
	now := c.clock.Now()
	stored := domain.CloneFeatures(features)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.purgeLocked(now)
		if len(c.entries) >= c.maxEntries {
			c.evictSoonestLocked()
		}
	}

	c.entries[key] = &domain.CacheEntry{
		TierID:    tierID,
		RegionKey: regionKey,
		Features:  stored,
		ExpiresAt: now.Add(ttl),
	}
	metrics.CacheEntries.Set(float64(len(c.entries)))
}

// Purge удаляет истекшие записи и возвращает их число
func (c *ResultCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := c.purgeLocked(c.clock.Now())
	metrics.CacheEntries.Set(float64(len(c.entries)))
	return removed
}

func (c *ResultCache) purgeLocked(now time.Time) int {
	removed := 0
	for key, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// evictSoonestLocked вытесняет запись, которая истекает раньше всех
func (c *ResultCache) evictSoonestLocked() {
	var (
		victim   string
		earliest time.Time
	)
	for key, entry := range c.entries {
		if victim == "" || entry.ExpiresAt.Before(earliest) || (entry.ExpiresAt.Equal(earliest) && key < victim) {
			victim = key
			earliest = entry.ExpiresAt
		}
	}
	if victim != "" {
		delete(c.entries, victim)
	}
}

func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*domain.CacheEntry)
	metrics.CacheEntries.Set(0)
}
