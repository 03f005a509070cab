package repository

import (
	"context"

	"github.com/boundary-resolver/internal/domain"
)

// BoundsRepository загружает bbox административных единиц из OSM базы
type BoundsRepository interface {
	// LoadBounds возвращает bbox для границ заданных admin_level
	LoadBounds(ctx context.Context, adminLevels []string) ([]domain.RegionBounds, error)
}
