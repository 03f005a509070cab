package tier

import (
	"math"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/geometry"
)

// RegionResolver сводит подсказку к каноническому региону
type RegionResolver interface {
	ResolveHint(hint *domain.RegionHint) (geometry.Region, bool)
}

// Selector выбирает уровень данных по zoom и подсказке региона. Чистая функция от входа.
type Selector struct {
	catalog *Catalog
	regions RegionResolver
}

func NewSelector(catalog *Catalog, regions RegionResolver) *Selector {
	return &Selector{catalog: catalog, regions: regions}
}

// KindForZoom: ≤3 континенты, 4–6 страны, 7–9 регионы, ≥10 муниципалитеты
func KindForZoom(zoom int) domain.TierKind {
	switch {
	case zoom <= 3:
		return domain.TierContinent
	case zoom <= 6:
		return domain.TierCountry
	case zoom <= 9:
		return domain.TierState
	default:
		return domain.TierMunicipality
	}
}

// Select всегда возвращает уровень; отрицательный zoom дает самый грубый
func (s *Selector) Select(zoom int, hint *domain.RegionHint) domain.Tier {
	if zoom < 0 {
		return s.catalog.Coarsest()
	}

	kind := KindForZoom(zoom)
	if kind == domain.TierMunicipality && s.regions != nil && !hint.IsZero() {
		if region, ok := s.regions.ResolveHint(hint); ok {
			if override, ok := s.catalog.Override(region.Code); ok {
				return override
			}
		}
	}
	return s.catalog.ByKind(kind)
}

// SelectFloat - вариант для дробного zoom с карты; NaN и бесконечности дают самый грубый уровень
func (s *Selector) SelectFloat(zoom float64, hint *domain.RegionHint) domain.Tier {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return s.catalog.Coarsest()
	}
	return s.Select(int(math.Floor(zoom)), hint)
}
