package geometry

import (
	"github.com/boundary-resolver/internal/domain"
)

// FallbackBoundsGenerator строит прямоугольник из зарегистрированного bbox региона
type FallbackBoundsGenerator struct {
	regions *RegionRegistry
}

func NewFallbackBoundsGenerator(regions *RegionRegistry) *FallbackBoundsGenerator {
	return &FallbackBoundsGenerator{regions: regions}
}

// Generate возвращает замкнутое кольцо [W,S] → [E,S] → [E,N] → [W,N] → [W,S]
// или false, если bbox для региона не зарегистрирован.
func (g *FallbackBoundsGenerator) Generate(region string) (domain.Ring, bool) {
	r, ok := g.regions.Resolve(region)
	if !ok || r.BBox == nil {
		return nil, false
	}
	return RectangleRing(*r.BBox), true
}

// GenerateFeature оборачивает прямоугольник в BoundaryFeature
func (g *FallbackBoundsGenerator) GenerateFeature(region string, kind domain.TierKind) (domain.BoundaryFeature, bool) {
	r, ok := g.regions.Resolve(region)
	if !ok || r.BBox == nil {
		return domain.BoundaryFeature{}, false
	}
	return rectangleFeature(r, kind), true
}

// GenerateForHint подбирает регион по подсказке (имя или точка)
func (g *FallbackBoundsGenerator) GenerateForHint(hint *domain.RegionHint, kind domain.TierKind) (domain.BoundaryFeature, bool) {
	r, ok := g.regions.ResolveHint(hint)
	if !ok || r.BBox == nil {
		return domain.BoundaryFeature{}, false
	}
	return rectangleFeature(r, kind), true
}

func rectangleFeature(r Region, kind domain.TierKind) domain.BoundaryFeature {
	return domain.BoundaryFeature{
		Name: r.Name,
		Kind: kind,
		Geometry: domain.Geometry{
			Type:  domain.GeometryPolygon,
			Rings: []domain.Ring{RectangleRing(*r.BBox)},
		},
		SourceProperties: map[string]interface{}{
			"region_code": r.Code,
			"fallback":    true,
		},
		Degradation: domain.DegradationFallback,
	}
}

// RectangleRing - пятиточечное замкнутое кольцо по bbox
func RectangleRing(b domain.BoundingBox) domain.Ring {
	return domain.Ring{
		{b.West, b.South},
		{b.East, b.South},
		{b.East, b.North},
		{b.West, b.North},
		{b.West, b.South},
	}
}
