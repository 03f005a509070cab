package geometry

import (
	"fmt"

	"github.com/boundary-resolver/internal/domain"
)

// Пороговые значения сложности геометрии
const (
	MaxMultipolygonRings       = 50
	MultipolygonFallbackPoints = 5000
	MultipolygonSimplifyPoints = 2000
	PolygonFallbackPoints      = 2000
	PolygonSimplifyPoints      = 1000
)

// Diagnostics классифицирует геометрию: отрисовать как есть, упростить или заменить bbox
type Diagnostics struct {
	regions *RegionRegistry
}

func NewDiagnostics(regions *RegionRegistry) *Diagnostics {
	return &Diagnostics{regions: regions}
}

// Diagnose возвращает вердикт для геометрии региона
func (d *Diagnostics) Diagnose(geom *domain.Geometry, region string) domain.ComplexityVerdict {
	if geom == nil || geom.IsEmpty() {
		return domain.ComplexityVerdict{
			Issues:     []string{"no geometry"},
			Renderable: false,
			Action:     domain.ActionUseFallbackBounds,
		}
	}

	verdict := domain.ComplexityVerdict{
		Issues:     []string{},
		Renderable: true,
		Action:     domain.ActionRenderNormal,
	}

	points := geom.PointCount()
	if geom.Type == domain.GeometryMultiPolygon || geom.RingCount() > 1 {
		rings := geom.RingCount()
		if rings > MaxMultipolygonRings {
			verdict.Issues = append(verdict.Issues, fmt.Sprintf("many polygons (%d)", rings))
			verdict.Action = domain.ActionSimplifyMultipolygon
		}
		switch {
		case points > MultipolygonFallbackPoints:
			verdict.Issues = append(verdict.Issues, fmt.Sprintf("too many points (%d)", points))
			verdict.Renderable = false
			verdict.Action = domain.ActionUseFallbackBounds
		case points > MultipolygonSimplifyPoints:
			verdict.Issues = append(verdict.Issues, fmt.Sprintf("many points (%d)", points))
			verdict.Action = domain.ActionSimplifyCoordinates
		}
	} else {
		switch {
		case points > PolygonFallbackPoints:
			verdict.Issues = append(verdict.Issues, fmt.Sprintf("too many points (%d)", points))
			verdict.Renderable = false
			verdict.Action = domain.ActionUseFallbackBounds
		case points > PolygonSimplifyPoints:
			verdict.Issues = append(verdict.Issues, fmt.Sprintf("many points (%d)", points))
			verdict.Action = domain.ActionSimplifyCoordinates
		}
	}

	if d.regions != nil {
		if r, ok := d.regions.Resolve(region); ok && r.Problematic() {
			verdict.Issues = append(verdict.Issues, fmt.Sprintf("known problematic region %s: %s", r.Name, r.ProblemNote))
			if r.SimplifiedByDefault {
				verdict.Renderable = false
				verdict.Action = domain.ActionUseFallbackBounds
			}
		}
	}

	return verdict
}
