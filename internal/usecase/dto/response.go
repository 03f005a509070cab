package dto

import (
	"time"

	"github.com/boundary-resolver/internal/domain"
)

// FeatureCollection - ответ GET /api/v1/boundaries в формате GeoJSON
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature - граница в формате GeoJSON Feature
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry - GeoJSON Polygon или MultiPolygon
type Geometry struct {
	Type        string      `json:"type" example:"Polygon"`
	Coordinates interface{} `json:"coordinates" swaggertype:"array,number"`
}

// NewFeatureCollection переводит доменные границы в GeoJSON
func NewFeatureCollection(features []domain.BoundaryFeature) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(features)),
	}
	for _, f := range features {
		fc.Features = append(fc.Features, NewFeature(f))
	}
	return fc
}

func NewFeature(f domain.BoundaryFeature) Feature {
	props := make(map[string]interface{}, len(f.SourceProperties)+3)
	for k, v := range f.SourceProperties {
		props[k] = v
	}
	props["name"] = f.Name
	props["kind"] = f.Kind
	props["degradation"] = f.Degradation

	return Feature{
		Type:       "Feature",
		Geometry:   newGeometry(f.Geometry),
		Properties: props,
	}
}

// Каждое кольцо MultiPolygon становится отдельным полигоном без дыр
func newGeometry(g domain.Geometry) Geometry {
	if g.Type == domain.GeometryMultiPolygon {
		polygons := make([][]domain.Ring, 0, len(g.Rings))
		for _, r := range g.Rings {
			polygons = append(polygons, []domain.Ring{r})
		}
		return Geometry{Type: string(domain.GeometryMultiPolygon), Coordinates: polygons}
	}

	rings := g.Rings
	if len(rings) > 1 {
		rings = rings[:1]
	}
	if rings == nil {
		rings = []domain.Ring{}
	}
	return Geometry{Type: string(domain.GeometryPolygon), Coordinates: rings}
}

// StatsResponse - ответ GET /api/v1/stats
type StatsResponse struct {
	InstanceID   string                `json:"instance_id"`
	Rendering    domain.RenderingStats `json:"rendering"`
	Circuits     []domain.CircuitState `json:"circuits"`
	CacheEntries int                   `json:"cache_entries"`
	GeneratedAt  time.Time             `json:"generated_at"`
}
