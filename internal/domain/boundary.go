package domain

import "maps"

// GeometryType - тип геометрии в терминах GeoJSON
type GeometryType string

const (
	GeometryPolygon      GeometryType = "Polygon"
	GeometryMultiPolygon GeometryType = "MultiPolygon"
)

// Geometry - один или несколько колец. Для Polygon используется только внешнее кольцо.
type Geometry struct {
	Type  GeometryType `json:"type"`
	Rings []Ring       `json:"rings"`
}

func (g *Geometry) RingCount() int {
	if g == nil {
		return 0
	}
	return len(g.Rings)
}

func (g *Geometry) PointCount() int {
	if g == nil {
		return 0
	}
	total := 0
	for _, r := range g.Rings {
		total += len(r)
	}
	return total
}

// Clone - глубокая копия колец
func (g Geometry) Clone() Geometry {
	out := Geometry{Type: g.Type}
	if g.Rings != nil {
		out.Rings = make([]Ring, len(g.Rings))
		for i, r := range g.Rings {
			if r != nil {
				out.Rings[i] = make(Ring, len(r))
				copy(out.Rings[i], r)
			}
		}
	}
	return out
}

// IsEmpty - нет колец или все кольца пустые
func (g *Geometry) IsEmpty() bool {
	return g.PointCount() == 0
}

// Degradation показывает, как геометрия была упрощена перед отдачей
type Degradation string

const (
	DegradationNone       Degradation = "none"
	DegradationSimplified Degradation = "simplified"
	DegradationFallback   Degradation = "fallback_bounds"
)

// BoundaryFeature - нормализованная граница, готовая к отрисовке. Не изменяется после возврата.
type BoundaryFeature struct {
	Name             string                 `json:"name"`
	Kind             TierKind               `json:"kind"`
	Geometry         Geometry               `json:"geometry"`
	SourceProperties map[string]interface{} `json:"source_properties,omitempty"`
	Degradation      Degradation            `json:"degradation"`
}

// Clone копирует геометрию и свойства источника; значения свойств копируются поверхностно
func (f BoundaryFeature) Clone() BoundaryFeature {
	f.Geometry = f.Geometry.Clone()
	f.SourceProperties = maps.Clone(f.SourceProperties)
	return f
}

// CloneFeatures - глубокая копия списка; nil остается nil
func CloneFeatures(features []BoundaryFeature) []BoundaryFeature {
	if features == nil {
		return nil
	}
	out := make([]BoundaryFeature, len(features))
	for i, f := range features {
		out[i] = f.Clone()
	}
	return out
}
