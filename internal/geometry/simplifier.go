package geometry

import (
	"sort"

	"github.com/boundary-resolver/internal/domain"
)

const (
	// DefaultTargetPoints - бюджет точек на кольцо по умолчанию
	DefaultTargetPoints = 500
	minTargetPoints     = 3
)

// SimplifyRing прореживает кольцо с фиксированным шагом: сохраняется каждая stride-я точка,
// stride = ceil(len/target). Результат содержит не более target+1 точек и замкнут.
// Кольцо, уже укладывающееся в бюджет, возвращается без изменений.
func SimplifyRing(ring domain.Ring, target int) domain.Ring {
	if target <= 0 {
		target = DefaultTargetPoints
	}
	if target < minTargetPoints {
		target = minTargetPoints
	}
	if len(ring) <= target {
		return ring
	}

	stride := (len(ring) + target - 1) / target
	out := make(domain.Ring, 0, target+1)
	for i := 0; i < len(ring); i += stride {
		out = append(out, ring[i])
	}
	if out[0] != out[len(out)-1] {
		out = append(out, ring[0])
	}
	return out
}

// Simplify применяет SimplifyRing к каждому кольцу геометрии
func Simplify(geom domain.Geometry, target int) domain.Geometry {
	rings := make([]domain.Ring, len(geom.Rings))
	for i, r := range geom.Rings {
		rings[i] = SimplifyRing(r, target)
	}
	return domain.Geometry{Type: geom.Type, Rings: rings}
}

// KeepLargestRings оставляет maxRings колец с наибольшим числом точек в исходном порядке
func KeepLargestRings(geom domain.Geometry, maxRings int) domain.Geometry {
	if maxRings <= 0 || len(geom.Rings) <= maxRings {
		return geom
	}

	idx := make([]int, len(geom.Rings))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return len(geom.Rings[idx[a]]) > len(geom.Rings[idx[b]])
	})
	keep := idx[:maxRings]
	sort.Ints(keep)

	rings := make([]domain.Ring, 0, maxRings)
	for _, i := range keep {
		rings = append(rings, geom.Rings[i])
	}

	geomType := geom.Type
	if len(rings) == 1 {
		geomType = domain.GeometryPolygon
	}
	return domain.Geometry{Type: geomType, Rings: rings}
}
