package geometry

import (
	"math"

	"github.com/boundary-resolver/internal/domain"
)

// circleRing строит замкнутое кольцо из n точек (последняя совпадает с первой)
func circleRing(n int, cx, cy, radius float64) domain.Ring {
	ring := make(domain.Ring, 0, n)
	for i := 0; i < n-1; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n-1)
		ring = append(ring, domain.Coordinate{cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)})
	}
	return append(ring, ring[0])
}

func multiPolygon(ringSizes ...int) *domain.Geometry {
	g := &domain.Geometry{Type: domain.GeometryMultiPolygon}
	for i, n := range ringSizes {
		g.Rings = append(g.Rings, circleRing(n, float64(i), 0, 0.1))
	}
	return g
}

func polygon(n int) *domain.Geometry {
	return &domain.Geometry{Type: domain.GeometryPolygon, Rings: []domain.Ring{circleRing(n, 0, 0, 1)}}
}
