package overpass

import (
	"fmt"
	"math"
	"strconv"

	"github.com/boundary-resolver/internal/domain"
)

type response struct {
	Remark   string    `json:"remark"`
	Elements []element `json:"elements"`
}

type element struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Tags     map[string]string `json:"tags"`
	Members  []member          `json:"members"`
	Geometry []point           `json:"geometry"`
}

type member struct {
	Type     string  `json:"type"`
	Ref      int64   `json:"ref"`
	Role     string  `json:"role"`
	Geometry []point `json:"geometry"`
}

type point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func toFeatures(elements []element, kind domain.TierKind) []domain.BoundaryFeature {
	features := make([]domain.BoundaryFeature, 0, len(elements))
	for _, el := range elements {
		var rings []domain.Ring
		switch el.Type {
		case "relation":
			rings = assembleRings(outerSegments(el.Members))
		case "way":
			rings = assembleRings([][]domain.Coordinate{toCoordinates(el.Geometry)})
		}
		if len(rings) == 0 {
			continue
		}

		geom := domain.Geometry{Type: domain.GeometryPolygon, Rings: rings}
		if len(rings) > 1 {
			geom.Type = domain.GeometryMultiPolygon
		}

		features = append(features, domain.BoundaryFeature{
			Name:             featureName(el),
			Kind:             kind,
			Geometry:         geom,
			SourceProperties: properties(el),
			Degradation:      domain.DegradationNone,
		})
	}
	return features
}

func featureName(el element) string {
	if name := el.Tags["name:en"]; name != "" {
		return name
	}
	if name := el.Tags["name"]; name != "" {
		return name
	}
	return fmt.Sprintf("%s/%d", el.Type, el.ID)
}

// properties копирует теги; числовые значения в канонической записи становятся числами
func properties(el element) map[string]interface{} {
	props := make(map[string]interface{}, len(el.Tags)+2)
	for k, v := range el.Tags {
		props[k] = parseTagValue(v)
	}
	props["osm_id"] = el.ID
	props["osm_type"] = el.Type
	return props
}

func parseTagValue(v string) interface{} {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil && strconv.FormatInt(i, 10) == v {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) &&
		strconv.FormatFloat(f, 'f', -1, 64) == v {
		return f
	}
	return v
}

func toCoordinates(points []point) []domain.Coordinate {
	coords := make([]domain.Coordinate, 0, len(points))
	for _, p := range points {
		coords = append(coords, domain.Coordinate{p.Lon, p.Lat})
	}
	return coords
}

// outerSegments - линии внешних ways отношения; внутренние кольца (дыры) не используются
func outerSegments(members []member) [][]domain.Coordinate {
	segments := make([][]domain.Coordinate, 0, len(members))
	for _, m := range members {
		if m.Type != "way" || (m.Role != "outer" && m.Role != "") {
			continue
		}
		if len(m.Geometry) < 2 {
			continue
		}
		segments = append(segments, toCoordinates(m.Geometry))
	}
	return segments
}

// assembleRings склеивает отрезки по совпадающим концам, разворачивая их при необходимости.
// Незамкнутая цепочка из трех и более точек замыкается принудительно.
func assembleRings(segments [][]domain.Coordinate) []domain.Ring {
	pending := make([][]domain.Coordinate, 0, len(segments))
	for _, s := range segments {
		if len(s) >= 2 {
			pending = append(pending, s)
		}
	}

	var rings []domain.Ring
	for len(pending) > 0 {
		current := append([]domain.Coordinate(nil), pending[0]...)
		pending = pending[1:]

		for !closed(current) {
			joined := false
			for i, seg := range pending {
				head, tail := current[0], current[len(current)-1]
				switch {
				case seg[0] == tail:
					current = append(current, seg[1:]...)
				case seg[len(seg)-1] == tail:
					current = append(current, reversed(seg)[1:]...)
				case seg[len(seg)-1] == head:
					current = append(append([]domain.Coordinate(nil), seg[:len(seg)-1]...), current...)
				case seg[0] == head:
					rev := reversed(seg)
					current = append(rev[:len(rev)-1], current...)
				default:
					continue
				}
				pending = append(pending[:i:i], pending[i+1:]...)
				joined = true
				break
			}
			if !joined {
				break
			}
		}

		if !closed(current) && len(current) >= 3 {
			current = append(current, current[0])
		}
		if len(current) >= 4 {
			rings = append(rings, domain.Ring(current))
		}
	}
	return rings
}

func closed(c []domain.Coordinate) bool {
	return len(c) >= 4 && c[0] == c[len(c)-1]
}

func reversed(seg []domain.Coordinate) []domain.Coordinate {
	out := make([]domain.Coordinate, len(seg))
	for i, c := range seg {
		out[len(seg)-1-i] = c
	}
	return out
}
