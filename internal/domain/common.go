package domain

// Coordinate - пара (longitude, latitude), порядок как в GeoJSON
type Coordinate [2]float64

func (c Coordinate) Lng() float64 { return c[0] }
func (c Coordinate) Lat() float64 { return c[1] }

// Ring - упорядоченная последовательность точек одного полигона
type Ring []Coordinate

// IsClosed - первая точка совпадает с последней
func (r Ring) IsClosed() bool {
	return len(r) > 0 && r[0] == r[len(r)-1]
}

// BoundingBox задается сторонами света в градусах WGS84
type BoundingBox struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Valid проверяет диапазоны и порядок сторон; переход через антимеридиан не поддерживается
func (b BoundingBox) Valid() bool {
	if b.South < -90 || b.North > 90 || b.West < -180 || b.East > 180 {
		return false
	}
	return b.South < b.North && b.West < b.East
}

func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.South && lat <= b.North && lng >= b.West && lng <= b.East
}

// Area - площадь в квадратных градусах, используется только для сравнения
func (b BoundingBox) Area() float64 {
	return (b.North - b.South) * (b.East - b.West)
}
