package dto

import (
	"fmt"

	"github.com/boundary-resolver/internal/domain"
)

// BoundariesRequest - query-параметры GET /api/v1/boundaries.
// Подсказка региона задается одной формой: lat/lng, name или north/south/east/west.
type BoundariesRequest struct {
	Zoom  *int     `query:"zoom" validate:"required,min=0,max=24"`
	Lat   *float64 `query:"lat" validate:"omitempty,min=-90,max=90"`
	Lng   *float64 `query:"lng" validate:"omitempty,min=-180,max=180"`
	Name  string   `query:"name" validate:"omitempty,region_name"`
	North *float64 `query:"north" validate:"omitempty,min=-90,max=90"`
	South *float64 `query:"south" validate:"omitempty,min=-90,max=90"`
	East  *float64 `query:"east" validate:"omitempty,min=-180,max=180"`
	West  *float64 `query:"west" validate:"omitempty,min=-180,max=180"`
}

// Hint собирает подсказку региона; nil, если ни один параметр не задан
func (r *BoundariesRequest) Hint() (*domain.RegionHint, error) {
	hint := &domain.RegionHint{Lat: r.Lat, Lng: r.Lng, Name: r.Name}

	bboxParams := 0
	for _, v := range []*float64{r.North, r.South, r.East, r.West} {
		if v != nil {
			bboxParams++
		}
	}
	switch bboxParams {
	case 0:
	case 4:
		hint.BBox = &domain.BoundingBox{North: *r.North, South: *r.South, East: *r.East, West: *r.West}
	default:
		return nil, fmt.Errorf("bounding box requires north, south, east and west")
	}

	if hint.IsZero() {
		return nil, nil
	}
	if err := hint.Validate(); err != nil {
		return nil, err
	}
	return hint, nil
}
