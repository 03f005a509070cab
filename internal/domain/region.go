package domain

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/boundary-resolver/internal/pkg/utils"
)

// RegionHint сужает запрос: точка, имя региона или bbox. Ровно одна форма.
type RegionHint struct {
	Lat  *float64     `json:"lat,omitempty"`
	Lng  *float64     `json:"lng,omitempty"`
	Name string       `json:"name,omitempty"`
	BBox *BoundingBox `json:"bbox,omitempty"`
}

// PointHint создает подсказку по координатам
func PointHint(lat, lng float64) *RegionHint {
	return &RegionHint{Lat: &lat, Lng: &lng}
}

// NameHint создает подсказку по имени региона
func NameHint(name string) *RegionHint {
	return &RegionHint{Name: name}
}

// BBoxHint создает подсказку по bbox
func BBoxHint(b BoundingBox) *RegionHint {
	return &RegionHint{BBox: &b}
}

func (h *RegionHint) IsZero() bool {
	return h == nil || (h.Lat == nil && h.Lng == nil && strings.TrimSpace(h.Name) == "" && h.BBox == nil)
}

func (h *RegionHint) HasPoint() bool {
	return h != nil && h.Lat != nil && h.Lng != nil
}

// Validate проверяет форму подсказки; nil и пустая подсказка валидны
func (h *RegionHint) Validate() error {
	if h.IsZero() {
		return nil
	}

	shapes := 0
	if h.Lat != nil || h.Lng != nil {
		if !h.HasPoint() {
			return fmt.Errorf("both lat and lng are required")
		}
		if !utils.ValidateCoordinates(*h.Lat, *h.Lng) {
			return fmt.Errorf("coordinates out of range: lat=%f lng=%f", *h.Lat, *h.Lng)
		}
		shapes++
	}
	if strings.TrimSpace(h.Name) != "" {
		shapes++
	}
	if h.BBox != nil {
		if !h.BBox.Valid() {
			return fmt.Errorf("invalid bounding box: %+v", *h.BBox)
		}
		shapes++
	}

	if shapes != 1 {
		return fmt.Errorf("exactly one of point, name or bbox must be set, got %d", shapes)
	}
	return nil
}

// Key - канонический ключ подсказки для ответа и логов; точки округляются до 0.01°
func (h *RegionHint) Key() string {
	switch {
	case h.IsZero():
		return "global"
	case h.HasPoint():
		return fmt.Sprintf("pt:%.2f,%.2f", utils.RoundCoordinate(*h.Lat, 2), utils.RoundCoordinate(*h.Lng, 2))
	case h.BBox != nil:
		return fmt.Sprintf("bbox:%.3f,%.3f,%.3f,%.3f", h.BBox.South, h.BBox.West, h.BBox.North, h.BBox.East)
	default:
		return "name:" + NormalizeRegionName(h.Name)
	}
}

// NormalizeRegionName убирает диакритику, приводит имя к нижнему регистру и схлопывает пробелы
func NormalizeRegionName(name string) string {
	// transform.Chain хранит состояние, поэтому создается на каждый вызов
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// RegionBounds - зарегистрированный bbox региона для резервной геометрии
type RegionBounds struct {
	Code string      `json:"code" db:"code"`
	Name string      `json:"name" db:"name"`
	BBox BoundingBox `json:"bbox"`
}
