package domain

import "time"

// TierKind - гранулярность административных границ
type TierKind string

const (
	TierContinent    TierKind = "continent"
	TierCountry      TierKind = "country"
	TierState        TierKind = "state"
	TierMunicipality TierKind = "municipality"
)

// Tier - неизменяемая конфигурация уровня данных, создается при старте процесса
type Tier struct {
	ID             string        `json:"id"`
	Kind           TierKind      `json:"kind"`
	ResolutionHint string        `json:"resolution_hint"`
	MinZoom        int           `json:"min_zoom"`
	MaxZoom        int           `json:"max_zoom"`
	AdminLevel     string        `json:"admin_level,omitempty"`
	QueryTemplate  string        `json:"-"`
	CacheTTL       time.Duration `json:"cache_ttl"`
	// ViewportSpanDeg - размер bbox вокруг точки-подсказки
	ViewportSpanDeg float64 `json:"viewport_span_deg"`
	// RegionCode заполнен только у региональных override-уровней
	RegionCode string `json:"region_code,omitempty"`
}

// AppliesTo - zoom попадает в диапазон уровня; MaxZoom < 0 означает открытый верх
func (t Tier) AppliesTo(zoom int) bool {
	if zoom < t.MinZoom {
		return false
	}
	return t.MaxZoom < 0 || zoom <= t.MaxZoom
}
