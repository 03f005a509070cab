package geometry

import (
	"strings"
	"sync"

	"github.com/boundary-resolver/internal/domain"
)

// Region - каноническая запись о регионе: код ISO 3166-1 alpha-2 (или код континента),
// псевдонимы, bbox и признаки проблемной геометрии.
type Region struct {
	Code    string
	Name    string
	Aliases []string
	BBox    *domain.BoundingBox
	// Continent - запись описывает континент, а не страну
	Continent bool
	// ProblemNote заполнен для регионов с заведомо тяжелой геометрией
	ProblemNote string
	// SimplifiedByDefault - всегда отдавать резервный прямоугольник
	SimplifiedByDefault bool
}

func (r Region) Problematic() bool {
	return r.ProblemNote != ""
}

// RegionRegistry - таблица регионов с поиском по коду, псевдониму и точке.
// Поиск по имени только точный (после нормализации), без подстрок.
type RegionRegistry struct {
	mu      sync.RWMutex
	byCode  map[string]*Region
	byAlias map[string]string
}

func NewRegionRegistry(regions []Region) *RegionRegistry {
	r := &RegionRegistry{
		byCode:  make(map[string]*Region, len(regions)),
		byAlias: make(map[string]string, len(regions)*3),
	}
	for _, region := range regions {
		r.add(region)
	}
	return r
}

func (r *RegionRegistry) add(region Region) {
	code := strings.ToUpper(strings.TrimSpace(region.Code))
	region.Code = code
	stored := region
	r.byCode[code] = &stored
	r.byAlias[domain.NormalizeRegionName(code)] = code
	r.byAlias[domain.NormalizeRegionName(region.Name)] = code
	for _, alias := range region.Aliases {
		r.byAlias[domain.NormalizeRegionName(alias)] = code
	}
}

// Resolve ищет регион по коду или имени
func (r *RegionRegistry) Resolve(nameOrCode string) (Region, bool) {
	key := domain.NormalizeRegionName(nameOrCode)
	if key == "" {
		return Region{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	code, ok := r.byAlias[key]
	if !ok {
		return Region{}, false
	}
	return *r.byCode[code], true
}

// Locate возвращает регион с наименьшим bbox, содержащим точку
func (r *RegionRegistry) Locate(lat, lng float64) (Region, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *Region
	for _, region := range r.byCode {
		if region.BBox == nil || !region.BBox.Contains(lat, lng) {
			continue
		}
		if best == nil || region.BBox.Area() < best.BBox.Area() ||
			(region.BBox.Area() == best.BBox.Area() && region.Code < best.Code) {
			best = region
		}
	}
	if best == nil {
		return Region{}, false
	}
	return *best, true
}

// ResolveHint сводит подсказку к региону: по имени, точке или центру bbox
func (r *RegionRegistry) ResolveHint(hint *domain.RegionHint) (Region, bool) {
	switch {
	case hint.IsZero():
		return Region{}, false
	case strings.TrimSpace(hint.Name) != "":
		return r.Resolve(hint.Name)
	case hint.HasPoint():
		return r.Locate(*hint.Lat, *hint.Lng)
	case hint.BBox != nil:
		return r.Locate((hint.BBox.North+hint.BBox.South)/2, (hint.BBox.East+hint.BBox.West)/2)
	default:
		return Region{}, false
	}
}

// Merge добавляет bbox, загруженные из базы. Существующие записи получают новый bbox,
// признаки проблемности сохраняются. Возвращает число добавленных или обновленных записей.
func (r *RegionRegistry) Merge(bounds []domain.RegionBounds) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	merged := 0
	for _, b := range bounds {
		if !b.BBox.Valid() {
			continue
		}
		bbox := b.BBox
		code := strings.ToUpper(strings.TrimSpace(b.Code))
		if code == "" {
			if existing, ok := r.byAlias[domain.NormalizeRegionName(b.Name)]; ok {
				code = existing
			} else {
				code = domain.NormalizeRegionName(b.Name)
			}
		}
		if code == "" {
			continue
		}

		if existing, ok := r.byCode[code]; ok {
			existing.BBox = &bbox
			if b.Name != "" {
				r.byAlias[domain.NormalizeRegionName(b.Name)] = code
			}
		} else {
			r.add(Region{Code: code, Name: b.Name, BBox: &bbox})
		}
		merged++
	}
	return merged
}

// Len - число зарегистрированных регионов
func (r *RegionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCode)
}

func bbox(north, south, east, west float64) *domain.BoundingBox {
	return &domain.BoundingBox{North: north, South: south, East: east, West: west}
}

// DefaultRegions - встроенные континенты и страны с приблизительными bbox
func DefaultRegions() []Region {
	return []Region{
		// Континенты
		{Code: "AF", Name: "Africa", Continent: true, BBox: bbox(37.35, -34.84, 51.42, -17.63)},
		{Code: "AS", Name: "Asia", Continent: true, BBox: bbox(81.30, -11.00, 180.00, 25.00)},
		{Code: "EU", Name: "Europe", Continent: true, BBox: bbox(71.20, 34.80, 45.00, -25.00)},
		{Code: "NA", Name: "North America", Continent: true, BBox: bbox(83.70, 7.20, -52.60, -168.00)},
		{Code: "SA", Name: "South America", Continent: true, BBox: bbox(12.50, -56.00, -34.80, -81.40)},
		{Code: "OC", Name: "Oceania", Continent: true, BBox: bbox(20.00, -47.30, 180.00, 110.90)},
		{
			Code: "AQ", Name: "Antarctica", Continent: true, BBox: bbox(-60.00, -90.00, 180.00, -180.00),
			ProblemNote: "ice shelf geometry exceeds provider limits", SimplifiedByDefault: true,
		},

		// Страны с заведомо тяжелой геометрией
		{
			Code: "RU", Name: "Russia", Aliases: []string{"Russian Federation", "Россия"},
			BBox:        bbox(81.86, 41.19, 180.00, 19.64),
			ProblemNote: "very large multipolygon spanning the antimeridian", SimplifiedByDefault: true,
		},
		{
			Code: "CA", Name: "Canada", BBox: bbox(83.11, 41.68, -52.62, -141.00),
			ProblemNote: "arctic archipelago with thousands of islands",
		},
		{
			Code: "US", Name: "United States", Aliases: []string{"United States of America", "USA"},
			BBox:        bbox(71.39, 18.91, -66.95, -179.15),
			ProblemNote: "non-contiguous territory",
		},
		{
			Code: "GL", Name: "Greenland", BBox: bbox(83.63, 59.78, -11.31, -73.04),
			ProblemNote: "fjord coastline with high point density",
		},
		{
			Code: "ID", Name: "Indonesia", BBox: bbox(6.08, -11.00, 141.02, 95.01),
			ProblemNote: "archipelago with thousands of islands",
		},
		{
			Code: "NO", Name: "Norway", BBox: bbox(71.19, 57.96, 31.29, 4.50),
			ProblemNote: "fjord coastline with high point density",
		},
		{
			Code: "CL", Name: "Chile", BBox: bbox(-17.50, -55.98, -66.42, -75.64),
			ProblemNote: "fragmented southern coastline",
		},
		{
			Code: "PH", Name: "Philippines", BBox: bbox(21.12, 4.59, 126.60, 116.93),
			ProblemNote: "archipelago with thousands of islands",
		},

		// Остальные страны
		{Code: "BR", Name: "Brazil", Aliases: []string{"Brasil"}, BBox: bbox(5.27, -33.75, -34.79, -73.99)},
		{Code: "AR", Name: "Argentina", BBox: bbox(-21.78, -55.06, -53.59, -73.58)},
		{Code: "MX", Name: "Mexico", Aliases: []string{"México"}, BBox: bbox(32.72, 14.53, -86.71, -118.40)},
		{Code: "CO", Name: "Colombia", BBox: bbox(13.39, -4.23, -66.85, -81.73)},
		{Code: "PE", Name: "Peru", Aliases: []string{"Perú"}, BBox: bbox(-0.04, -18.35, -68.65, -81.33)},
		{Code: "CN", Name: "China", BBox: bbox(53.56, 18.16, 134.77, 73.50)},
		{Code: "IN", Name: "India", BBox: bbox(35.67, 6.75, 97.40, 68.11)},
		{Code: "JP", Name: "Japan", BBox: bbox(45.55, 24.25, 145.82, 122.93)},
		{Code: "AU", Name: "Australia", BBox: bbox(-10.06, -43.64, 153.64, 112.92)},
		{Code: "DE", Name: "Germany", Aliases: []string{"Deutschland"}, BBox: bbox(55.06, 47.27, 15.04, 5.87)},
		{Code: "FR", Name: "France", BBox: bbox(51.09, 41.33, 9.56, -5.14)},
		{Code: "ES", Name: "Spain", Aliases: []string{"España"}, BBox: bbox(43.79, 36.00, 3.32, -9.30)},
		{Code: "PT", Name: "Portugal", BBox: bbox(42.15, 36.96, -6.19, -9.50)},
		{Code: "GB", Name: "United Kingdom", Aliases: []string{"UK", "Great Britain"}, BBox: bbox(60.86, 49.96, 1.76, -8.65)},
		{Code: "IT", Name: "Italy", Aliases: []string{"Italia"}, BBox: bbox(47.09, 36.65, 18.52, 6.63)},
		{Code: "NG", Name: "Nigeria", BBox: bbox(13.89, 4.27, 14.68, 2.69)},
		{Code: "ZA", Name: "South Africa", BBox: bbox(-22.13, -34.84, 32.89, 16.46)},
		{Code: "EG", Name: "Egypt", BBox: bbox(31.67, 22.00, 36.90, 24.70)},
		{Code: "KE", Name: "Kenya", BBox: bbox(5.02, -4.68, 41.91, 33.91)},
	}
}
