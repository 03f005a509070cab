package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/geometry"
	"github.com/boundary-resolver/internal/pkg/utils"
)

const (
	// Серверный таймаут Overpass, секунды
	serverTimeout = 25

	maxSizeFull       = 536870912 // 512 MiB
	maxSizeSimplified = 67108864  // 64 MiB

	auxiliaryFilters = `["type"="boundary"]["name"]`
	searchAreaName   = "searchArea"
)

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-z_]+)\s*\}\}`)

// RegionLookup сводит имя региона к канонической записи
type RegionLookup interface {
	Resolve(nameOrCode string) (geometry.Region, bool)
}

// Builder собирает текст запроса Overpass QL из шаблона уровня и области поиска
type Builder struct {
	regions RegionLookup
}

func NewBuilder(regions RegionLookup) *Builder {
	return &Builder{regions: regions}
}

// ScopeFor выводит область запроса из подсказки.
// Точка превращается в bbox размером tier.ViewportSpanDeg вокруг точки, округленной до 0.01°.
// Границы bbox округляются до 1e-4°; на уровне континентов область всегда глобальная.
func (b *Builder) ScopeFor(tier domain.Tier, hint *domain.RegionHint) domain.QueryScope {
	if hint.IsZero() || tier.Kind == domain.TierContinent {
		return domain.QueryScope{Kind: domain.ScopeGlobal}
	}

	switch {
	case strings.TrimSpace(hint.Name) != "":
		return b.nameScope(hint.Name)
	case hint.HasPoint():
		if tier.ViewportSpanDeg <= 0 {
			return domain.QueryScope{Kind: domain.ScopeGlobal}
		}
		lat := utils.RoundCoordinate(*hint.Lat, 2)
		lng := utils.RoundCoordinate(*hint.Lng, 2)
		half := tier.ViewportSpanDeg / 2
		box := domain.BoundingBox{
			South: utils.RoundCoordinate(clamp(lat-half, -90, 90), 4),
			North: utils.RoundCoordinate(clamp(lat+half, -90, 90), 4),
			West:  utils.RoundCoordinate(clamp(lng-half, -180, 180), 4),
			East:  utils.RoundCoordinate(clamp(lng+half, -180, 180), 4),
		}
		return domain.QueryScope{Kind: domain.ScopeBBox, BBox: &box}
	case hint.BBox != nil:
		box := domain.BoundingBox{
			South: utils.RoundCoordinate(hint.BBox.South, 4),
			North: utils.RoundCoordinate(hint.BBox.North, 4),
			West:  utils.RoundCoordinate(hint.BBox.West, 4),
			East:  utils.RoundCoordinate(hint.BBox.East, 4),
		}
		return domain.QueryScope{Kind: domain.ScopeBBox, BBox: &box}
	default:
		return domain.QueryScope{Kind: domain.ScopeGlobal}
	}
}

func (b *Builder) nameScope(name string) domain.QueryScope {
	if b.regions != nil {
		if region, ok := b.regions.Resolve(name); ok {
			// континентов нет среди area в OSM, ограничиваем их bbox
			if region.Continent && region.BBox != nil {
				box := *region.BBox
				return domain.QueryScope{Kind: domain.ScopeBBox, BBox: &box}
			}
			return domain.QueryScope{Kind: domain.ScopeArea, AreaCode: region.Code, AreaName: region.Name}
		}
	}
	return domain.QueryScope{Kind: domain.ScopeArea, AreaName: strings.TrimSpace(name)}
}

// Build заполняет шаблон уровня. Упрощенный вариант убирает вспомогательные фильтры
// и ужимает maxsize. Ошибка только для неизвестного плейсхолдера.
func (b *Builder) Build(tier domain.Tier, scope domain.QueryScope, simplified bool) (domain.Query, error) {
	values := map[string]string{
		"timeout":     strconv.Itoa(serverTimeout),
		"maxsize":     strconv.Itoa(maxSizeFull),
		"admin_level": tier.AdminLevel,
		"filters":     auxiliaryFilters,
		"out":         "out geom;",
		"area":        "",
		"scope":       "",
	}
	if simplified {
		values["maxsize"] = strconv.Itoa(maxSizeSimplified)
		values["filters"] = ""
		values["out"] = "out geom qt;"
	}

	switch scope.Kind {
	case domain.ScopeBBox:
		if scope.BBox != nil {
			values["scope"] = fmt.Sprintf("(%s,%s,%s,%s)",
				formatDeg(scope.BBox.South), formatDeg(scope.BBox.West),
				formatDeg(scope.BBox.North), formatDeg(scope.BBox.East))
		}
	case domain.ScopeArea:
		if selector := areaSelector(scope); selector != "" {
			values["area"] = fmt.Sprintf("area%s->.%s;\n", selector, searchAreaName)
			values["scope"] = fmt.Sprintf("(area.%s)", searchAreaName)
		}
	}

	var unknown []string
	text := placeholderRe.ReplaceAllStringFunc(tier.QueryTemplate, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		v, ok := values[name]
		if !ok {
			unknown = append(unknown, name)
			return m
		}
		return v
	})
	if len(unknown) > 0 {
		return domain.Query{}, fmt.Errorf("tier %s: unknown template placeholder %q", tier.ID, unknown[0])
	}

	return domain.Query{
		TierID:     tier.ID,
		Kind:       tier.Kind,
		Text:       text,
		Simplified: simplified,
		Scope:      scope,
	}, nil
}

func areaSelector(scope domain.QueryScope) string {
	switch {
	case scope.AreaCode != "":
		return fmt.Sprintf(`["ISO3166-1"="%s"]["admin_level"="2"]`, escape(scope.AreaCode))
	case scope.AreaName != "":
		return fmt.Sprintf(`["name:en"="%s"]`, escape(scope.AreaName))
	default:
		return ""
	}
}

// escape экранирует значение для строкового литерала Overpass QL
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

func formatDeg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
