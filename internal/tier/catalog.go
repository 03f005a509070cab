package tier

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/boundary-resolver/internal/domain"
)

// Шаблон Overpass QL. Плейсхолдеры заполняет query.Builder.
const relationTemplate = `[out:json][timeout:{{timeout}}][maxsize:{{maxsize}}];
{{area}}relation["boundary"="administrative"]["admin_level"="{{admin_level}}"]{{filters}}{{scope}};
{{out}}`

const ibgeTemplate = `[out:json][timeout:{{timeout}}][maxsize:{{maxsize}}];
{{area}}relation["boundary"="administrative"]["admin_level"="{{admin_level}}"]["IBGE:GEOCODIGO"]{{filters}}{{scope}};
{{out}}`

// Catalog - реестр уровней данных. Общие уровни задаются при создании,
// региональные override-уровни регистрируются только на старте процесса.
type Catalog struct {
	mu        sync.RWMutex
	tiers     []domain.Tier
	byKind    map[domain.TierKind]domain.Tier
	overrides map[string]domain.Tier
}

// NewCatalog создает каталог; tiers должны покрывать все четыре вида
func NewCatalog(tiers []domain.Tier) (*Catalog, error) {
	c := &Catalog{
		byKind:    make(map[domain.TierKind]domain.Tier, len(tiers)),
		overrides: make(map[string]domain.Tier),
	}
	for _, t := range tiers {
		if t.RegionCode != "" {
			if err := c.RegisterOverride(t); err != nil {
				return nil, err
			}
			continue
		}
		if _, exists := c.byKind[t.Kind]; exists {
			return nil, fmt.Errorf("duplicate tier kind %q", t.Kind)
		}
		c.byKind[t.Kind] = t
		c.tiers = append(c.tiers, t)
	}
	for _, kind := range []domain.TierKind{domain.TierContinent, domain.TierCountry, domain.TierState, domain.TierMunicipality} {
		if _, ok := c.byKind[kind]; !ok {
			return nil, fmt.Errorf("missing tier for kind %q", kind)
		}
	}
	return c, nil
}

// DefaultCatalog - континенты, страны, регионы, муниципалитеты и overrides для BR и US
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultTiers())
	if err != nil {
		panic(fmt.Sprintf("invalid default tier catalog: %v", err))
	}
	return c
}

func DefaultTiers() []domain.Tier {
	return []domain.Tier{
		{
			ID: "continents", Kind: domain.TierContinent, ResolutionHint: "coarse",
			MinZoom: 0, MaxZoom: 3, AdminLevel: "2", QueryTemplate: relationTemplate,
			CacheTTL: 24 * time.Hour,
		},
		{
			ID: "countries", Kind: domain.TierCountry, ResolutionHint: "low",
			MinZoom: 4, MaxZoom: 6, AdminLevel: "2", QueryTemplate: relationTemplate,
			CacheTTL: 12 * time.Hour, ViewportSpanDeg: 40,
		},
		{
			ID: "states", Kind: domain.TierState, ResolutionHint: "medium",
			MinZoom: 7, MaxZoom: 9, AdminLevel: "4", QueryTemplate: relationTemplate,
			CacheTTL: 6 * time.Hour, ViewportSpanDeg: 12,
		},
		{
			ID: "municipalities", Kind: domain.TierMunicipality, ResolutionHint: "high",
			MinZoom: 10, MaxZoom: -1, AdminLevel: "8", QueryTemplate: relationTemplate,
			CacheTTL: time.Hour, ViewportSpanDeg: 1.5,
		},
		{
			ID: "municipalities-br", Kind: domain.TierMunicipality, ResolutionHint: "high",
			MinZoom: 10, MaxZoom: -1, AdminLevel: "8", QueryTemplate: ibgeTemplate,
			CacheTTL: time.Hour, ViewportSpanDeg: 2, RegionCode: "BR",
		},
		{
			ID: "counties-us", Kind: domain.TierMunicipality, ResolutionHint: "high",
			MinZoom: 10, MaxZoom: -1, AdminLevel: "6", QueryTemplate: relationTemplate,
			CacheTTL: time.Hour, ViewportSpanDeg: 2, RegionCode: "US",
		},
	}
}

// RegisterOverride добавляет плотный региональный набор данных для муниципального уровня
func (c *Catalog) RegisterOverride(t domain.Tier) error {
	code := strings.ToUpper(strings.TrimSpace(t.RegionCode))
	if code == "" {
		return fmt.Errorf("override tier %q has no region code", t.ID)
	}
	if t.Kind != domain.TierMunicipality {
		return fmt.Errorf("override tier %q must be of kind %q", t.ID, domain.TierMunicipality)
	}
	t.RegionCode = code

	c.mu.Lock()
	defer c.mu.Unlock()
	c.overrides[code] = t
	return nil
}

// Tiers возвращает общие уровни в порядке от грубого к детальному
func (c *Catalog) Tiers() []domain.Tier {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Tier, len(c.tiers))
	copy(out, c.tiers)
	return out
}

func (c *Catalog) ByKind(kind domain.TierKind) domain.Tier {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byKind[kind]
}

func (c *Catalog) ByID(id string) (domain.Tier, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tiers {
		if t.ID == id {
			return t, true
		}
	}
	for _, t := range c.overrides {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Tier{}, false
}

// Coarsest - уровень континентов
func (c *Catalog) Coarsest() domain.Tier {
	return c.ByKind(domain.TierContinent)
}

// Override возвращает региональный уровень по коду региона
func (c *Catalog) Override(regionCode string) (domain.Tier, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.overrides[strings.ToUpper(regionCode)]
	return t, ok
}
