package tier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/geometry"
)

func newTestSelector() *Selector {
	return NewSelector(DefaultCatalog(), geometry.NewRegionRegistry(geometry.DefaultRegions()))
}

func TestSelector_ZoomRanges(t *testing.T) {
	s := newTestSelector()

	tests := []struct {
		zoom     int
		expected string
	}{
		{zoom: -5, expected: "continents"},
		{zoom: 0, expected: "continents"},
		{zoom: 3, expected: "continents"},
		{zoom: 4, expected: "countries"},
		{zoom: 6, expected: "countries"},
		{zoom: 7, expected: "states"},
		{zoom: 9, expected: "states"},
		{zoom: 10, expected: "municipalities"},
		{zoom: 18, expected: "municipalities"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, s.Select(tt.zoom, nil).ID, "zoom %d", tt.zoom)
	}
}

func TestSelector_Deterministic(t *testing.T) {
	s := newTestSelector()
	hint := domain.NameHint("Brazil")

	for z := -2; z <= 22; z++ {
		first := s.Select(z, hint)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, s.Select(z, hint))
		}
	}
}

func TestSelector_ContinentIgnoresHint(t *testing.T) {
	s := newTestSelector()

	hints := []*domain.RegionHint{
		nil,
		domain.NameHint("Brazil"),
		domain.PointHint(-15.78, -47.93),
		domain.BBoxHint(domain.BoundingBox{North: 5, South: -33, East: -34, West: -74}),
	}
	for _, h := range hints {
		assert.Equal(t, domain.TierContinent, s.Select(2, h).Kind)
	}
}

func TestSelector_RegionOverride(t *testing.T) {
	s := newTestSelector()

	assert.Equal(t, "municipalities-br", s.Select(12, domain.NameHint("Brasil")).ID)
	assert.Equal(t, "municipalities-br", s.Select(10, domain.PointHint(-23.55, -46.63)).ID)
	assert.Equal(t, "counties-us", s.Select(11, domain.NameHint("USA")).ID)
	assert.Equal(t, "municipalities", s.Select(12, domain.NameHint("Germany")).ID)
	// override действует только начиная с zoom 10
	assert.Equal(t, "states", s.Select(9, domain.NameHint("Brazil")).ID)
}

func TestSelector_SelectFloat(t *testing.T) {
	s := newTestSelector()

	assert.Equal(t, "continents", s.SelectFloat(math.NaN(), nil).ID)
	assert.Equal(t, "continents", s.SelectFloat(math.Inf(1), nil).ID)
	assert.Equal(t, "countries", s.SelectFloat(6.9, nil).ID)
	assert.Equal(t, "states", s.SelectFloat(7.0, nil).ID)
}

func TestCatalog_Validation(t *testing.T) {
	_, err := NewCatalog(DefaultTiers()[:2])
	assert.Error(t, err)

	c := DefaultCatalog()
	err = c.RegisterOverride(domain.Tier{ID: "x", Kind: domain.TierState, RegionCode: "DE"})
	assert.Error(t, err)

	require.NoError(t, c.RegisterOverride(domain.Tier{ID: "gemeinden-de", Kind: domain.TierMunicipality, RegionCode: "de"}))
	o, ok := c.Override("DE")
	require.True(t, ok)
	assert.Equal(t, "gemeinden-de", o.ID)

	byID, ok := c.ByID("counties-us")
	require.True(t, ok)
	assert.Equal(t, "US", byID.RegionCode)
	assert.Len(t, c.Tiers(), 4)
}
