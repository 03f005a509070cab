package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/geometry"
	"github.com/boundary-resolver/internal/tier"
)

func newTestBuilder() (*Builder, *tier.Catalog) {
	return NewBuilder(geometry.NewRegionRegistry(geometry.DefaultRegions())), tier.DefaultCatalog()
}

func TestBuild_Global(t *testing.T) {
	b, catalog := newTestBuilder()
	continents := catalog.ByKind(domain.TierContinent)

	q, err := b.Build(continents, domain.QueryScope{Kind: domain.ScopeGlobal}, false)
	require.NoError(t, err)

	assert.Equal(t, "continents", q.TierID)
	assert.False(t, q.Simplified)
	assert.Contains(t, q.Text, `[out:json][timeout:25][maxsize:536870912];`)
	assert.Contains(t, q.Text, `relation["boundary"="administrative"]["admin_level"="2"]["type"="boundary"]["name"];`)
	assert.True(t, strings.HasSuffix(q.Text, "out geom;"))
	assert.NotContains(t, q.Text, "{{")
}

func TestBuild_BBoxScope(t *testing.T) {
	b, catalog := newTestBuilder()
	states := catalog.ByKind(domain.TierState)
	box := domain.BoundingBox{North: 10, South: -5.5, East: 20.25, West: 3}

	q, err := b.Build(states, domain.QueryScope{Kind: domain.ScopeBBox, BBox: &box}, false)
	require.NoError(t, err)

	assert.Contains(t, q.Text, `["admin_level"="4"]["type"="boundary"]["name"](-5.5,3,10,20.25);`)
}

func TestBuild_AreaScope(t *testing.T) {
	b, catalog := newTestBuilder()
	countries := catalog.ByKind(domain.TierCountry)

	q, err := b.Build(countries, b.ScopeFor(countries, domain.NameHint("Brasil")), false)
	require.NoError(t, err)
	assert.Contains(t, q.Text, `area["ISO3166-1"="BR"]["admin_level"="2"]->.searchArea;`)
	assert.Contains(t, q.Text, `(area.searchArea);`)

	q, err = b.Build(countries, domain.QueryScope{Kind: domain.ScopeArea, AreaName: `Foo "Bar"`}, false)
	require.NoError(t, err)
	assert.Contains(t, q.Text, `area["name:en"="Foo \"Bar\""]->.searchArea;`)
}

func TestBuild_SimplifiedDropsAuxiliaryFilters(t *testing.T) {
	b, catalog := newTestBuilder()
	municipalities := catalog.ByKind(domain.TierMunicipality)
	scope := domain.QueryScope{Kind: domain.ScopeGlobal}

	full, err := b.Build(municipalities, scope, false)
	require.NoError(t, err)
	simplified, err := b.Build(municipalities, scope, true)
	require.NoError(t, err)

	assert.True(t, simplified.Simplified)
	assert.NotContains(t, simplified.Text, `["type"="boundary"]`)
	assert.NotContains(t, simplified.Text, `["name"]`)
	assert.Contains(t, simplified.Text, "[maxsize:67108864]")
	assert.True(t, strings.HasSuffix(simplified.Text, "out geom qt;"))
	assert.Less(t, len(simplified.Text), len(full.Text))
}

func TestBuild_UnknownPlaceholder(t *testing.T) {
	b, _ := newTestBuilder()
	broken := domain.Tier{ID: "broken", Kind: domain.TierState, QueryTemplate: `relation{{scope}}{{bogus}};`}

	_, err := b.Build(broken, domain.QueryScope{Kind: domain.ScopeGlobal}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestBuild_Deterministic(t *testing.T) {
	b, catalog := newTestBuilder()
	for _, tr := range catalog.Tiers() {
		scope := b.ScopeFor(tr, domain.PointHint(48.85, 2.35))
		first, err := b.Build(tr, scope, false)
		require.NoError(t, err)
		second, err := b.Build(tr, scope, false)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestScopeFor(t *testing.T) {
	b, catalog := newTestBuilder()
	states := catalog.ByKind(domain.TierState)

	t.Run("no hint is global", func(t *testing.T) {
		assert.Equal(t, domain.ScopeGlobal, b.ScopeFor(states, nil).Kind)
	})

	t.Run("continent tier ignores hint", func(t *testing.T) {
		scope := b.ScopeFor(catalog.ByKind(domain.TierContinent), domain.NameHint("Brazil"))
		assert.Equal(t, domain.ScopeGlobal, scope.Kind)
	})

	t.Run("point becomes viewport bbox", func(t *testing.T) {
		scope := b.ScopeFor(states, domain.PointHint(-15.78, -47.93))
		require.Equal(t, domain.ScopeBBox, scope.Kind)
		assert.InDelta(t, -21.78, scope.BBox.South, 1e-9)
		assert.InDelta(t, -9.78, scope.BBox.North, 1e-9)
		assert.InDelta(t, -53.93, scope.BBox.West, 1e-9)
		assert.InDelta(t, -41.93, scope.BBox.East, 1e-9)
	})

	t.Run("nearby points share a scope", func(t *testing.T) {
		a := b.ScopeFor(states, domain.PointHint(-15.781, -47.929))
		c := b.ScopeFor(states, domain.PointHint(-15.779, -47.931))
		assert.Equal(t, a, c)
	})

	t.Run("viewport clamped at the pole", func(t *testing.T) {
		scope := b.ScopeFor(states, domain.PointHint(89, 179))
		assert.Equal(t, 90.0, scope.BBox.North)
		assert.Equal(t, 180.0, scope.BBox.East)
	})

	t.Run("continent name uses its bbox", func(t *testing.T) {
		scope := b.ScopeFor(states, domain.NameHint("Europe"))
		require.Equal(t, domain.ScopeBBox, scope.Kind)
		assert.Equal(t, 71.2, scope.BBox.North)
	})

	t.Run("bbox hint rounded to query precision", func(t *testing.T) {
		scope := b.ScopeFor(states, domain.BBoxHint(domain.BoundingBox{North: 0.00004, South: -10.00049, East: -40, West: -50.12346}))
		require.Equal(t, domain.ScopeBBox, scope.Kind)
		assert.Equal(t, domain.BoundingBox{North: 0, South: -10.0005, East: -40, West: -50.1235}, *scope.BBox)

		q, err := b.Build(states, scope, false)
		require.NoError(t, err)
		assert.Contains(t, q.Text, "(-10.0005,-50.1235,0,-40)")
	})

	t.Run("scope key follows the query", func(t *testing.T) {
		a := b.ScopeFor(states, domain.BBoxHint(domain.BoundingBox{North: 1, South: 0, East: 1, West: 0}))
		c := b.ScopeFor(states, domain.BBoxHint(domain.BoundingBox{North: 1, South: 0.0004, East: 1, West: 0}))
		assert.NotEqual(t, a.Key(), c.Key())

		continents := catalog.ByKind(domain.TierContinent)
		assert.Equal(t, "global", b.ScopeFor(continents, domain.PointHint(10, 20)).Key())
		assert.Equal(t, b.ScopeFor(states, domain.NameHint("Brazil")).Key(), b.ScopeFor(states, domain.NameHint("brasil")).Key())
	})

	t.Run("unknown name keeps the name", func(t *testing.T) {
		scope := b.ScopeFor(states, domain.NameHint("  Atlantis "))
		assert.Equal(t, domain.QueryScope{Kind: domain.ScopeArea, AreaName: "Atlantis"}, scope)
	})
}
