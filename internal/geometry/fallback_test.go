package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundary-resolver/internal/domain"
)

func TestFallbackBoundsGenerator_Generate(t *testing.T) {
	regions := NewRegionRegistry(DefaultRegions())
	gen := NewFallbackBoundsGenerator(regions)

	for _, region := range DefaultRegions() {
		t.Run(region.Name, func(t *testing.T) {
			ring, ok := gen.Generate(region.Name)
			require.True(t, ok)
			require.Len(t, ring, 5)
			assert.True(t, ring.IsClosed())

			b := region.BBox
			assert.Equal(t, domain.Coordinate{b.West, b.South}, ring[0])
			assert.Equal(t, domain.Coordinate{b.East, b.South}, ring[1])
			assert.Equal(t, domain.Coordinate{b.East, b.North}, ring[2])
			assert.Equal(t, domain.Coordinate{b.West, b.North}, ring[3])
			assert.Equal(t, domain.Coordinate{b.West, b.South}, ring[4])
		})
	}
}

func TestFallbackBoundsGenerator_Unknown(t *testing.T) {
	gen := NewFallbackBoundsGenerator(NewRegionRegistry(DefaultRegions()))

	ring, ok := gen.Generate("Atlantis")
	assert.False(t, ok)
	assert.Nil(t, ring)
}

func TestFallbackBoundsGenerator_ForHint(t *testing.T) {
	gen := NewFallbackBoundsGenerator(NewRegionRegistry(DefaultRegions()))

	// Бразилиа: внутри и Южной Америки, и Бразилии - выбирается меньший bbox
	f, ok := gen.GenerateForHint(domain.PointHint(-15.78, -47.93), domain.TierCountry)
	require.True(t, ok)
	assert.Equal(t, "Brazil", f.Name)
	assert.Equal(t, domain.DegradationFallback, f.Degradation)
	assert.Equal(t, "BR", f.SourceProperties["region_code"])

	_, ok = gen.GenerateForHint(domain.PointHint(0, -140), domain.TierCountry)
	assert.False(t, ok, "open Pacific has no registered bounds")

	_, ok = gen.GenerateForHint(nil, domain.TierCountry)
	assert.False(t, ok)
}

func TestRegionRegistry_Merge(t *testing.T) {
	regions := NewRegionRegistry(DefaultRegions())
	before := regions.Len()

	merged := regions.Merge([]domain.RegionBounds{
		{Code: "RU", Name: "Russia", BBox: domain.BoundingBox{North: 80, South: 40, East: 179, West: 20}},
		{Code: "UY", Name: "Uruguay", BBox: domain.BoundingBox{North: -30.08, South: -34.97, East: -53.08, West: -58.44}},
		{Code: "XX", Name: "Broken", BBox: domain.BoundingBox{North: -10, South: 10, East: 0, West: 1}},
	})

	assert.Equal(t, 2, merged)
	assert.Equal(t, before+1, regions.Len())

	ru, ok := regions.Resolve("Russian Federation")
	require.True(t, ok)
	assert.Equal(t, 80.0, ru.BBox.North)
	assert.True(t, ru.SimplifiedByDefault, "problem flags survive a bbox refresh")

	uy, ok := regions.Resolve("uruguay")
	require.True(t, ok)
	assert.Equal(t, "UY", uy.Code)
}

func TestRegionRegistry_ResolveFoldsDiacritics(t *testing.T) {
	regions := NewRegionRegistry(DefaultRegions())

	r, ok := regions.Resolve("espana")
	require.True(t, ok)
	assert.Equal(t, "ES", r.Code)

	r, ok = regions.Resolve("PERÚ")
	require.True(t, ok)
	assert.Equal(t, "PE", r.Code)

	_, ok = regions.Resolve("Braz")
	assert.False(t, ok, "no prefix matching")
}
