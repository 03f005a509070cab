package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionHint_Validate(t *testing.T) {
	lat := 10.0
	tests := []struct {
		name    string
		hint    *RegionHint
		wantErr bool
	}{
		{name: "nil hint", hint: nil},
		{name: "empty hint", hint: &RegionHint{}},
		{name: "point", hint: PointHint(-15.78, -47.93)},
		{name: "name", hint: NameHint("Brazil")},
		{name: "bbox", hint: BBoxHint(BoundingBox{North: 5, South: -33, East: -34, West: -74})},
		{name: "lat without lng", hint: &RegionHint{Lat: &lat}, wantErr: true},
		{name: "out of range point", hint: PointHint(91, 0), wantErr: true},
		{name: "inverted bbox", hint: BBoxHint(BoundingBox{North: -33, South: 5, East: -34, West: -74}), wantErr: true},
		{
			name:    "two shapes",
			hint:    &RegionHint{Name: "Brazil", BBox: &BoundingBox{North: 5, South: -33, East: -34, West: -74}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hint.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegionHint_Key(t *testing.T) {
	var nilHint *RegionHint
	assert.Equal(t, "global", nilHint.Key())
	assert.Equal(t, "name:south africa", NameHint("  South   AFRICA ").Key())
	assert.Equal(t, PointHint(-15.7801, -47.9292).Key(), PointHint(-15.7799, -47.9304).Key())
	assert.Equal(t, "bbox:-33.000,-74.000,5.000,-34.000",
		BBoxHint(BoundingBox{North: 5, South: -33, East: -34, West: -74}).Key())
}

func TestQueryScope_Key(t *testing.T) {
	assert.Equal(t, "global", QueryScope{Kind: ScopeGlobal}.Key())
	assert.Equal(t, "global", QueryScope{Kind: ScopeBBox}.Key())
	assert.Equal(t, "area:BR", QueryScope{Kind: ScopeArea, AreaCode: "BR", AreaName: "Brazil"}.Key())
	assert.Equal(t, "area:name:Atlantis", QueryScope{Kind: ScopeArea, AreaName: "Atlantis"}.Key())
	assert.Equal(t, "bbox:-10.0004,-50,0,-40.25",
		QueryScope{Kind: ScopeBBox, BBox: &BoundingBox{South: -10.0004, West: -50, North: 0, East: -40.25}}.Key())
}

func TestBoundaryFeature_Clone(t *testing.T) {
	orig := BoundaryFeature{
		Name:             "Brazil",
		Geometry:         Geometry{Type: GeometryPolygon, Rings: []Ring{{{0, 0}, {1, 0}, {0, 0}}, {}}},
		SourceProperties: map[string]interface{}{"ISO3166-1": "BR"},
	}
	cp := orig.Clone()
	assert.Equal(t, orig, cp)

	cp.Geometry.Rings[0][0] = Coordinate{9, 9}
	cp.SourceProperties["ISO3166-1"] = "XX"
	assert.Equal(t, Coordinate{0, 0}, orig.Geometry.Rings[0][0])
	assert.Equal(t, "BR", orig.SourceProperties["ISO3166-1"])

	assert.Nil(t, CloneFeatures(nil))
	assert.Empty(t, CloneFeatures([]BoundaryFeature{}))
}

func TestNormalizeRegionName(t *testing.T) {
	assert.Equal(t, "sao paulo", NormalizeRegionName("  São   Paulo "))
	assert.Equal(t, "mexico", NormalizeRegionName("MÉXICO"))
	assert.Equal(t, NormalizeRegionName("Perú"), NormalizeRegionName("peru"))
	assert.Equal(t, "россия", NormalizeRegionName("Россия"))
	assert.Empty(t, NormalizeRegionName("   "))
}

func TestRing_IsClosed(t *testing.T) {
	assert.False(t, Ring{}.IsClosed())
	assert.True(t, Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}.IsClosed())
	assert.False(t, Ring{{0, 0}, {1, 0}, {1, 1}}.IsClosed())
}

func TestCircuitStatus_String(t *testing.T) {
	assert.Equal(t, "CLOSED", CircuitClosed.String())
	assert.Equal(t, "OPEN", CircuitOpen.String())
	assert.Equal(t, "HALF_OPEN", CircuitHalfOpen.String())
	assert.Equal(t, "UNKNOWN", CircuitStatus(42).String())
}
