package postgresosm

const (
	SRID4326 = 4326

	planetPolygonTable = "planet_osm_polygon"
)

const (
	// codeExpr - код ISO 3166-1 alpha-2 для стран и ISO 3166-2 для регионов
	codeExpr = `COALESCE(NULLIF(MAX(tags->'ISO3166-1'), ''), NULLIF(MAX(tags->'ISO3166-1:alpha2'), ''), NULLIF(MAX(tags->'ISO3166-2'), ''), '')`

	// nameExpr - английское имя, иначе локальное
	nameExpr = `COALESCE(NULLIF(MAX(tags->'name:en'), ''), NULLIF(MAX(name), ''), '')`
)
