package postgresosm

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/domain"
	"github.com/boundary-resolver/internal/domain/repository"
)

type boundsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewBoundsRepository создает загрузчик bbox административных границ
func NewBoundsRepository(db *DB) repository.BoundsRepository {
	return &boundsRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

type boundsRow struct {
	Code  string  `db:"code"`
	Name  string  `db:"name"`
	West  float64 `db:"west"`
	South float64 `db:"south"`
	East  float64 `db:"east"`
	North float64 `db:"north"`
}

// LoadBounds считает bbox отношений boundary=administrative заданных уровней.
// Отношение в osm2pgsql может занимать несколько строк, поэтому группируем по osm_id.
func (r *boundsRepository) LoadBounds(ctx context.Context, adminLevels []string) ([]domain.RegionBounds, error) {
	query := fmt.Sprintf(`
		SELECT
			%s AS code,
			%s AS name,
			ST_XMin(ST_Extent(ST_Transform(way, %d))) AS west,
			ST_YMin(ST_Extent(ST_Transform(way, %d))) AS south,
			ST_XMax(ST_Extent(ST_Transform(way, %d))) AS east,
			ST_YMax(ST_Extent(ST_Transform(way, %d))) AS north
		FROM %s
		WHERE boundary = 'administrative'
			AND admin_level = ANY($1)
			AND osm_id < 0
		GROUP BY osm_id
		HAVING COUNT(way) > 0`,
		codeExpr, nameExpr, SRID4326, SRID4326, SRID4326, SRID4326, planetPolygonTable)

	var rows []boundsRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(adminLevels)); err != nil {
		r.logger.Error("Failed to load region bounds", zap.Strings("admin_levels", adminLevels), zap.Error(err))
		return nil, fmt.Errorf("load region bounds: %w", err)
	}

	result := make([]domain.RegionBounds, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		b := domain.RegionBounds{
			Code: strings.ToUpper(strings.TrimSpace(row.Code)),
			Name: strings.TrimSpace(row.Name),
			BBox: domain.BoundingBox{North: row.North, South: row.South, East: row.East, West: row.West},
		}
		if (b.Code == "" && b.Name == "") || !b.BBox.Valid() {
			skipped++
			continue
		}
		result = append(result, b)
	}

	r.logger.Info("Region bounds loaded",
		zap.Strings("admin_levels", adminLevels),
		zap.Int("loaded", len(result)),
		zap.Int("skipped", skipped))

	return result, nil
}
