package postgresosm

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/domain"
)

func newMockRepository(t *testing.T) (*boundsRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := NewDBForTest(sqlx.NewDb(mockDB, "sqlmock"), zap.NewNop())
	return NewBoundsRepository(db).(*boundsRepository), mock
}

func TestBoundsRepository_LoadBounds(t *testing.T) {
	levels := []string{"2", "4"}

	t.Run("maps rows and skips unusable ones", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		rows := sqlmock.NewRows([]string{"code", "name", "west", "south", "east", "north"}).
			AddRow("br", "Brazil", -73.99, -33.75, -34.79, 5.27).
			AddRow("", "São Paulo", -53.11, -25.31, -44.16, -19.78).
			AddRow("", "", 1.0, 1.0, 2.0, 2.0).
			AddRow("XX", "Broken", 10.0, 20.0, 11.0, 10.0)

		mock.ExpectQuery(`FROM planet_osm_polygon\s+WHERE boundary = 'administrative'`).
			WithArgs(pq.Array(levels)).
			WillReturnRows(rows)

		bounds, err := repo.LoadBounds(context.Background(), levels)
		require.NoError(t, err)
		require.Len(t, bounds, 2)

		assert.Equal(t, domain.RegionBounds{
			Code: "BR",
			Name: "Brazil",
			BBox: domain.BoundingBox{North: 5.27, South: -33.75, East: -34.79, West: -73.99},
		}, bounds[0])
		assert.Equal(t, "", bounds[1].Code)
		assert.Equal(t, "São Paulo", bounds[1].Name)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(`FROM planet_osm_polygon`).
			WillReturnError(errors.New("relation \"planet_osm_polygon\" does not exist"))

		bounds, err := repo.LoadBounds(context.Background(), levels)
		assert.Nil(t, bounds)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load region bounds")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
