package postgresosm

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/boundary-resolver/internal/config"
)

// DB - подключение к OSM PostgreSQL (planet_osm_* таблицы, загруженные через osm2pgsql).
// Используется только на старте для загрузки bbox регионов.
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New создает подключение к OSM базе данных
func New(cfg *config.Config, logger *zap.Logger) (*DB, error) {
	db, err := sqlx.Connect("pgx", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to osm database: %w", err)
	}

	db.SetMaxOpenConns(cfg.OSMDB.MaxConns)
	db.SetMaxIdleConns(cfg.OSMDB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.OSMDB.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.OSMDB.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping osm database: %w", err)
	}

	logger.Info("OSM PostgreSQL connected",
		zap.String("host", cfg.OSMDB.Host),
		zap.Int("port", cfg.OSMDB.Port),
		zap.String("database", cfg.OSMDB.DBName),
	)

	return &DB{DB: db, logger: logger}, nil
}

// Close закрывает соединение с БД
func (db *DB) Close() error {
	db.logger.Info("Closing OSM PostgreSQL connection")
	return db.DB.Close()
}

// Health выполняет health-check соединения
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// NewDBForTest создает экземпляр DB поверх готового соединения
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:     sqlxDB,
		logger: logger,
	}
}
