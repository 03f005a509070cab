package main

// @title Boundary Resolver API
// @version 1.0.0
// @description Адаптивное разрешение административных границ для карты: уровень по zoom, запрос к Overpass-зеркалам с circuit breaker, упрощение тяжелой геометрии и резервные прямоугольники.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/boundary-resolver/docs"
	"github.com/boundary-resolver/internal/circuit"
	"github.com/boundary-resolver/internal/config"
	httpDelivery "github.com/boundary-resolver/internal/delivery/http"
	"github.com/boundary-resolver/internal/delivery/http/handler"
	"github.com/boundary-resolver/internal/domain/repository"
	"github.com/boundary-resolver/internal/executor"
	"github.com/boundary-resolver/internal/geometry"
	"github.com/boundary-resolver/internal/infrastructure/overpass"
	"github.com/boundary-resolver/internal/pkg/clock"
	"github.com/boundary-resolver/internal/pkg/logger"
	"github.com/boundary-resolver/internal/query"
	"github.com/boundary-resolver/internal/repository/cache"
	"github.com/boundary-resolver/internal/repository/postgresosm"
	"github.com/boundary-resolver/internal/tier"
	"github.com/boundary-resolver/internal/usecase"
	"github.com/boundary-resolver/internal/worker"
	"github.com/boundary-resolver/internal/worker/maintenance"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Boundary Resolver")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("instance_id", cfg.Worker.InstanceID),
		zap.Int("mirrors", len(cfg.Provider.Mirrors)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	checks := make(map[string]httpDelivery.HealthChecker)

	// 3. Region registry, optionally enriched with bboxes from the OSM database
	regions := geometry.NewRegionRegistry(geometry.DefaultRegions())

	if cfg.OSMDB.Enabled {
		osmDB, err := postgresosm.New(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to OSM PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := osmDB.Close(); err != nil {
				log.Error("Failed to close OSM PostgreSQL connection", zap.Error(err))
			}
		}()
		checks["postgres"] = osmDB

		bounds, err := postgresosm.NewBoundsRepository(osmDB).LoadBounds(ctx, cfg.OSMDB.AdminLevels)
		if err != nil {
			// встроенных bbox достаточно для работы
			log.Warn("Failed to load region bounds, using built-in table", zap.Error(err))
		} else {
			log.Info("Region bounds loaded",
				zap.Int("rows", len(bounds)),
				zap.Int("merged", regions.Merge(bounds)),
				zap.Int("regions", regions.Len()))
		}
	}

	// 4. Stats snapshot store
	var statsRepo repository.StatsCacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		checks["redis"] = redisClient
		statsRepo = cache.NewStatsRepository(redisClient.Client(), log)
		log.Info("Redis connected")
	}

	// 5. Engine components
	clk := clock.Real()

	catalog := tier.DefaultCatalog()
	monitor := circuit.NewMonitor(cfg.Circuit, clk, log)
	provider := overpass.NewOverpassClient(&cfg.Provider, log)
	exec := executor.New(cfg.Provider, executor.MirrorsFromConfig(cfg.Provider.Mirrors), provider, monitor, clk, log)
	resultCache := cache.NewResultCache(cfg.Cache.MaxEntries, clk)

	engine := usecase.NewBoundaryUseCase(usecase.BoundaryEngineDeps{
		Selector:    tier.NewSelector(catalog, regions),
		Builder:     query.NewBuilder(regions),
		Executor:    exec,
		Circuits:    monitor,
		Diagnostics: geometry.NewDiagnostics(regions),
		Fallback:    geometry.NewFallbackBoundsGenerator(regions),
		Cache:       resultCache,
		Clock:       clk,
	}, cfg.Geometry, log)

	statsUC := usecase.NewStatsUseCase(engine, statsRepo, cfg.Worker.InstanceID, cfg.Redis.StatsTTL, log)

	log.Info("Engine initialized", zap.Int("tiers", len(catalog.Tiers())))

	// 6. Background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	manager := worker.NewWorkerManager(worker.DefaultShutdownTimeout, log)
	manager.Register(maintenance.NewCacheJanitor(resultCache, cfg.Cache.JanitorInterval, log))
	if statsRepo != nil {
		manager.Register(maintenance.NewStatsPublisher(statsUC, cfg.Worker.StatsPublishInterval, log))
	}
	if err := manager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 7. HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewBoundaryHandler(engine, log),
		handler.NewStatsHandler(statsUC, log),
		checks,
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := manager.Stop(); err != nil {
		log.Error("Workers shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
