package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"company-map-service/internal/adapters/cache"
	"company-map-service/internal/adapters/directions"
	"company-map-service/internal/adapters/records"
	"company-map-service/internal/api"
	"company-map-service/internal/config"
	"company-map-service/internal/domain"
	"company-map-service/internal/logger"
	"company-map-service/internal/platform/db"
	"company-map-service/internal/ports"
	"company-map-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite store, the configured route cache, the
// directions API) behind ports and starts the HTTP server.
func main() {
	// Missing .env is fine: production uses real environment variables.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		Component: "server",
	}, os.Stdout)

	if strings.TrimSpace(cfg.DirectionsAPIKey) == "" {
		log.Fatal().Msg("DIRECTIONS_API_KEY is required")
	}

	database, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	if err := records.InitSchema(database); err != nil {
		log.Fatal().Err(err).Msg("init schema")
	}

	routeCache, closeCache, err := buildRouteCache(cfg, database)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.RouteCache).Msg("init route cache")
	}
	if closeCache != nil {
		defer closeCache()
	}

	provider, err := directions.NewGoogleDirectionsProvider(cfg.DirectionsAPIKey, routeCache, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init directions provider")
	}

	ctrl := services.NewController(provider, log)

	// Seed and load the company store. A failed load keeps the service up
	// with an empty store and a visible error indicator.
	if companies, err := seedAndLoad(database, cfg.SeedPath); err != nil {
		log.Error().Err(err).Str("seed", cfg.SeedPath).Msg("company store unavailable")
		ctrl.MarkLoadFailed(err)
	} else {
		ctrl.SetStore(companies)
		log.Info().Int("companies", len(companies)).Msg("company store loaded")
	}

	router := api.NewRouter(ctrl, log)

	// Write timeout covers cold-cache route computations (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info().Str("addr", srv.Addr).Str("route_cache", cfg.RouteCache).Msg("server listening")
	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

func buildRouteCache(cfg config.Config, database *sql.DB) (ports.RouteCache, func(), error) {
	switch cfg.RouteCache {
	case "none":
		return nil, nil, nil
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c, err := cache.NewRedisRouteCache(ctx, cfg.RedisAddr, cfg.RedisTTL)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	case "postgres":
		pg, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cache.InitSQLSchema(ctx, pg); err != nil {
			_ = pg.Close()
			return nil, nil, err
		}
		return cache.NewSQLRouteCache(pg), func() { _ = pg.Close() }, nil
	case "sqlite":
		// Shares the local database file with the company store; the table
		// is created by records.InitSchema.
		return cache.NewSqliteRouteCache(database), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown route cache backend %q", cfg.RouteCache)
	}
}

// seedAndLoad refreshes the store from the seed file and reads it back in
// load order.
func seedAndLoad(database *sql.DB, seedPath string) ([]domain.Company, error) {
	companies, err := records.LoadJSON(seedPath)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	if err := records.Seed(database, companies); err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}

	repo := records.NewSqliteCompanyRepository(database)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return repo.ListCompanies(ctx)
}
