package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"company-map-service/internal/ports"
)

// SQLRouteCache is the Postgres variant of the route cache, used when the
// service runs against a shared database instead of a local SQLite file.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// InitSQLSchema creates the route cache table on Postgres.
func InitSQLSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init route cache schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS route_cache (
		cache_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	);
	`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init route cache schema: %w", err)
	}
	return nil
}

// Get fetches the cached result for key; a miss returns (nil, nil).
func (s *SQLRouteCache) Get(ctx context.Context, key string) (*ports.RouteResult, error) {
	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}
	if key == "" {
		return nil, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT payload
	FROM route_cache
	WHERE cache_key = $1;
	`

	var payload []byte
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	result, err := decodeResult(payload)
	if err != nil {
		return nil, fmt.Errorf("get route cache: %w", err)
	}
	return result, nil
}

// Put stores a result under key, replacing any existing entry.
func (s *SQLRouteCache) Put(ctx context.Context, key string, result *ports.RouteResult) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}
	if result == nil {
		return errors.New("insert route cache: result must not be nil")
	}

	payload, err := encodeResult(result)
	if err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	q := `
	INSERT INTO route_cache (cache_key, payload)
	VALUES ($1, $2)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload;
	`
	if _, err := s.DB.ExecContext(ctx, q, key, payload); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
