package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"company-map-service/internal/ports"
)

// SQLite backed cache for directions results. Keys are expected to be
// consistent (the provider builds them from normalized coordinates).
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

// Get fetches the cached result for key; a miss returns (nil, nil).
func (s *SqliteRouteCache) Get(ctx context.Context, key string) (*ports.RouteResult, error) {
	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}
	if key == "" {
		return nil, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT payload
	FROM route_cache
	WHERE cache_key = ?;
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
func (s *SqliteRouteCache) Put(ctx context.Context, key string, result *ports.RouteResult) error {
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
	INSERT OR REPLACE INTO route_cache (
		cache_key,
		payload
	)
	VALUES (?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, key, payload); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
