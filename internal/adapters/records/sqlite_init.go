package records

import (
	"database/sql"
	"errors"
	"fmt"

	"company-map-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCompaniesQuery := `
	CREATE TABLE IF NOT EXISTS companies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		annual_turnover TEXT NOT NULL,
		company_size TEXT NOT NULL,
		address TEXT NOT NULL,
		zip TEXT NOT NULL,
		city TEXT NOT NULL,
		country TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		position INTEGER NOT NULL
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		cache_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_companies_country_city
	ON companies(country, city);
	`

	statements := []string{
		createCompaniesQuery,
		createRouteCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Seed replaces the stored record set with the given companies. The previous
// set is dropped in the same transaction, so rows that fell out of the seed
// data (or carried stale IDs) do not linger across runs. Load order is
// preserved through the position column.
func Seed(db *sql.DB, companies []domain.Company) error {
	if db == nil {
		return errors.New("seed companies: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed companies: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM companies;`); err != nil {
		return fmt.Errorf("seed companies: clear store: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO companies (
		id,
		name,
		annual_turnover,
		company_size,
		address,
		zip,
		city,
		country,
		lat,
		lng,
		position
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed companies: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range companies {
		if _, err := stmt.Exec(
			c.ID, c.Name, c.AnnualTurnover, c.CompanySize,
			c.Address, c.Zip, c.City, c.Country,
			c.Position.Lat, c.Position.Lng, i,
		); err != nil {
			return fmt.Errorf("seed companies: insert %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed companies: commit tx: %w", err)
	}

	return nil
}
