package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"company-map-service/internal/domain"
)

// SQLite-backed implementation of the CompanyRepository port.
type SqliteCompanyRepository struct{ DB *sql.DB }

func NewSqliteCompanyRepository(db *sql.DB) *SqliteCompanyRepository {
	return &SqliteCompanyRepository{DB: db}
}

// Return all companies stored in the database, in load order.
func (s *SqliteCompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite company repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		annual_turnover,
		company_size,
		address,
		zip,
		city,
		country,
		lat,
		lng
	FROM companies
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list companies: query companies table: %w", err)
	}
	defer rows.Close()

	companies := make([]domain.Company, 0, 64)
	for rows.Next() {
		var c domain.Company
		err := rows.Scan(
			&c.ID, &c.Name, &c.AnnualTurnover, &c.CompanySize,
			&c.Address, &c.Zip, &c.City, &c.Country,
			&c.Position.Lat, &c.Position.Lng,
		)
		if err != nil {
			return nil, fmt.Errorf("list companies: scan row: %w", err)
		}
		companies = append(companies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list companies: row iteration: %w", err)
	}

	return companies, nil
}
