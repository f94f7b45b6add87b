package ports

import (
	"context"

	"company-map-service/internal/domain"
)

// Port: a boundary for retrieving Company records from a data source.
type CompanyRepository interface {
	// Retrieve all companies in load order.
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}
