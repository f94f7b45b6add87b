package services

import "company-map-service/internal/domain"

// Filter criteria applied conjunctively to the company store. An empty
// country or city means "all". City is meaningless without a country: the
// controller forces it empty whenever the country changes.
type FilterCriteria struct {
	Country     string
	City        string
	MinTurnover int
}

// Matches reports whether a company passes all active predicates.
func (f FilterCriteria) Matches(c domain.Company) bool {
	if f.Country != "" && c.Country != f.Country {
		return false
	}
	if f.City != "" && c.City != f.City {
		return false
	}
	return c.Turnover() >= f.MinTurnover
}

// AvailableCountries returns the distinct country values across all
// companies, preserving first-seen order.
func AvailableCountries(companies []domain.Company) []string {
	seen := make(map[string]struct{}, len(companies))
	out := make([]string, 0, len(companies))
	for _, c := range companies {
		if _, ok := seen[c.Country]; ok {
			continue
		}
		seen[c.Country] = struct{}{}
		out = append(out, c.Country)
	}
	return out
}

// AvailableCities returns the distinct city values among companies in the
// given country, preserving first-seen order. An empty country yields an
// empty result since no city choice is meaningful without one.
func AvailableCities(companies []domain.Company, country string) []string {
	if country == "" {
		return []string{}
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, len(companies))
	for _, c := range companies {
		if c.Country != country {
			continue
		}
		if _, ok := seen[c.City]; ok {
			continue
		}
		seen[c.City] = struct{}{}
		out = append(out, c.City)
	}
	return out
}

// MaxTurnover returns the largest parsed turnover across all companies.
// It only bounds the turnover input control; it is not a filter invariant.
func MaxTurnover(companies []domain.Company) int {
	max := 0
	for _, c := range companies {
		if t := c.Turnover(); t > max {
			max = t
		}
	}
	return max
}

// ApplyFilter reduces the company list to those passing every active
// predicate, preserving the original order. The result is always a
// subsequence of the input; the input is never mutated.
func ApplyFilter(companies []domain.Company, criteria FilterCriteria) []domain.Company {
	out := make([]domain.Company, 0, len(companies))
	for _, c := range companies {
		if criteria.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}
