package domain

import "strings"

// Company size above which a marker renders in the "large company" tier.
const LargeSizeThreshold = 100

// Represents a single geo-located business record.
// Companies are immutable once loaded: the store is reference data, and all
// derived views (filtering, selection) are recomputed from it rather than
// mutating it. ID is a synthetic identifier assigned at load time; the pair
// (Name, Address) remains the visible identity used for deduplication.
type Company struct {
	ID             string
	Name           string
	AnnualTurnover string
	CompanySize    string
	Address        string
	Zip            string
	City           string
	Country        string
	Position       Coordinates
}

// Key returns the composite identity used to deduplicate route stops.
func (c Company) Key() string {
	return c.Name + "|" + c.Address
}

// Turnover returns the parsed annual turnover amount.
func (c Company) Turnover() int {
	return ParseAmount(c.AnnualTurnover)
}

// SizeCount returns the parsed headcount from the company size string.
func (c Company) SizeCount() int {
	return ParseAmount(c.CompanySize)
}

// ParseAmount extracts a base-10 integer from a formatted string such as
// "€6,000,000" or "250 employees" by stripping every non-digit character.
// A string with no digits parses to 0; parsing never fails.
func ParseAmount(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return 0
	}

	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	return n
}
