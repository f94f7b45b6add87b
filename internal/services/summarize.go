package services

import (
	"errors"

	"company-map-service/internal/domain"
	"company-map-service/internal/ports"
)

// SummarizeRoute turns an ordered directions result into the aggregated
// route summary: total distance in kilometers, total duration as "XhMMm",
// and a positional per-leg list carrying the provider's display texts.
//
// A result with no legs is rejected: it can only arise from a failed query
// or from fewer than two stops, neither of which produces a summary.
func SummarizeRoute(result *ports.RouteResult) (*domain.RouteSummary, error) {
	if result == nil || len(result.Legs) == 0 {
		return nil, errors.New("summarize route: result must contain at least one leg")
	}

	totalMeters := 0
	totalSeconds := 0
	legs := make([]domain.LegSummary, 0, len(result.Legs))

	for _, leg := range result.Legs {
		totalMeters += leg.DistanceMeters
		totalSeconds += leg.DurationSeconds
		legs = append(legs, domain.LegSummary{
			DistanceText: leg.DistanceText,
			DurationText: leg.DurationText,
		})
	}

	return &domain.RouteSummary{
		TotalDistance: domain.FormatDistanceKm(totalMeters),
		TotalDuration: domain.FormatDuration(totalSeconds),
		Legs:          legs,
	}, nil
}
