package domain

import (
	"fmt"
	"math"
)

// Represents one traversal segment between two consecutive route stops.
// Display texts come verbatim from the directions provider and are never
// re-derived from the numeric values.
type RouteLeg struct {
	DistanceMeters  int
	DurationSeconds int
	DistanceText    string
	DurationText    string
}

// Per-leg display summary aligned positionally with the stop list:
// entry i describes the traversal from stop i to stop i+1.
type LegSummary struct {
	DistanceText string
	DurationText string
}

// Represents the aggregated result of a computed multi-stop route.
// A RouteSummary exists only after a successful directions query over at
// least two stops and is immutable once built.
type RouteSummary struct {
	TotalDistance string
	TotalDuration string
	Legs          []LegSummary
}

// FormatDistanceKm renders a meter total as kilometers with exactly one
// decimal digit, e.g. 3500 -> "3.5 km".
func FormatDistanceKm(meters int) string {
	return fmt.Sprintf("%.1f km", float64(meters)/1000)
}

// FormatDuration renders a second total as "XhMMm" with zero-padded minutes.
// Hours are floored and minutes rounded independently, so 3576s renders as
// "0h 60m" rather than "1h 00m". The non-carry is intentional and must be
// preserved until product decides otherwise.
func FormatDuration(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := int(math.Round(float64(totalSeconds%3600) / 60))
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}
