package ports

import (
	"context"
	"errors"

	"company-map-service/internal/domain"
)

// Returned when the directions service reports a non-OK status with no usable
// route data. Callers treat this as a normal "could not compute" outcome, not
// a failure to be propagated.
var ErrRouteNotFound = errors.New("no route found")

// Ordered result of a directions query. Legs[i] describes the traversal from
// stop i to stop i+1 after any provider-side waypoint reordering.
// WaypointOrder holds the provider's permutation of the intermediate stops
// (indices into the original waypoint list, origin and destination excluded);
// callers must treat it as authoritative for from/to labeling.
type RouteResult struct {
	Legs          []domain.RouteLeg
	WaypointOrder []int
}

// Contract for computing a multi-stop driving route.
type DirectionsProvider interface {
	// Route computes a driving route through the given stops in order.
	// With optimize set, the provider may reorder intermediate stops (never
	// the origin or destination) for shortest total path. At least two stops
	// are required. A non-OK provider status yields ErrRouteNotFound.
	Route(ctx context.Context, stops []domain.Coordinates, optimize bool) (*RouteResult, error)
}
