package directions

import (
	"context"
	"sync"

	"company-map-service/internal/domain"
	"company-map-service/internal/ports"
)

// MockDirectionsProvider returns a canned result for any query. The optional
// OnRoute hook runs while the query is "in flight", which lets tests edit
// controller state between snapshot and completion.
type MockDirectionsProvider struct {
	Result  *ports.RouteResult
	Err     error
	OnRoute func(stops []domain.Coordinates)

	mu    sync.Mutex
	calls int
}

func (m *MockDirectionsProvider) Route(ctx context.Context, stops []domain.Coordinates, optimize bool) (*ports.RouteResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.OnRoute != nil {
		m.OnRoute(stops)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result == nil {
		return nil, ports.ErrRouteNotFound
	}

	out := &ports.RouteResult{
		Legs:          append([]domain.RouteLeg(nil), m.Result.Legs...),
		WaypointOrder: append([]int(nil), m.Result.WaypointOrder...),
	}
	return out, nil
}

// Calls reports how many queries were issued.
func (m *MockDirectionsProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
