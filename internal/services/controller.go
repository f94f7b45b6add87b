package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"company-map-service/internal/domain"
	"company-map-service/internal/metrics"
	"company-map-service/internal/ports"
)

var (
	ErrUnknownCompany  = errors.New("unknown company")
	ErrNotEnoughStops  = errors.New("at least two stops are required")
	ErrIndexOutOfRange = errors.New("stop index out of range")
)

// Option sets derived from the store for the filter inputs.
type FilterOptions struct {
	Countries   []string
	Cities      []string
	MaxTurnover int
}

// Controller owns all map state: the immutable company store, the active
// filter criteria, the selection mode, the ordered route-stop list and the
// computed route summary. The presentation layer only dispatches events and
// reads derived state; it never mutates the state directly.
//
// Every transition runs to completion under one mutex. The lock is not held
// across the directions query: a revision counter snapshotted with the stop
// list guards against a late completion overwriting state that changed while
// the query was in flight.
type Controller struct {
	log      zerolog.Logger
	provider ports.DirectionsProvider

	mu        sync.Mutex
	companies []domain.Company
	byID      map[string]domain.Company
	loadErr   string

	criteria FilterCriteria
	mode     bool
	stops    []domain.Company
	summary  *domain.RouteSummary
	revision uint64
}

func NewController(provider ports.DirectionsProvider, log zerolog.Logger) *Controller {
	return &Controller{
		log:      log,
		provider: provider,
		byID:     map[string]domain.Company{},
	}
}

// SetStore installs the full company list. Called once at startup.
func (c *Controller) SetStore(companies []domain.Company) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.companies = companies
	c.byID = make(map[string]domain.Company, len(companies))
	for _, comp := range companies {
		c.byID[comp.ID] = comp
	}
	c.loadErr = ""
}

// MarkLoadFailed records a record-source failure. The controller stays fully
// functional over an empty store; the message only feeds the error indicator.
func (c *Controller) MarkLoadFailed(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.companies = nil
	c.byID = map[string]domain.Company{}
	c.loadErr = err.Error()
}

// LoadError returns the error indicator, empty when the store loaded fine.
func (c *Controller) LoadError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Criteria returns the active filter criteria.
func (c *Controller) Criteria() FilterCriteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// Visible recomputes and returns the filtered view of the store.
func (c *Controller) Visible() []domain.Company {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ApplyFilter(c.companies, c.criteria)
}

// Options returns the dependent filter option sets for the current state:
// all countries, the cities of the selected country, and the turnover bound.
func (c *Controller) Options() FilterOptions {
	c.mu.Lock()
	defer c.mu.Unlock()

	return FilterOptions{
		Countries:   AvailableCountries(c.companies),
		Cities:      AvailableCities(c.companies, c.criteria.Country),
		MaxTurnover: MaxTurnover(c.companies),
	}
}

// UpdateFilter applies a criteria change as one atomic transition. A country
// change resets the city in the same step so no intermediate state carries a
// city for a country that is no longer selected. Any criteria change clears
// the route stops and summary: filtering and an active route selection are
// mutually exclusive.
func (c *Controller) UpdateFilter(country, city string, minTurnover int) {
	if minTurnover < 0 {
		minTurnover = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if country != c.criteria.Country || country == "" {
		city = ""
	}
	c.criteria = FilterCriteria{Country: country, City: city, MinTurnover: minTurnover}
	c.clearRouteLocked()
}

// SelectionMode reports whether marker clicks are interpreted as stop picks.
func (c *Controller) SelectionMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetSelectionMode switches route planning on or off. Either direction is a
// full reset of the stop list and summary; setting the current value again
// is a no-op.
func (c *Controller) SetSelectionMode(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == active {
		return
	}
	c.mode = active
	c.clearRouteLocked()
}

// Click handles a marker click on the company with the given ID. While
// selection mode is active the company is appended to the stop list unless
// its (name, address) identity is already present; the duplicate case is a
// silent no-op. Outside selection mode clicks are not selection events and
// are ignored here (the detail view is presentation).
func (c *Controller) Click(id string) (added bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	comp, ok := c.byID[id]
	if !ok {
		return false, fmt.Errorf("click: %w: %s", ErrUnknownCompany, id)
	}

	if !c.mode {
		return false, nil
	}

	key := comp.Key()
	for _, s := range c.stops {
		if s.Key() == key {
			return false, nil
		}
	}

	c.stops = append(c.stops, comp)
	c.summary = nil
	c.revision++
	return true, nil
}

// RemoveStop deletes the stop at index, shifting later stops down. An edited
// stop list invalidates any computed summary. Out-of-range indices are a
// caller contract violation and leave the sequence untouched.
func (c *Controller) RemoveStop(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.stops) {
		return fmt.Errorf("remove stop: %w: %d", ErrIndexOutOfRange, index)
	}

	c.stops = append(c.stops[:index], c.stops[index+1:]...)
	c.summary = nil
	c.revision++
	return nil
}

// ClearRoute empties the stop list and summary without touching the mode.
func (c *Controller) ClearRoute() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearRouteLocked()
}

func (c *Controller) clearRouteLocked() {
	c.stops = nil
	c.summary = nil
	c.revision++
}

// Stops returns a copy of the ordered stop list.
func (c *Controller) Stops() []domain.Company {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Company(nil), c.stops...)
}

// Summary returns the current route summary, nil when none is computed.
func (c *Controller) Summary() *domain.RouteSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}

// ComputeRoute queries the directions provider over the current stops and,
// on success, stores the aggregated summary. The stored stop list is
// permuted to the provider's returned waypoint order first, so legs[i]
// always describes stops[i] -> stops[i+1].
//
// A non-OK provider status produces no summary and no error (computed is
// false). If the stop list changed while the query was in flight the stale
// completion is discarded.
func (c *Controller) ComputeRoute(ctx context.Context) (summary *domain.RouteSummary, computed bool, err error) {
	c.mu.Lock()
	snapshot := append([]domain.Company(nil), c.stops...)
	rev := c.revision
	c.mu.Unlock()

	if len(snapshot) < 2 {
		return nil, false, ErrNotEnoughStops
	}

	coords := make([]domain.Coordinates, 0, len(snapshot))
	for _, s := range snapshot {
		coords = append(coords, s.Position)
	}

	result, err := c.provider.Route(ctx, coords, true)
	if err != nil {
		if errors.Is(err, ports.ErrRouteNotFound) {
			metrics.RouteComputations.WithLabelValues("not_found").Inc()
			c.log.Debug().Int("stops", len(snapshot)).Msg("directions query returned no route")
			return nil, false, nil
		}
		metrics.RouteComputations.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("compute route: %w", err)
	}

	built, err := SummarizeRoute(result)
	if err != nil {
		metrics.RouteComputations.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("compute route: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.revision != rev {
		metrics.RouteComputations.WithLabelValues("stale").Inc()
		c.log.Debug().Uint64("issued", rev).Uint64("current", c.revision).
			Msg("discarding stale route completion")
		return nil, false, nil
	}

	c.stops = reorderStops(snapshot, result.WaypointOrder)
	c.summary = built
	metrics.RouteComputations.WithLabelValues("ok").Inc()
	return built, true, nil
}

// reorderStops permutes the intermediate stops by the provider's waypoint
// order. Origin and destination never move. A malformed order falls back to
// the insertion order rather than corrupting the list.
func reorderStops(stops []domain.Company, order []int) []domain.Company {
	inner := len(stops) - 2
	if inner <= 0 || len(order) != inner {
		return stops
	}

	out := make([]domain.Company, 0, len(stops))
	out = append(out, stops[0])
	for _, idx := range order {
		if idx < 0 || idx >= inner {
			return stops
		}
		out = append(out, stops[1+idx])
	}
	out = append(out, stops[len(stops)-1])
	return out
}
