package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"company-map-service/internal/adapters/directions"
	"company-map-service/internal/domain"
	"company-map-service/internal/ports"
)

func newTestController(provider ports.DirectionsProvider) *Controller {
	c := NewController(provider, zerolog.Nop())
	c.SetStore(sampleCompanies())
	return c
}

func twoLegResult() *ports.RouteResult {
	return &ports.RouteResult{
		Legs: []domain.RouteLeg{
			{DistanceMeters: 2000, DurationSeconds: 1200, DistanceText: "2 km", DurationText: "20 mins"},
			{DistanceMeters: 3000, DurationSeconds: 2400, DistanceText: "3 km", DurationText: "40 mins"},
		},
	}
}

func TestUpdateFilterResetsCityOnCountryChange(t *testing.T) {
	c := newTestController(&directions.MockDirectionsProvider{})

	// Picking a country is itself a country change, so the city submitted in
	// the same transition is discarded.
	c.UpdateFilter("DE", "Berlin", 0)
	if got := c.Criteria(); got.City != "" {
		t.Fatalf("city set alongside a country change = %q, want empty", got.City)
	}

	// With the country settled, the city sticks.
	c.UpdateFilter("DE", "Berlin", 0)
	if got := c.Criteria(); got.City != "Berlin" {
		t.Fatalf("city = %q, want Berlin", got.City)
	}

	c.UpdateFilter("FR", "Berlin", 2000000)
	got := c.Criteria()
	if got.Country != "FR" || got.City != "" {
		t.Fatalf("criteria after country change = %+v, want city reset", got)
	}
	if got.MinTurnover != 2000000 {
		t.Fatalf("minTurnover = %d, want 2000000", got.MinTurnover)
	}

	// City without a country is meaningless.
	c.UpdateFilter("", "Paris", 0)
	if got := c.Criteria(); got.City != "" {
		t.Fatalf("city with empty country = %q, want empty", got.City)
	}
}

func TestUpdateFilterClearsRouteState(t *testing.T) {
	c := newTestController(&directions.MockDirectionsProvider{Result: twoLegResult()})
	c.SetSelectionMode(true)
	mustClick(t, c, "1")
	mustClick(t, c, "2")

	if _, computed, err := c.ComputeRoute(context.Background()); err != nil || !computed {
		t.Fatalf("compute: computed=%v err=%v", computed, err)
	}

	// A turnover-only change is still a criteria change and clears everything.
	c.UpdateFilter("", "", 1)
	if len(c.Stops()) != 0 || c.Summary() != nil {
		t.Fatalf("criteria change must clear stops and summary")
	}
}

func TestSelectionModeToggleClearsBothDirections(t *testing.T) {
	c := newTestController(&directions.MockDirectionsProvider{Result: twoLegResult()})

	c.SetSelectionMode(true)
	mustClick(t, c, "1")
	mustClick(t, c, "2")

	c.SetSelectionMode(false)
	if len(c.Stops()) != 0 || c.Summary() != nil {
		t.Fatalf("disabling selection mode must clear stops and summary")
	}

	c.SetSelectionMode(true)
	if len(c.Stops()) != 0 {
		t.Fatalf("enabling selection mode must start from an empty stop list")
	}
}

func TestClickDedupByNameAndAddress(t *testing.T) {
	c := newTestController(&directions.MockDirectionsProvider{})
	c.SetSelectionMode(true)

	mustClick(t, c, "1")
	mustClick(t, c, "2")

	added, err := c.Click("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added {
		t.Fatalf("second click on the same record must be a no-op")
	}

	stops := c.Stops()
	if len(stops) != 2 || stops[0].ID != "1" || stops[1].ID != "2" {
		t.Fatalf("stops = %v, want [1 2] in selection order", stops)
	}
}

func TestClickIgnoredOutsideSelectionMode(t *testing.T) {
	c := newTestController(&directions.MockDirectionsProvider{})

	added, err := c.Click("1")
	if err != nil || added {
		t.Fatalf("click while inactive: added=%v err=%v, want ignored", added, err)
	}
	if len(c.Stops()) != 0 {
		t.Fatalf("click while inactive must not record a stop")
	}
}

func TestClickUnknownCompany(t *testing.T) {
	c := newTestController(&directions.MockDirectionsProvider{})
	c.SetSelectionMode(true)

	if _, err := c.Click("nope"); !errors.Is(err, ErrUnknownCompany) {
		t.Fatalf("err = %v, want ErrUnknownCompany", err)
	}
}

func TestRemoveStop(t *testing.T) {
	c := newTestController(&directions.MockDirectionsProvider{Result: twoLegResult()})
	c.SetSelectionMode(true)
	mustClick(t, c, "1")
	mustClick(t, c, "2")
	mustClick(t, c, "3")

	if _, computed, err := c.ComputeRoute(context.Background()); err != nil || !computed {
		t.Fatalf("compute: computed=%v err=%v", computed, err)
	}

	if err := c.RemoveStop(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stops := c.Stops()
	if len(stops) != 2 || stops[0].ID != "1" || stops[1].ID != "3" {
		t.Fatalf("stops after removal = %v, want [1 3]", stops)
	}
	if c.Summary() != nil {
		t.Fatalf("removing a stop must invalidate the summary")
	}

	if err := c.RemoveStop(7); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
	}
	if len(c.Stops()) != 2 {
		t.Fatalf("rejected removal must leave the sequence untouched")
	}
}

func TestComputeRouteAggregates(t *testing.T) {
	c := newTestController(&directions.MockDirectionsProvider{Result: twoLegResult()})
	c.SetSelectionMode(true)
	mustClick(t, c, "1")
	mustClick(t, c, "2")
	mustClick(t, c, "3")

	sum, computed, err := c.ComputeRoute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !computed {
		t.Fatalf("expected a computed summary")
	}

	if sum.TotalDistance != "5.0 km" {
		t.Errorf("total distance = %q, want %q", sum.TotalDistance, "5.0 km")
	}
	if sum.TotalDuration != "1h 00m" {
		t.Errorf("total duration = %q, want %q", sum.TotalDuration, "1h 00m")
	}
	if len(sum.Legs) != 2 {
		t.Errorf("legs = %d, want 2", len(sum.Legs))
	}
	if c.Summary() == nil {
		t.Errorf("summary must be stored on the controller")
	}
}

func TestComputeRouteNeedsTwoStops(t *testing.T) {
	c := newTestController(&directions.MockDirectionsProvider{Result: twoLegResult()})
	c.SetSelectionMode(true)
	mustClick(t, c, "1")

	if _, _, err := c.ComputeRoute(context.Background()); !errors.Is(err, ErrNotEnoughStops) {
		t.Fatalf("err = %v, want ErrNotEnoughStops", err)
	}
}

func TestComputeRouteProviderFailureProducesNoSummary(t *testing.T) {
	c := newTestController(&directions.MockDirectionsProvider{Err: ports.ErrRouteNotFound})
	c.SetSelectionMode(true)
	mustClick(t, c, "1")
	mustClick(t, c, "2")

	sum, computed, err := c.ComputeRoute(context.Background())
	if err != nil {
		t.Fatalf("a non-OK status is not an error: %v", err)
	}
	if computed || sum != nil {
		t.Fatalf("provider failure must yield no summary")
	}
}

func TestComputeRouteDiscardsStaleCompletion(t *testing.T) {
	provider := &directions.MockDirectionsProvider{Result: twoLegResult()}
	c := newTestController(provider)
	c.SetSelectionMode(true)
	mustClick(t, c, "1")
	mustClick(t, c, "2")

	// Edit the stop list while the query is in flight. The completion was
	// issued for a stop list that no longer exists and must be dropped.
	provider.OnRoute = func([]domain.Coordinates) {
		mustClick(t, c, "3")
	}

	sum, computed, err := c.ComputeRoute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if computed || sum != nil {
		t.Fatalf("stale completion must be discarded, got %+v", sum)
	}
	if c.Summary() != nil {
		t.Fatalf("stale completion must not be stored")
	}
	if len(c.Stops()) != 3 {
		t.Fatalf("concurrent edit must survive, stops = %d", len(c.Stops()))
	}
}

func TestComputeRouteAdoptsWaypointOrder(t *testing.T) {
	result := &ports.RouteResult{
		Legs: []domain.RouteLeg{
			{DistanceMeters: 1000, DurationSeconds: 600},
			{DistanceMeters: 1000, DurationSeconds: 600},
			{DistanceMeters: 1000, DurationSeconds: 600},
		},
		// Provider visits the second intermediate stop first.
		WaypointOrder: []int{1, 0},
	}
	c := newTestController(&directions.MockDirectionsProvider{Result: result})
	c.SetStore(append(sampleCompanies(), domain.Company{
		ID: "4", Name: "Rhone Chimie", Address: "Quai Perrache 3", City: "Lyon", Country: "FR",
	}))
	c.SetSelectionMode(true)
	mustClick(t, c, "1")
	mustClick(t, c, "2")
	mustClick(t, c, "3")
	mustClick(t, c, "4")

	if _, computed, err := c.ComputeRoute(context.Background()); err != nil || !computed {
		t.Fatalf("compute: computed=%v err=%v", computed, err)
	}

	stops := c.Stops()
	want := []string{"1", "3", "2", "4"}
	for i, id := range want {
		if stops[i].ID != id {
			t.Fatalf("stop order = %v, want %v", stops, want)
		}
	}
}

func TestLoadFailureLeavesControllerInert(t *testing.T) {
	c := NewController(&directions.MockDirectionsProvider{}, zerolog.Nop())
	c.MarkLoadFailed(errors.New("read seed: no such file"))

	if c.LoadError() == "" {
		t.Fatalf("load failure must surface an indicator")
	}
	if len(c.Visible()) != 0 {
		t.Fatalf("store must be empty after a load failure")
	}

	opts := c.Options()
	if len(opts.Countries) != 0 || opts.MaxTurnover != 0 {
		t.Fatalf("options over an empty store = %+v", opts)
	}

	c.SetSelectionMode(true)
	if _, err := c.Click("1"); !errors.Is(err, ErrUnknownCompany) {
		t.Fatalf("click on an empty store: %v", err)
	}
}

func mustClick(t *testing.T, c *Controller, id string) {
	t.Helper()
	added, err := c.Click(id)
	if err != nil {
		t.Fatalf("click %s: %v", id, err)
	}
	if !added {
		t.Fatalf("click %s: expected the stop to be added", id)
	}
}
