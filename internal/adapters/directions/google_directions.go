package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"company-map-service/internal/domain"
	"company-map-service/internal/metrics"
	"company-map-service/internal/platform/obs"
	"company-map-service/internal/ports"
)

// GoogleDirectionsProvider implements DirectionsProvider against a
// Google-Directions-style JSON API.
//
// It coordinates:
//   - An in-process TTL cache for repeated identical queries
//   - An optional persistent route cache shared across restarts
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type GoogleDirectionsProvider struct {
	session    *http.Client
	apiKey     string
	baseURL    string
	travelMode string
	mem        *gocache.Cache
	persistent ports.RouteCache
	log        zerolog.Logger
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		WaypointOrder []int `json:"waypoint_order"`
		Legs          []struct {
			Distance struct {
				Value int    `json:"value"`
				Text  string `json:"text"`
			} `json:"distance"`
			Duration struct {
				Value int    `json:"value"`
				Text  string `json:"text"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

func NewGoogleDirectionsProvider(apiKey string, routeCache ports.RouteCache, log zerolog.Logger) (*GoogleDirectionsProvider, error) {
	if apiKey == "" {
		return nil, errors.New("directions api key is empty")
	}

	return &GoogleDirectionsProvider{
		session:    &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    "https://maps.googleapis.com",
		travelMode: "driving",
		mem:        gocache.New(15*time.Minute, 30*time.Minute),
		persistent: routeCache,
		log:        log,
	}, nil
}

// Route computes a driving route through stops, checking the in-process and
// persistent caches before issuing an external call.
func (g *GoogleDirectionsProvider) Route(ctx context.Context, stops []domain.Coordinates, optimize bool) (*ports.RouteResult, error) {
	if len(stops) < 2 {
		return nil, errors.New("route: at least two stops are required")
	}

	key := cacheKey(stops, optimize)

	if v, ok := g.mem.Get(key); ok {
		metrics.RouteCacheOps.WithLabelValues("memory", "hit").Inc()
		return v.(*ports.RouteResult), nil
	}
	metrics.RouteCacheOps.WithLabelValues("memory", "miss").Inc()

	if g.persistent != nil {
		cached, err := g.persistent.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("route: read route cache: %w", err)
		}
		if cached != nil {
			metrics.RouteCacheOps.WithLabelValues("persistent", "hit").Inc()
			g.mem.SetDefault(key, cached)
			return cached, nil
		}
		metrics.RouteCacheOps.WithLabelValues("persistent", "miss").Inc()
	}

	result, err := g.fetchRoute(ctx, stops, optimize)
	if err != nil {
		return nil, err
	}

	g.mem.SetDefault(key, result)
	if g.persistent != nil {
		if err := g.persistent.Put(ctx, key, result); err != nil {
			g.log.Warn().Err(err).Msg("route cache write failed")
		}
	}

	return result, nil
}

func (g *GoogleDirectionsProvider) fetchRoute(ctx context.Context, stops []domain.Coordinates, optimize bool) (result *ports.RouteResult, err error) {
	defer obs.Time(g.log, "directions.fetch")(&err)

	origin := stops[0]
	destination := stops[len(stops)-1]

	q := url.Values{}
	q.Set("origin", origin.String())
	q.Set("destination", destination.String())
	q.Set("mode", g.travelMode)
	q.Set("key", g.apiKey)

	if len(stops) > 2 {
		parts := make([]string, 0, len(stops)-1)
		if optimize {
			parts = append(parts, "optimize:true")
		}
		for _, s := range stops[1 : len(stops)-1] {
			parts = append(parts, s.String())
		}
		q.Set("waypoints", strings.Join(parts, "|"))
	}

	endpoint := g.baseURL + "/maps/api/directions/json?" + q.Encode()

	resp, err := g.doWithRetry(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	// Any non-OK status means no usable route data. Only transport and
	// decode failures surface as errors.
	if decoded.Status != "OK" {
		g.log.Warn().Str("status", decoded.Status).Msg("directions service returned no route")
		return nil, ports.ErrRouteNotFound
	}

	if len(decoded.Routes) == 0 || len(decoded.Routes[0].Legs) == 0 {
		return nil, ports.ErrRouteNotFound
	}

	route := decoded.Routes[0]
	legs := make([]domain.RouteLeg, 0, len(route.Legs))
	for _, l := range route.Legs {
		legs = append(legs, domain.RouteLeg{
			DistanceMeters:  l.Distance.Value,
			DurationSeconds: l.Duration.Value,
			DistanceText:    l.Distance.Text,
			DurationText:    l.Duration.Text,
		})
	}

	return &ports.RouteResult{
		Legs:          legs,
		WaypointOrder: route.WaypointOrder,
	}, nil
}

// cacheKey builds a stable key from the ordered stop coordinates. Order
// matters: the same stops in a different sequence are a different query.
func cacheKey(stops []domain.Coordinates, optimize bool) string {
	parts := make([]string, 0, len(stops)+1)
	for _, s := range stops {
		parts = append(parts, s.String())
	}
	if optimize {
		parts = append(parts, "opt")
	}
	return strings.Join(parts, "|")
}
