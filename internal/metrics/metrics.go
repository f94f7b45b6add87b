// Package metrics exposes the Prometheus collectors used across the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "companymap_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "companymap_http_request_duration_seconds",
		Help:    "End-to-end HTTP request duration.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	RouteComputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "companymap_route_computations_total",
		Help: "Route computations by outcome (ok, not_found, stale, error).",
	}, []string{"outcome"})

	RouteCacheOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "companymap_route_cache_ops_total",
		Help: "Route cache operations by tier and result.",
	}, []string{"tier", "result"})
)

// Handler returns the /metrics endpoint handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
