package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"company-map-service/internal/api/handlers"
	"company-map-service/internal/metrics"
	"company-map-service/internal/services"
)

// NewRouter wires HTTP handlers to the controller and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(ctrl *services.Controller, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(log))

	companyHandler := &handlers.CompanyHandler{Ctrl: ctrl}
	filterHandler := &handlers.FilterHandler{Ctrl: ctrl}
	selectionHandler := &handlers.SelectionHandler{Ctrl: ctrl}
	routeHandler := &handlers.RouteHandler{Ctrl: ctrl}

	r.Get("/health", handlers.Health)
	r.Get("/metrics", metrics.Handler().ServeHTTP)

	r.Get("/companies", companyHandler.List)

	r.Get("/filters/options", filterHandler.Options)
	r.Put("/filters", filterHandler.Update)

	r.Post("/selection/mode", selectionHandler.SetMode)
	r.Post("/selection/stops", selectionHandler.Click)
	r.Delete("/selection/stops/{index}", selectionHandler.RemoveStop)

	r.Post("/route/compute", routeHandler.Compute)
	r.Get("/route", routeHandler.Get)
	r.Delete("/route", routeHandler.Clear)
	r.Get("/route/gpx", routeHandler.ExportGPX)

	return r
}
