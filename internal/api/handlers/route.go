package handlers

import (
	"errors"
	"net/http"

	"github.com/tkrajina/gpxgo/gpx"

	"company-map-service/internal/api/dto"
	"company-map-service/internal/domain"
	"company-map-service/internal/services"
)

// RouteHandler exposes route computation and the current route state.
type RouteHandler struct {
	Ctrl *services.Controller
}

// Get returns the ordered stop list and the computed summary, if any.
func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.routeResponse())
}

// Compute queries the directions provider over the current stops. A
// provider "no route" outcome is not an error: the response simply carries
// no summary.
func (h *RouteHandler) Compute(w http.ResponseWriter, r *http.Request) {
	summary, computed, err := h.Ctrl.ComputeRoute(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrNotEnoughStops) {
			writeError(w, r, http.StatusBadRequest, "at least two stops are required")
			return
		}
		writeError(w, r, http.StatusBadGateway, "route computation failed")
		return
	}

	res := dto.ComputeRouteResponse{Computed: computed}
	if computed && summary != nil {
		route := h.routeResponse()
		res.Route = &route
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Clear empties the stop list and summary; selection mode is untouched.
func (h *RouteHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Ctrl.ClearRoute()
	w.WriteHeader(http.StatusNoContent)
}

// ExportGPX renders the current stops as a GPX route for use in external
// navigation tools.
func (h *RouteHandler) ExportGPX(w http.ResponseWriter, r *http.Request) {
	stops := h.Ctrl.Stops()
	if len(stops) == 0 {
		writeError(w, r, http.StatusNotFound, "no route stops selected")
		return
	}

	points := make([]gpx.GPXPoint, 0, len(stops))
	for _, s := range stops {
		p := gpx.GPXPoint{Name: s.Name}
		p.Latitude = s.Position.Lat
		p.Longitude = s.Position.Lng
		points = append(points, p)
	}

	doc := &gpx.GPX{
		Creator: "company-map-service",
		Routes: []gpx.GPXRoute{{
			Name:   "Planned company route",
			Points: points,
		}},
	}

	raw, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/gpx+xml")
	w.Header().Set("Content-Disposition", `attachment; filename="route.gpx"`)
	_, _ = w.Write(raw)
}

func (h *RouteHandler) routeResponse() dto.RouteResponse {
	stops := h.Ctrl.Stops()
	summary := h.Ctrl.Summary()

	res := dto.RouteResponse{
		SelectionMode: h.Ctrl.SelectionMode(),
		Stops:         make([]dto.StopResponse, 0, len(stops)),
	}
	for _, s := range stops {
		res.Stops = append(res.Stops, dto.StopResponse{
			ID:      s.ID,
			Name:    s.Name,
			Address: s.Address,
			City:    s.City,
			Country: s.Country,
		})
	}

	if summary != nil {
		res.Summary = toSummaryResponse(summary, stops)
	}
	return res
}

// Leg i runs from stop i to stop i+1; the controller keeps the stop list in
// the provider's returned order, so positional pairing is safe here.
func toSummaryResponse(summary *domain.RouteSummary, stops []domain.Company) *dto.RouteSummaryResponse {
	out := &dto.RouteSummaryResponse{
		TotalDistance: summary.TotalDistance,
		TotalDuration: summary.TotalDuration,
		Legs:          make([]dto.LegResponse, 0, len(summary.Legs)),
	}

	for i, leg := range summary.Legs {
		lr := dto.LegResponse{
			Distance: leg.DistanceText,
			Duration: leg.DurationText,
		}
		if i+1 < len(stops) {
			lr.From = stops[i].Name
			lr.To = stops[i+1].Name
		}
		out.Legs = append(out.Legs, lr)
	}

	return out
}
