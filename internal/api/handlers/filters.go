package handlers

import (
	"net/http"

	"company-map-service/internal/api/dto"
	"company-map-service/internal/services"
)

// FilterHandler exposes the dependent filter option sets and the criteria
// update entry point.
type FilterHandler struct {
	Ctrl *services.Controller
}

// Options returns all countries, the cities available for the currently
// selected country, and the upper turnover bound for the input control.
func (h *FilterHandler) Options(w http.ResponseWriter, r *http.Request) {
	opts := h.Ctrl.Options()

	writeJSON(w, r, http.StatusOK, dto.FilterOptionsResponse{
		Countries:   opts.Countries,
		Cities:      opts.Cities,
		MaxTurnover: opts.MaxTurnover,
		LoadError:   h.Ctrl.LoadError(),
	})
}

// Update applies a criteria change as one transition. Selecting a new
// country resets the city; any change clears the current route selection.
func (h *FilterHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateFilterRequest
	defer r.Body.Close()
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if req.MinTurnover < 0 {
		writeError(w, r, http.StatusBadRequest, "min_turnover must not be negative")
		return
	}

	h.Ctrl.UpdateFilter(req.Country, req.City, req.MinTurnover)

	criteria := h.Ctrl.Criteria()
	writeJSON(w, r, http.StatusOK, dto.FilterStateResponse{
		Country:     criteria.Country,
		City:        criteria.City,
		MinTurnover: criteria.MinTurnover,
	})
}
