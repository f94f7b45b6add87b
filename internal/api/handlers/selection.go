package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"company-map-service/internal/api/dto"
	"company-map-service/internal/services"
)

// SelectionHandler exposes the route-planning selection events: mode
// switching, marker clicks and stop removal.
type SelectionHandler struct {
	Ctrl *services.Controller
}

// SetMode enables or disables route planning. Either change of state is a
// full reset of the stop list and summary.
func (h *SelectionHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req dto.SetModeRequest
	defer r.Body.Close()
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	h.Ctrl.SetSelectionMode(req.Active)
	writeJSON(w, r, http.StatusOK, dto.SetModeResponse{Active: h.Ctrl.SelectionMode()})
}

// Click records a marker click. While selection mode is active the company
// becomes a route stop unless it is already one; outside selection mode the
// click is ignored here and the map layer opens the detail view instead.
func (h *SelectionHandler) Click(w http.ResponseWriter, r *http.Request) {
	var req dto.ClickRequest
	defer r.Body.Close()
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.CompanyID == "" {
		writeError(w, r, http.StatusBadRequest, "company_id is required")
		return
	}

	added, err := h.Ctrl.Click(req.CompanyID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCompany) {
			writeError(w, r, http.StatusNotFound, "company not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ClickResponse{
		Added:         added,
		SelectionMode: h.Ctrl.SelectionMode(),
		StopCount:     len(h.Ctrl.Stops()),
	})
}

// RemoveStop deletes the stop at the path index. Out-of-range indices are a
// caller error; the stop list is left untouched.
func (h *SelectionHandler) RemoveStop(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "index must be an integer")
		return
	}

	if err := h.Ctrl.RemoveStop(index); err != nil {
		if errors.Is(err, services.ErrIndexOutOfRange) {
			writeError(w, r, http.StatusBadRequest, "index out of range")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
