package handlers

import (
	"net/http"

	"company-map-service/internal/api/dto"
	"company-map-service/internal/domain"
	"company-map-service/internal/services"
)

// Marker colors for the two company-size tiers.
const (
	pinColorLarge = "#dc2626"
	pinColorSmall = "#16a34a"
)

// CompanyHandler exposes the filtered company view for marker rendering.
type CompanyHandler struct {
	Ctrl *services.Controller
}

// List returns the visible set: every company passing the active filter,
// with the appearance hint the map layer needs.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	visible := h.Ctrl.Visible()

	res := dto.ListCompaniesResponse{
		Companies: make([]dto.CompanyResponse, 0, len(visible)),
		LoadError: h.Ctrl.LoadError(),
	}
	for _, c := range visible {
		res.Companies = append(res.Companies, toCompanyResponse(c))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toCompanyResponse(c domain.Company) dto.CompanyResponse {
	color := pinColorSmall
	if c.SizeCount() > domain.LargeSizeThreshold {
		color = pinColorLarge
	}

	return dto.CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		AnnualTurnover: c.AnnualTurnover,
		CompanySize:    c.CompanySize,
		Address:        c.Address,
		Zip:            c.Zip,
		City:           c.City,
		Country:        c.Country,
		Lat:            c.Position.Lat,
		Lng:            c.Position.Lng,
		PinColor:       color,
	}
}
