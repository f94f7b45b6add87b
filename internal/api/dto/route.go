package dto

type SetModeRequest struct {
	Active bool `json:"active"`
}

type SetModeResponse struct {
	Active bool `json:"active"`
}

type ClickRequest struct {
	CompanyID string `json:"company_id"`
}

type ClickResponse struct {
	Added         bool `json:"added"`
	SelectionMode bool `json:"selection_mode"`
	StopCount     int  `json:"stop_count"`
}

type StopResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Leg i describes the traversal from stop i to stop i+1 in the returned
// stop order (which follows the provider's optimization, not click order).
type LegResponse struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Distance string `json:"distance"`
	Duration string `json:"duration"`
}

type RouteSummaryResponse struct {
	TotalDistance string        `json:"total_distance"`
	TotalDuration string        `json:"total_duration"`
	Legs          []LegResponse `json:"legs"`
}

type RouteResponse struct {
	SelectionMode bool                  `json:"selection_mode"`
	Stops         []StopResponse        `json:"stops"`
	Summary       *RouteSummaryResponse `json:"summary,omitempty"`
}

type ComputeRouteResponse struct {
	Computed bool           `json:"computed"`
	Route    *RouteResponse `json:"route,omitempty"`
}
