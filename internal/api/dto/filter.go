package dto

type UpdateFilterRequest struct {
	Country     string `json:"country"`
	City        string `json:"city"`
	MinTurnover int    `json:"min_turnover"`
}

type FilterStateResponse struct {
	Country     string `json:"country"`
	City        string `json:"city"`
	MinTurnover int    `json:"min_turnover"`
}

type FilterOptionsResponse struct {
	Countries   []string `json:"countries"`
	Cities      []string `json:"cities"`
	MaxTurnover int      `json:"max_turnover"`
	LoadError   string   `json:"load_error,omitempty"`
}
